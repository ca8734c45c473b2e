package detector

import (
	"fmt"
	"time"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// BreathCount converts a reconciled peak count into breath cycles using the
// profile's calibrated offset. Unknown profiles add nothing.
func BreathCount(reconciled []int, profile types.Profile) int {
	return len(reconciled) + types.BreathCountOffsets[profile]
}

// BreathsPerMinute is count / (duration in minutes).
func BreathsPerMinute(count int, duration time.Duration) (float64, error) {
	if duration <= 0 {
		return 0, fmt.Errorf("%w: %s", types.ErrInvalidDuration, duration)
	}
	return float64(count) / (duration.Seconds() / 60), nil
}
