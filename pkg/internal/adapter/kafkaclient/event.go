package kafkaclient

import (
	"time"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// ReportEvent is the message body published for each report.
type ReportEvent struct {
	ReportID         string   `json:"report_id"`
	EmittedAt        string   `json:"emitted_at"`
	Primary          string   `json:"primary_channel"`
	Profile          string   `json:"profile"`
	BreathCount      int      `json:"breath_count"`
	DurationMS       int64    `json:"duration_ms"`
	BreathsPerMinute float64  `json:"breaths_per_minute"`
	Peaks            []int    `json:"peaks"`
	Gaps             int      `json:"gaps"`
	MedianGap        float64  `json:"median_gap"`
	SpectralBPM      *float64 `json:"spectral_bpm,omitempty"`
}

// NewReportEvent flattens r into its published form.
func NewReportEvent(r types.Report, now time.Time) ReportEvent {
	ev := ReportEvent{
		ReportID:         r.ID,
		EmittedAt:        now.UTC().Format(time.RFC3339Nano),
		Primary:          r.Primary.Channel.String(),
		Profile:          string(r.Profile),
		BreathCount:      r.BreathCount,
		DurationMS:       r.Duration.Milliseconds(),
		BreathsPerMinute: r.BreathsPerMinute,
		Peaks:            append([]int{}, r.Reconciliation.Peaks...),
		Gaps:             len(r.Reconciliation.Resolutions),
		MedianGap:        r.Reconciliation.Stats.MedianGap,
	}
	if r.Spectral != nil {
		bpm := r.Spectral.BreathsPerMinute
		ev.SpectralBPM = &bpm
	}
	return ev
}
