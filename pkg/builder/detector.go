package builder

import (
	"time"

	"github.com/joeydtaylor/breathscope/pkg/internal/detector"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// NewDetector creates a breath detector with DefaultDetectorConfig and applies options.
func NewDetector(options ...types.Option[types.Detector]) types.Detector {
	return detector.NewDetector(options...)
}

// DefaultDetectorConfig returns the bench configuration: window 1200, z-score,
// channel B inverted and primary.
func DefaultDetectorConfig() types.DetectorConfig {
	return detector.DefaultConfig()
}

// DetectorWithConfig replaces the detector configuration.
func DetectorWithConfig(cfg types.DetectorConfig) types.Option[types.Detector] {
	return detector.WithConfig(cfg)
}

// DetectorWithLogger adds loggers to the detector.
func DetectorWithLogger(logger ...types.Logger) types.Option[types.Detector] {
	return detector.WithLogger(logger...)
}

// DetectorWithSensor attaches sensors that observe each run.
func DetectorWithSensor(sensor ...types.Sensor) types.Option[types.Detector] {
	return detector.WithSensor(sensor...)
}

// DetectorWithComponentMetadata sets a custom name and ID.
func DetectorWithComponentMetadata(name string, id string) types.Option[types.Detector] {
	return detector.WithComponentMetadata(name, id)
}

// BreathCount converts a reconciled peak sequence into breath cycles.
func BreathCount(reconciled []int, profile Profile) int {
	return detector.BreathCount(reconciled, profile)
}

// BreathsPerMinute scales a breath count by the capture duration.
func BreathsPerMinute(count int, duration time.Duration) (float64, error) {
	return detector.BreathsPerMinute(count, duration)
}
