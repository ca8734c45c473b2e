package types

import "errors"

// Pipeline error kinds. Stages wrap these with context; match with errors.Is.
var (
	// ErrInvalidWindow reports a moving-average window that is non-positive
	// or longer than the input.
	ErrInvalidWindow = errors.New("invalid filter window")

	// ErrDegenerateSignal reports a signal with zero variance (z-score) or
	// zero range (min-max), which cannot be rescaled.
	ErrDegenerateSignal = errors.New("degenerate signal")

	// ErrInvalidPeakParams reports peak-detection parameters outside their domain.
	ErrInvalidPeakParams = errors.New("invalid peak parameters")

	// ErrInvalidDuration reports a non-positive capture duration when a rate is requested.
	ErrInvalidDuration = errors.New("invalid capture duration")

	// ErrEmptyInput reports a capture with no samples handed to the detector.
	ErrEmptyInput = errors.New("empty input")
)
