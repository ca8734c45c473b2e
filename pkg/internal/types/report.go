package types

import "time"

// ChannelResult is what the pipeline produced for one channel.
type ChannelResult struct {
	Channel  Channel
	Filtered int // length of the filtered signal
	Peaks    []int
}

// SpectralEstimate is an FFT cross-check of the breathing rate.
type SpectralEstimate struct {
	DominantHz       float64
	BreathsPerMinute float64
	Power            float64 // share of non-DC power in the dominant bin
	SNR              float64 // dominant bin against the rest, in dB; 0 without residual power
}

// Report is the complete result of one detection run.
type Report struct {
	ID               string
	Primary          ChannelResult
	Secondary        ChannelResult
	Reconciliation   Reconciliation
	Profile          Profile
	BreathCount      int
	Duration         time.Duration
	BreathsPerMinute float64 // 0 when Duration is unknown
	Spectral         *SpectralEstimate
}
