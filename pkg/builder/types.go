// Package builder is the public facade over breathscope's internal packages:
// constructors, functional options and type aliases.
package builder

import "github.com/joeydtaylor/breathscope/pkg/internal/types"

type ComponentMetadata = types.ComponentMetadata

type Channel = types.Channel

const (
	ChannelA = types.ChannelA
	ChannelB = types.ChannelB
)

type (
	SamplePair       = types.SamplePair
	Capture          = types.Capture
	DecodeStats      = types.DecodeStats
	NormalizeMode    = types.NormalizeMode
	PeakPriority     = types.PeakPriority
	PeakParams       = types.PeakParams
	ChannelConfig    = types.ChannelConfig
	Profile          = types.Profile
	DetectorConfig   = types.DetectorConfig
	Detector         = types.Detector
	Sensor           = types.Sensor
	Report           = types.Report
	ChannelResult    = types.ChannelResult
	Reconciliation   = types.Reconciliation
	Resolution       = types.Resolution
	ResolutionSource = types.ResolutionSource
	GapStats         = types.GapStats
	SpectralEstimate = types.SpectralEstimate
)

const (
	NormalizeZScore    = types.NormalizeZScore
	NormalizeMinMax    = types.NormalizeMinMax
	PriorityProminence = types.PriorityProminence
	PriorityHeight     = types.PriorityHeight
	ProfileFiveCycle   = types.ProfileFiveCycle
	ProfileTimed       = types.ProfileTimed
)

// Error kinds returned by the pipeline; match with errors.Is.
var (
	ErrInvalidWindow     = types.ErrInvalidWindow
	ErrDegenerateSignal  = types.ErrDegenerateSignal
	ErrInvalidPeakParams = types.ErrInvalidPeakParams
	ErrInvalidDuration   = types.ErrInvalidDuration
	ErrEmptyInput        = types.ErrEmptyInput
)

// ParseChannel accepts "a", "b", "ca" or "cb" in any case the device uses.
func ParseChannel(s string) (Channel, error) {
	return types.ParseChannel(s)
}
