package types

import "fmt"

// NormalizeMode selects how a filtered channel is rescaled.
type NormalizeMode string

const (
	NormalizeZScore NormalizeMode = "zscore" // (x - mean) / std
	NormalizeMinMax NormalizeMode = "minmax" // (x - min) / (max - min)
)

// PeakPriority decides which of two close peaks survives distance filtering,
// and in which order the prominence and distance filters run.
type PeakPriority string

const (
	// PriorityProminence filters by prominence first, then keeps the more
	// prominent of two close peaks.
	PriorityProminence PeakPriority = "prominence"
	// PriorityHeight filters by distance first, keeping the taller peak, then
	// by prominence.
	PriorityHeight PeakPriority = "height"
)

// PeakParams configures plateau peak detection on one channel.
type PeakParams struct {
	Prominence  float64      // minimum prominence a peak must reach
	MinDistance int          // minimum spacing, in samples, between kept peaks
	MinPlateau  int          // minimum plateau width, in samples
	Priority    PeakPriority // empty means PriorityProminence
}

// Validate reports ErrInvalidPeakParams for out-of-domain values.
func (p PeakParams) Validate() error {
	if p.MinDistance < 1 {
		return fmt.Errorf("%w: min distance %d < 1", ErrInvalidPeakParams, p.MinDistance)
	}
	if p.MinPlateau < 1 {
		return fmt.Errorf("%w: min plateau %d < 1", ErrInvalidPeakParams, p.MinPlateau)
	}
	if p.Prominence < 0 {
		return fmt.Errorf("%w: prominence %g < 0", ErrInvalidPeakParams, p.Prominence)
	}
	switch p.Priority {
	case "", PriorityProminence, PriorityHeight:
	default:
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidPeakParams, p.Priority)
	}
	return nil
}

// ChannelConfig is the per-channel part of a detector run.
type ChannelConfig struct {
	Window    int           // moving-average window, in samples
	Normalize NormalizeMode // empty means NormalizeZScore
	Invert    bool          // multiply by -1 after normalization (opposite polarity)
	Peaks     PeakParams
}

// Profile keys the breath-count offset table. Offsets were calibrated per
// acquisition setup and are not derivable from the signal.
type Profile string

const (
	// ProfileFiveCycle is the five-breath recording setup filtered with
	// FiveCycleWindowSize.
	ProfileFiveCycle Profile = "five-cycle"
	// ProfileTimed is the fixed-duration recording setup with any other window.
	ProfileTimed Profile = "timed"
)

// FiveCycleWindowSize is the filter window the five-cycle setup was tuned with.
const FiveCycleWindowSize = 1200

// BreathCountOffsets maps a profile to the number added to the reconciled peak
// count to obtain breath cycles.
var BreathCountOffsets = map[Profile]int{
	ProfileFiveCycle: 1,
	ProfileTimed:     2,
}

// ProfileForWindow picks the profile the acquisition setup implied
// for a given primary-channel window.
func ProfileForWindow(window int) Profile {
	if window == FiveCycleWindowSize {
		return ProfileFiveCycle
	}
	return ProfileTimed
}

// DetectorConfig is everything a detection run needs besides the samples.
type DetectorConfig struct {
	Primary  Channel                   // channel trusted as the breath estimate
	Channels map[Channel]ChannelConfig // must hold both channels
	Profile  Profile                   // empty means ProfileForWindow(primary window)
	Spectral bool                      // also estimate the rate from the spectrum
}

// Secondary returns the channel used to fill gaps in the primary sequence.
func (c DetectorConfig) Secondary() Channel {
	return c.Primary.Other()
}

// EffectiveProfile resolves an empty Profile from the primary window.
func (c DetectorConfig) EffectiveProfile() Profile {
	if c.Profile != "" {
		return c.Profile
	}
	return ProfileForWindow(c.Channels[c.Primary].Window)
}

// Validate checks the record before any stage runs.
func (c DetectorConfig) Validate() error {
	if c.Primary != ChannelA && c.Primary != ChannelB {
		return fmt.Errorf("unknown primary channel %v", c.Primary)
	}
	for _, ch := range []Channel{ChannelA, ChannelB} {
		cc, ok := c.Channels[ch]
		if !ok {
			return fmt.Errorf("channel %v: missing configuration", ch)
		}
		if cc.Window <= 0 {
			return fmt.Errorf("channel %v: %w: window %d", ch, ErrInvalidWindow, cc.Window)
		}
		switch cc.Normalize {
		case "", NormalizeZScore, NormalizeMinMax:
		default:
			return fmt.Errorf("channel %v: unknown normalize mode %q", ch, cc.Normalize)
		}
		if err := cc.Peaks.Validate(); err != nil {
			return fmt.Errorf("channel %v: %w", ch, err)
		}
	}
	if _, ok := BreathCountOffsets[c.EffectiveProfile()]; !ok {
		return fmt.Errorf("unknown profile %q", c.Profile)
	}
	return nil
}
