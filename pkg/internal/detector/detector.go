// Package detector runs the dual-channel breath pipeline: moving-average
// filtering, normalization, plateau peak picking, cross-channel gap
// reconciliation and breath counting.
package detector

import (
	"sync"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	"github.com/joeydtaylor/breathscope/pkg/internal/utils"
)

// Detector holds configuration and observers. Detect calls share nothing
// else, so one Detector can serve concurrent runs.
type Detector struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	config     types.DetectorConfig
	configLock sync.RWMutex

	loggers     []types.Logger
	loggersLock sync.Mutex

	sensors     []types.Sensor
	sensorsLock sync.Mutex
}

// DefaultConfig reproduces the bench setup: both channels filtered with the
// five-cycle window, z-scored, channel B inverted and trusted as primary.
func DefaultConfig() types.DetectorConfig {
	peaks := types.PeakParams{
		Prominence:  0.1,
		MinDistance: 1000,
		MinPlateau:  1,
		Priority:    types.PriorityProminence,
	}
	return types.DetectorConfig{
		Primary: types.ChannelB,
		Channels: map[types.Channel]types.ChannelConfig{
			types.ChannelA: {Window: types.FiveCycleWindowSize, Normalize: types.NormalizeZScore, Peaks: peaks},
			types.ChannelB: {Window: types.FiveCycleWindowSize, Normalize: types.NormalizeZScore, Invert: true, Peaks: peaks},
		},
	}
}

// NewDetector creates a Detector with DefaultConfig and applies options.
func NewDetector(options ...types.Option[types.Detector]) types.Detector {
	d := &Detector{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "DETECTOR",
		},
		config: DefaultConfig(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}

	return d
}
