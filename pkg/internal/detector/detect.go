package detector

import (
	"fmt"

	"github.com/joeydtaylor/breathscope/pkg/internal/conditioner"
	"github.com/joeydtaylor/breathscope/pkg/internal/normalizer"
	"github.com/joeydtaylor/breathscope/pkg/internal/peakfinder"
	"github.com/joeydtaylor/breathscope/pkg/internal/reconciler"
	"github.com/joeydtaylor/breathscope/pkg/internal/spectrum"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	"github.com/joeydtaylor/breathscope/pkg/internal/utils"
)

// Detect runs every stage over capture. Any stage error aborts the run and
// no partial report is returned.
func (d *Detector) Detect(capture types.Capture) (types.Report, error) {
	meta := d.GetComponentMetadata()
	cfg := d.GetConfig()
	sensors := d.snapshotSensors()

	report, err := d.detect(meta, cfg, sensors, capture)
	if err != nil {
		d.NotifyLoggers(types.ErrorLevel, "Detection failed",
			"component", meta, "event", "Detect", "error", err)
		for _, s := range sensors {
			s.InvokeOnError(meta, err)
		}
		return types.Report{}, err
	}

	d.NotifyLoggers(types.InfoLevel, "Detection complete",
		"component", meta,
		"event", "Detect",
		"report", report.ID,
		"primary", cfg.Primary,
		"primary_peaks", len(report.Primary.Peaks),
		"secondary_peaks", len(report.Secondary.Peaks),
		"gaps", len(report.Reconciliation.Resolutions),
		"breaths", report.BreathCount,
		"bpm", report.BreathsPerMinute,
	)
	for _, s := range sensors {
		s.InvokeOnComplete(meta, report)
	}
	return report, nil
}

type channelRun struct {
	result     types.ChannelResult
	normalized []float64
}

func (d *Detector) detect(meta types.ComponentMetadata, cfg types.DetectorConfig, sensors []types.Sensor, capture types.Capture) (types.Report, error) {
	if len(capture.Samples) == 0 {
		return types.Report{}, fmt.Errorf("detect: %w: capture has no samples", types.ErrEmptyInput)
	}
	if err := cfg.Validate(); err != nil {
		return types.Report{}, fmt.Errorf("detect: %w", err)
	}

	primary, err := d.runChannel(meta, sensors, capture, cfg.Primary, cfg.Channels[cfg.Primary])
	if err != nil {
		return types.Report{}, err
	}
	secondaryCh := cfg.Secondary()
	secondary, err := d.runChannel(meta, sensors, capture, secondaryCh, cfg.Channels[secondaryCh])
	if err != nil {
		return types.Report{}, err
	}

	rec := reconciler.Reconcile(primary.result.Peaks, secondary.result.Peaks)
	for _, r := range rec.Resolutions {
		d.NotifyLoggers(types.DebugLevel, "Gap resolved",
			"component", meta, "event", "Reconcile",
			"position", r.Position, "front", r.Front, "back", r.Back,
			"index", r.Index, "source", string(r.Source))
		for _, s := range sensors {
			s.InvokeOnGapResolved(meta, r)
		}
	}

	profile := cfg.EffectiveProfile()
	report := types.Report{
		ID:             utils.GenerateUniqueHash(),
		Primary:        primary.result,
		Secondary:      secondary.result,
		Reconciliation: rec,
		Profile:        profile,
		BreathCount:    BreathCount(rec.Peaks, profile),
		Duration:       capture.Duration,
	}

	if capture.Duration > 0 {
		bpm, err := BreathsPerMinute(report.BreathCount, capture.Duration)
		if err != nil {
			return types.Report{}, fmt.Errorf("detect: %w", err)
		}
		report.BreathsPerMinute = bpm
	}

	if cfg.Spectral {
		est, err := spectrum.Estimate(primary.normalized, capture.SampleRate())
		if err != nil {
			d.NotifyLoggers(types.WarnLevel, "Spectral estimate unavailable",
				"component", meta, "event", "Spectrum", "error", err)
		} else {
			report.Spectral = &est
		}
	}

	return report, nil
}

func (d *Detector) runChannel(meta types.ComponentMetadata, sensors []types.Sensor, capture types.Capture, ch types.Channel, cc types.ChannelConfig) (channelRun, error) {
	filtered, err := conditioner.MovingAverage(capture.Channel(ch), cc.Window)
	if err != nil {
		return channelRun{}, fmt.Errorf("channel %s: filter: %w", ch, err)
	}
	for _, s := range sensors {
		s.InvokeOnFiltered(meta, ch, len(filtered))
	}

	normalized, err := normalizer.Normalize(filtered, cc.Normalize, cc.Invert)
	if err != nil {
		return channelRun{}, fmt.Errorf("channel %s: normalize: %w", ch, err)
	}

	peaks, err := peakfinder.FindPlateauPeaks(normalized, cc.Peaks)
	if err != nil {
		return channelRun{}, fmt.Errorf("channel %s: peaks: %w", ch, err)
	}
	for _, s := range sensors {
		s.InvokeOnPeaks(meta, ch, peaks)
	}

	d.NotifyLoggers(types.DebugLevel, "Channel processed",
		"component", meta, "event", "Channel",
		"channel", ch, "filtered", len(filtered), "peaks", len(peaks))

	return channelRun{
		result:     types.ChannelResult{Channel: ch, Filtered: len(filtered), Peaks: peaks},
		normalized: normalized,
	}, nil
}
