package builder_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/joeydtaylor/breathscope/pkg/builder"
)

func syntheticCapture(n, period int, duration time.Duration) builder.Capture {
	samples := make([]builder.SamplePair, n)
	for i := range samples {
		s := math.Sin(2 * math.Pi * float64(i) / float64(period))
		samples[i] = builder.SamplePair{
			A: int(math.Round(2048 + 300*s)),
			B: int(math.Round(2048 - 300*s)),
		}
	}
	return builder.Capture{Samples: samples, Duration: duration}
}

func TestBuilderDetect(t *testing.T) {
	cfg := builder.DefaultDetectorConfig()
	for ch, cc := range cfg.Channels {
		cc.Window = 10
		cc.Peaks.MinDistance = 50
		cfg.Channels[ch] = cc
	}

	var completed int
	s := builder.NewSensor(builder.SensorWithOnCompleteFunc(func(builder.ComponentMetadata, builder.Report) { completed++ }))
	d := builder.NewDetector(
		builder.DetectorWithConfig(cfg),
		builder.DetectorWithSensor(s),
		builder.DetectorWithComponentMetadata("bench", "det-1"),
	)

	report, err := d.Detect(syntheticCapture(3000, 300, time.Minute))
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if len(report.Reconciliation.Peaks) != 10 {
		t.Fatalf("expected 10 peaks, got %v", report.Reconciliation.Peaks)
	}
	if report.BreathCount != 12 || report.BreathsPerMinute != 12 {
		t.Fatalf("unexpected count %d / bpm %g", report.BreathCount, report.BreathsPerMinute)
	}
	if completed != 1 {
		t.Fatalf("expected sensor OnComplete once, got %d", completed)
	}
	if m := d.GetComponentMetadata(); m.Name != "bench" || m.ID != "det-1" {
		t.Fatalf("unexpected metadata %+v", m)
	}

	if _, err := d.Detect(builder.Capture{}); !errors.Is(err, builder.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}
