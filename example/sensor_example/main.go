package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/joeydtaylor/breathscope/pkg/builder"
)

// synthetic builds a 30s capture breathing at 12/min with one breath missing
// on channel B, so the reconciler has a gap to fill from channel A.
func synthetic() builder.Capture {
	const (
		rate   = 400 // samples per second
		period = 5 * rate
		n      = 30 * rate
	)
	rng := rand.New(rand.NewSource(1))
	samples := make([]builder.SamplePair, n)
	for i := range samples {
		s := math.Sin(2 * math.Pi * float64(i) / period)
		sb := s
		if i >= 3*period+period*3/4 && i < 4*period+period*3/4 {
			sb = -1
		}
		samples[i] = builder.SamplePair{
			A: int(2048 + 300*s + rng.NormFloat64()*4),
			B: int(2048 - 300*sb + rng.NormFloat64()*4),
		}
	}
	return builder.Capture{Samples: samples, Duration: 30 * time.Second}
}

func main() {
	logger := builder.NewLogger(builder.LoggerWithLevel("debug"))

	sensor := builder.NewSensor(
		builder.SensorWithLogger(logger),
		builder.SensorWithOnFilteredFunc(func(c builder.ComponentMetadata, ch builder.Channel, length int) {
			fmt.Printf("%s filtered channel %s: %d samples\n", c.Type, ch, length)
		}),
		builder.SensorWithOnPeaksFunc(func(c builder.ComponentMetadata, ch builder.Channel, peaks []int) {
			fmt.Printf("%s channel %s peaks: %v\n", c.Type, ch, peaks)
		}),
		builder.SensorWithOnGapResolvedFunc(func(c builder.ComponentMetadata, r builder.Resolution) {
			fmt.Printf("gap between %d and %d -> %d (%s)\n", r.Front, r.Back, r.Index, r.Source)
		}),
		builder.SensorWithOnCompleteFunc(func(c builder.ComponentMetadata, r builder.Report) {
			fmt.Printf("report %s: %d breaths, %.1f/min\n", r.ID[:8], r.BreathCount, r.BreathsPerMinute)
		}),
		builder.SensorWithOnErrorFunc(func(c builder.ComponentMetadata, err error) {
			fmt.Printf("%s error: %v\n", c.Type, err)
		}),
	)

	cfg := builder.DefaultDetectorConfig()
	cfg.Spectral = true
	for ch, cc := range cfg.Channels {
		cc.Window = 200
		cfg.Channels[ch] = cc
	}

	detector := builder.NewDetector(
		builder.DetectorWithConfig(cfg),
		builder.DetectorWithLogger(logger),
		builder.DetectorWithSensor(sensor),
	)

	if _, err := detector.Detect(synthetic()); err != nil {
		fmt.Printf("detect: %v\n", err)
	}

	// An empty capture reaches OnError.
	_, _ = detector.Detect(builder.Capture{})
}
