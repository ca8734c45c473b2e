package detector_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/joeydtaylor/breathscope/pkg/internal/detector"
	"github.com/joeydtaylor/breathscope/pkg/internal/internallogger"
	"github.com/joeydtaylor/breathscope/pkg/internal/sensor"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

const (
	period  = 300
	samples = 3000
)

// breathing builds a capture where channel A follows sin and channel B
// follows -sin. Cycles listed in skipB stay at the trough on channel B.
func breathing(skipB ...int) types.Capture {
	skipped := make(map[int]bool)
	for _, k := range skipB {
		skipped[k] = true
	}

	c := types.Capture{Samples: make([]types.SamplePair, samples), Duration: time.Minute}
	for i := range c.Samples {
		s := math.Sin(2 * math.Pi * float64(i) / period)
		sb := s
		// Cycles run trough to trough so a skipped one leaves no edge behind.
		if skipped[(i-period*3/4+period)/period] && i >= period*3/4 {
			sb = -1
		}
		c.Samples[i] = types.SamplePair{
			A: int(math.Round(2048 + 300*s)),
			B: int(math.Round(2048 - 300*sb)),
		}
	}
	return c
}

func testConfig() types.DetectorConfig {
	cfg := detector.DefaultConfig()
	for ch, cc := range cfg.Channels {
		cc.Window = 10
		cc.Peaks.MinDistance = 50
		cfg.Channels[ch] = cc
	}
	return cfg
}

func near(got, want, tol int) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestDetect_CleanCapture(t *testing.T) {
	d := detector.NewDetector(detector.WithConfig(testConfig()))

	report, err := d.Detect(breathing())
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if report.Primary.Channel != types.ChannelB || report.Secondary.Channel != types.ChannelA {
		t.Fatalf("unexpected channel roles %v/%v", report.Primary.Channel, report.Secondary.Channel)
	}
	if report.Primary.Filtered != samples-9 {
		t.Fatalf("expected filtered length %d, got %d", samples-9, report.Primary.Filtered)
	}
	if len(report.Primary.Peaks) != 10 || len(report.Secondary.Peaks) != 10 {
		t.Fatalf("expected 10 peaks per channel, got %v and %v", report.Primary.Peaks, report.Secondary.Peaks)
	}
	for k, p := range report.Primary.Peaks {
		if !near(p, 75+period*k-5, 10) {
			t.Fatalf("peak %d at %d, expected near %d", k, p, 75+period*k-5)
		}
	}
	if len(report.Reconciliation.Resolutions) != 0 {
		t.Fatalf("expected no gaps, got %+v", report.Reconciliation.Resolutions)
	}
	if report.Profile != types.ProfileTimed {
		t.Fatalf("expected timed profile, got %s", report.Profile)
	}
	if report.BreathCount != 12 {
		t.Fatalf("expected 12 breaths, got %d", report.BreathCount)
	}
	if report.BreathsPerMinute != 12 {
		t.Fatalf("expected 12 bpm, got %v", report.BreathsPerMinute)
	}
	if report.ID == "" {
		t.Fatalf("expected a report ID")
	}
	if report.Spectral != nil {
		t.Fatalf("spectral estimate should be off by default")
	}
}

func TestDetect_FillsGapFromSecondary(t *testing.T) {
	d := detector.NewDetector(detector.WithConfig(testConfig()))

	report, err := d.Detect(breathing(4))
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if len(report.Primary.Peaks) != 9 {
		t.Fatalf("expected 9 primary peaks, got %v", report.Primary.Peaks)
	}

	rec := report.Reconciliation
	if len(rec.Resolutions) != 1 {
		t.Fatalf("expected one resolved gap, got %+v", rec.Resolutions)
	}
	r := rec.Resolutions[0]
	if r.Source != types.SourceSecondary {
		t.Fatalf("expected secondary match, got %+v", r)
	}
	if r.Index != report.Secondary.Peaks[4] {
		t.Fatalf("expected gap filled with %d, got %d", report.Secondary.Peaks[4], r.Index)
	}
	if len(rec.Peaks) != 10 || report.BreathCount != 12 {
		t.Fatalf("expected 10 reconciled peaks and 12 breaths, got %d and %d", len(rec.Peaks), report.BreathCount)
	}
}

func TestDetect_Errors(t *testing.T) {
	cfg := testConfig()

	tooWide := testConfig()
	cc := tooWide.Channels[types.ChannelA]
	cc.Window = samples + 1
	tooWide.Channels[types.ChannelA] = cc

	badPeaks := testConfig()
	cc = badPeaks.Channels[types.ChannelB]
	cc.Peaks.MinDistance = 0
	badPeaks.Channels[types.ChannelB] = cc

	flat := breathing()
	for i := range flat.Samples {
		flat.Samples[i].A = 1000
	}

	tests := []struct {
		name    string
		cfg     types.DetectorConfig
		capture types.Capture
		want    error
	}{
		{"empty capture", cfg, types.Capture{}, types.ErrEmptyInput},
		{"window longer than capture", tooWide, breathing(), types.ErrInvalidWindow},
		{"constant channel", cfg, flat, types.ErrDegenerateSignal},
		{"invalid peak params", badPeaks, breathing(), types.ErrInvalidPeakParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var failures int
			s := sensor.NewSensor(sensor.WithOnErrorFunc(func(types.ComponentMetadata, error) { failures++ }))
			d := detector.NewDetector(detector.WithConfig(tt.cfg), detector.WithSensor(s))

			report, err := d.Detect(tt.capture)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if report.ID != "" {
				t.Fatalf("expected no partial report, got %+v", report)
			}
			if failures != 1 {
				t.Fatalf("expected one OnError callback, got %d", failures)
			}
		})
	}
}

func TestDetect_UnknownDuration(t *testing.T) {
	c := breathing()
	c.Duration = 0

	report, err := detector.NewDetector(detector.WithConfig(testConfig())).Detect(c)
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if report.BreathsPerMinute != 0 || report.BreathCount != 12 {
		t.Fatalf("expected count without rate, got %d / %v", report.BreathCount, report.BreathsPerMinute)
	}
}

func TestDetect_SpectralEstimate(t *testing.T) {
	cfg := testConfig()
	cfg.Spectral = true

	report, err := detector.NewDetector(detector.WithConfig(cfg)).Detect(breathing())
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if report.Spectral == nil {
		t.Fatalf("expected spectral estimate")
	}
	if math.Abs(report.Spectral.BreathsPerMinute-10) > 1 {
		t.Fatalf("expected ~10 bpm from spectrum, got %v", report.Spectral.BreathsPerMinute)
	}
}

func TestDetect_SensorAndLogs(t *testing.T) {
	var (
		mu       sync.Mutex
		filtered = map[types.Channel]int{}
		peaks    = map[types.Channel][]int{}
		gaps     []types.Resolution
		done     []types.Report
	)
	s := sensor.NewSensor(
		sensor.WithOnFilteredFunc(func(_ types.ComponentMetadata, ch types.Channel, n int) {
			mu.Lock()
			filtered[ch] = n
			mu.Unlock()
		}),
		sensor.WithOnPeaksFunc(func(_ types.ComponentMetadata, ch types.Channel, p []int) {
			mu.Lock()
			peaks[ch] = p
			mu.Unlock()
		}),
		sensor.WithOnGapResolvedFunc(func(_ types.ComponentMetadata, r types.Resolution) {
			mu.Lock()
			gaps = append(gaps, r)
			mu.Unlock()
		}),
		sensor.WithOnCompleteFunc(func(_ types.ComponentMetadata, r types.Report) {
			mu.Lock()
			done = append(done, r)
			mu.Unlock()
		}),
	)

	var buf bytes.Buffer
	logger := internallogger.NewLogger(
		internallogger.LoggerWithLevel("debug"),
		internallogger.LoggerWithOutput(zapcore.AddSync(&buf)),
	)

	d := detector.NewDetector(
		detector.WithConfig(testConfig()),
		detector.WithSensor(s, nil),
		detector.WithLogger(logger),
		detector.WithComponentMetadata("bench", "det-1"),
	)

	report, err := d.Detect(breathing(4))
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}

	if filtered[types.ChannelA] != samples-9 || filtered[types.ChannelB] != samples-9 {
		t.Fatalf("unexpected filtered lengths %v", filtered)
	}
	if len(peaks[types.ChannelB]) != 9 || len(peaks[types.ChannelA]) != 10 {
		t.Fatalf("unexpected peak callbacks %v", peaks)
	}
	if len(gaps) != 1 || len(done) != 1 || done[0].ID != report.ID {
		t.Fatalf("unexpected gap/complete callbacks: %d gaps, %d reports", len(gaps), len(done))
	}

	out := buf.String()
	for _, want := range []string{"Detection complete", "Gap resolved", "det-1", `"event":"Detect"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestConfigIsolation(t *testing.T) {
	cfg := testConfig()
	d := detector.NewDetector(detector.WithConfig(cfg))

	cc := cfg.Channels[types.ChannelA]
	cc.Window = 99
	cfg.Channels[types.ChannelA] = cc

	if got := d.GetConfig().Channels[types.ChannelA].Window; got != 10 {
		t.Fatalf("caller edits leaked into detector config: window %d", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := detector.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Primary != types.ChannelB || !cfg.Channels[types.ChannelB].Invert || cfg.Channels[types.ChannelA].Invert {
		t.Fatalf("unexpected channel defaults %+v", cfg)
	}
	if cfg.EffectiveProfile() != types.ProfileFiveCycle {
		t.Fatalf("expected five-cycle profile, got %s", cfg.EffectiveProfile())
	}
}

func TestBreathCount(t *testing.T) {
	peaks := []int{1, 2, 3, 4, 5}
	if got := detector.BreathCount(peaks, types.ProfileFiveCycle); got != 6 {
		t.Fatalf("five-cycle: expected 6, got %d", got)
	}
	if got := detector.BreathCount(peaks, types.ProfileTimed); got != 7 {
		t.Fatalf("timed: expected 7, got %d", got)
	}
	if got := detector.BreathCount(nil, types.ProfileForWindow(500)); got != 2 {
		t.Fatalf("timed empty: expected 2, got %d", got)
	}
}

func TestBreathsPerMinute(t *testing.T) {
	got, err := detector.BreathsPerMinute(6, 30*time.Second)
	if err != nil || got != 12 {
		t.Fatalf("expected 12, got %v (%v)", got, err)
	}
	for _, dur := range []time.Duration{0, -time.Second} {
		if _, err := detector.BreathsPerMinute(6, dur); !errors.Is(err, types.ErrInvalidDuration) {
			t.Fatalf("duration %s: expected ErrInvalidDuration, got %v", dur, err)
		}
	}
}
