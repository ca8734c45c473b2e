// Package normalizer rescales filtered channels so they can be compared
// across channels and sessions.
package normalizer

import (
	"fmt"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Standardize returns (x - mean) / std using the population standard deviation.
func Standardize(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("%w: empty signal", types.ErrDegenerateSignal)
	}
	mean, std := stat.PopMeanStdDev(signal, nil)
	if std == 0 {
		return nil, fmt.Errorf("%w: zero standard deviation", types.ErrDegenerateSignal)
	}

	out := make([]float64, len(signal))
	copy(out, signal)
	floats.AddConst(-mean, out)
	floats.Scale(1/std, out)
	return out, nil
}

// MinMax returns (x - min) / (max - min).
func MinMax(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("%w: empty signal", types.ErrDegenerateSignal)
	}
	lo, hi := floats.Min(signal), floats.Max(signal)
	if hi == lo {
		return nil, fmt.Errorf("%w: zero range", types.ErrDegenerateSignal)
	}

	out := make([]float64, len(signal))
	span := hi - lo
	for i, v := range signal {
		out[i] = (v - lo) / span
	}
	return out, nil
}

// Invert returns a sign-flipped copy, for channels mounted with opposite polarity.
func Invert(signal []float64) []float64 {
	out := make([]float64, len(signal))
	copy(out, signal)
	floats.Scale(-1, out)
	return out
}

// Normalize applies mode (z-score when empty) and then the optional inversion.
func Normalize(signal []float64, mode types.NormalizeMode, invert bool) ([]float64, error) {
	var (
		out []float64
		err error
	)
	switch mode {
	case "", types.NormalizeZScore:
		out, err = Standardize(signal)
	case types.NormalizeMinMax:
		out, err = MinMax(signal)
	default:
		return nil, fmt.Errorf("unknown normalize mode %q", mode)
	}
	if err != nil {
		return nil, err
	}
	if invert {
		return Invert(out), nil
	}
	return out, nil
}
