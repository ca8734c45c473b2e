// Package spectrum estimates the breathing rate from the dominant frequency
// of a conditioned signal. It cross-checks the peak-based rate.
package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X[k]|^2 for k in [0, n/2).
func PowerSpectrum(signal []float64) []float64 {
	spec := fft.FFTReal(signal)
	power := make([]float64, len(spec)/2)
	for i := range power {
		a := cmplx.Abs(spec[i])
		power[i] = a * a
	}
	return power
}

// Estimate finds the strongest non-DC bin of signal sampled at sampleRate Hz.
func Estimate(signal []float64, sampleRate float64) (types.SpectralEstimate, error) {
	if len(signal) < 4 {
		return types.SpectralEstimate{}, fmt.Errorf("%w: %d samples", types.ErrEmptyInput, len(signal))
	}
	if sampleRate <= 0 || math.IsInf(sampleRate, 0) || math.IsNaN(sampleRate) {
		return types.SpectralEstimate{}, fmt.Errorf("%w: sample rate %g", types.ErrInvalidDuration, sampleRate)
	}

	power := PowerSpectrum(signal)

	total, maxPower, dominant := 0.0, 0.0, 0
	for i := 1; i < len(power); i++ {
		total += power[i]
		if power[i] > maxPower {
			maxPower = power[i]
			dominant = i
		}
	}
	// Rounding leaves tiny non-DC power for constant input.
	if dominant == 0 || total <= 1e-12*(total+power[0]) {
		return types.SpectralEstimate{}, fmt.Errorf("%w: no spectral content", types.ErrDegenerateSignal)
	}

	hz := float64(dominant) * sampleRate / float64(len(signal))
	est := types.SpectralEstimate{
		DominantHz:       hz,
		BreathsPerMinute: hz * 60,
		Power:            maxPower / total,
	}
	if noise := total - maxPower; noise > 0 {
		est.SNR = 10 * math.Log10(maxPower/noise)
	}
	return est, nil
}
