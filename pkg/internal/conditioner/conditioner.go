// Package conditioner smooths raw ADC counts before normalization.
package conditioner

import (
	"fmt"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	"gonum.org/v1/gonum/floats"
)

// MovingAverage returns the mean of every fully covered window of samples,
// so the output is len(samples)-window+1 long. Sums are taken over the exact
// integer counts, which keeps equal windows bit-identical.
func MovingAverage(samples []int, window int) ([]float64, error) {
	if window <= 0 || window > len(samples) {
		return nil, fmt.Errorf("%w: window %d for %d samples", types.ErrInvalidWindow, window, len(samples))
	}

	x := make([]float64, len(samples))
	for i, v := range samples {
		x[i] = float64(v)
	}
	cs := floats.CumSum(make([]float64, len(x)), x)

	w := float64(window)
	out := make([]float64, len(samples)-window+1)
	for i := range out {
		sum := cs[i+window-1]
		if i > 0 {
			sum -= cs[i-1]
		}
		out[i] = sum / w
	}
	return out, nil
}

// OutputLength is the filtered length for n samples, or 0 when the window
// does not fit.
func OutputLength(n, window int) int {
	if window <= 0 || window > n {
		return 0
	}
	return n - window + 1
}
