// Package peakfinder locates plateau-aware local maxima in a normalized signal.
package peakfinder

import (
	"sort"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// Plateaus returns every local maximum of signal, flat tops included. A
// plateau is a run of exactly equal samples with a strictly lower sample on
// each side, so the first and last samples never qualify.
func Plateaus(signal []float64) []types.Plateau {
	n := len(signal)
	if n < 3 {
		return nil
	}

	var out []types.Plateau
	last := n - 1
	for i := 1; i < last; i++ {
		if signal[i-1] >= signal[i] {
			continue
		}
		ahead := i + 1
		for ahead < last && signal[ahead] == signal[i] {
			ahead++
		}
		if signal[ahead] < signal[i] {
			left, right := i, ahead-1
			out = append(out, types.Plateau{
				Left:   left,
				Right:  right,
				Mid:    (left + right) / 2,
				Height: signal[i],
			})
			i = ahead - 1
		}
	}
	return out
}

// Prominences measures each peak at mids against the whole signal: walk out
// on both sides while samples stay at or below the peak, and take the higher
// of the two minima as the reference.
func Prominences(signal []float64, mids []int) []float64 {
	out := make([]float64, len(mids))
	for k, p := range mids {
		peak := signal[p]

		leftMin := peak
		for i := p; i >= 0 && signal[i] <= peak; i-- {
			if signal[i] < leftMin {
				leftMin = signal[i]
			}
		}
		rightMin := peak
		for i := p; i < len(signal) && signal[i] <= peak; i++ {
			if signal[i] < rightMin {
				rightMin = signal[i]
			}
		}

		base := leftMin
		if rightMin > base {
			base = rightMin
		}
		out[k] = peak - base
	}
	return out
}

// FindPlateauPeaks returns the plateau midpoints that pass the width,
// prominence and distance filters of p, in increasing order.
func FindPlateauPeaks(signal []float64, p types.PeakParams) ([]int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cands := make([]types.Plateau, 0)
	for _, pl := range Plateaus(signal) {
		if pl.Width() >= p.MinPlateau {
			cands = append(cands, pl)
		}
	}
	if len(cands) == 0 {
		return []int{}, nil
	}

	mids := make([]int, len(cands))
	for i, pl := range cands {
		mids[i] = pl.Mid
	}
	prom := Prominences(signal, mids)

	if p.Priority == types.PriorityHeight {
		heights := make([]float64, len(cands))
		for i, pl := range cands {
			heights[i] = pl.Height
		}
		keep := selectByDistance(mids, heights, p.MinDistance)
		out := make([]int, 0, len(mids))
		for i, m := range mids {
			if keep[i] && prom[i] >= p.Prominence {
				out = append(out, m)
			}
		}
		return out, nil
	}

	fMids := make([]int, 0, len(mids))
	fProm := make([]float64, 0, len(mids))
	for i, m := range mids {
		if prom[i] >= p.Prominence {
			fMids = append(fMids, m)
			fProm = append(fProm, prom[i])
		}
	}
	keep := selectByDistance(fMids, fProm, p.MinDistance)
	out := make([]int, 0, len(fMids))
	for i, m := range fMids {
		if keep[i] {
			out = append(out, m)
		}
	}
	return out, nil
}

// selectByDistance visits peaks from highest priority down (earlier index on
// ties) and drops every unvisited neighbour closer than distance.
func selectByDistance(mids []int, priority []float64, distance int) []bool {
	keep := make([]bool, len(mids))
	for i := range keep {
		keep[i] = true
	}
	if distance <= 1 {
		return keep
	}

	order := make([]int, len(mids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return priority[order[a]] > priority[order[b]]
	})

	for _, i := range order {
		if !keep[i] {
			continue
		}
		for j := i - 1; j >= 0 && mids[i]-mids[j] < distance; j-- {
			keep[j] = false
		}
		for j := i + 1; j < len(mids) && mids[j]-mids[i] < distance; j++ {
			keep[j] = false
		}
	}
	return keep
}
