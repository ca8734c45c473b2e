// Package reconciler fills abnormal gaps in the primary channel's peak
// sequence, using the secondary channel's peaks as a reference.
package reconciler

import (
	"math"
	"sort"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// GapStats derives median spacing, tolerance and acceptable distance from a
// peak sequence. It reports false when there are fewer than two peaks.
func GapStats(primary []int) (types.GapStats, bool) {
	if len(primary) < 2 {
		return types.GapStats{}, false
	}
	diffs := make([]float64, len(primary)-1)
	for i := 1; i < len(primary); i++ {
		diffs[i-1] = float64(primary[i] - primary[i-1])
	}
	med := median(diffs)
	tol := med / 2
	return types.GapStats{
		MedianGap:          med,
		Tolerance:          tol,
		AcceptableDistance: med + tol,
	}, true
}

// median averages the two middle values for even counts. diffs is sorted in place.
func median(diffs []float64) float64 {
	sort.Float64s(diffs)
	n := len(diffs)
	if n%2 == 1 {
		return diffs[n/2]
	}
	return (diffs[n/2-1] + diffs[n/2]) / 2
}

// Classify copies primary into a classification, inserting a gap after every
// consecutive pair further apart than acceptable.
func Classify(primary []int, acceptable float64) []types.PeakEntry {
	if len(primary) == 0 {
		return []types.PeakEntry{}
	}
	out := make([]types.PeakEntry, 0, len(primary)+1)
	out = append(out, types.Peak(primary[0]))
	for i := 1; i < len(primary); i++ {
		prev, curr := primary[i-1], primary[i]
		if math.Abs(float64(curr-prev)) > acceptable {
			out = append(out, types.Gap(prev))
		}
		out = append(out, types.Peak(curr))
	}
	return out
}

// Resolve replaces every gap with a concrete index, left to right, so a gap's
// front neighbour is always already resolved. The first secondary peak within
// stats.Tolerance of the neighbours' midpoint wins; otherwise the truncated
// midpoint is used. A gap without a right neighbour is extrapolated by one
// median gap.
func Resolve(entries []types.PeakEntry, secondary []int, stats types.GapStats) ([]int, []types.Resolution) {
	out := make([]int, len(entries))
	var resolutions []types.Resolution

	for i, e := range entries {
		if e.Kind == types.EntryPeak {
			out[i] = e.Index
			continue
		}

		r := types.Resolution{Position: i, Front: -1, Back: -1}
		hasFront := i > 0
		hasBack := i+1 < len(entries) && entries[i+1].Kind == types.EntryPeak
		if hasFront {
			r.Front = out[i-1]
		}
		if hasBack {
			r.Back = entries[i+1].Index
		}

		switch {
		case hasFront && hasBack:
			r.Middle = float64(r.Front+r.Back) / 2
			if match, ok := firstWithin(secondary, r.Middle, stats.Tolerance); ok {
				r.Index = match
				r.Source = types.SourceSecondary
			} else {
				r.Index = int(r.Middle)
				r.Source = types.SourceMidpoint
			}
		case hasFront:
			r.Middle = float64(r.Front) + stats.MedianGap
			r.Index = int(r.Middle)
			r.Source = types.SourceExtrapolated
		case hasBack:
			r.Middle = float64(r.Back) - stats.MedianGap
			r.Index = int(r.Middle)
			r.Source = types.SourceExtrapolated
		default:
			r.Middle = float64(e.Index)
			r.Index = e.Index
			r.Source = types.SourceExtrapolated
		}

		out[i] = r.Index
		resolutions = append(resolutions, r)
	}
	return out, resolutions
}

// firstWithin returns the first candidate, in iteration order, strictly
// closer than tol to target.
func firstWithin(candidates []int, target, tol float64) (int, bool) {
	for _, c := range candidates {
		if math.Abs(float64(c)-target) < tol {
			return c, true
		}
	}
	return 0, false
}

// Reconcile runs GapStats, Classify and Resolve. With fewer than two primary
// peaks there is no spacing to judge, so the peaks are returned as they are.
func Reconcile(primary, secondary []int) types.Reconciliation {
	stats, ok := GapStats(primary)
	if !ok {
		peaks := make([]int, len(primary))
		copy(peaks, primary)
		entries := make([]types.PeakEntry, len(primary))
		for i, p := range primary {
			entries[i] = types.Peak(p)
		}
		return types.Reconciliation{Entries: entries, Peaks: peaks}
	}

	entries := Classify(primary, stats.AcceptableDistance)
	peaks, resolutions := Resolve(entries, secondary, stats)
	return types.Reconciliation{
		Stats:       stats,
		Entries:     entries,
		Resolutions: resolutions,
		Peaks:       peaks,
	}
}
