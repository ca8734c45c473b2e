package types

// EntryKind tags a PeakEntry.
type EntryKind int

const (
	EntryPeak EntryKind = iota // a detected peak index
	EntryGap                   // an abnormal gap awaiting resolution
)

func (k EntryKind) String() string {
	if k == EntryGap {
		return "gap"
	}
	return "peak"
}

// PeakEntry is one element of a gap classification: either Peak(Index) or
// Gap(after Index), where a gap's Index is the peak it follows.
type PeakEntry struct {
	Kind  EntryKind
	Index int
}

// Peak builds a peak entry.
func Peak(index int) PeakEntry { return PeakEntry{Kind: EntryPeak, Index: index} }

// Gap builds a gap entry following the peak at afterIndex.
func Gap(afterIndex int) PeakEntry { return PeakEntry{Kind: EntryGap, Index: afterIndex} }

// Plateau is a candidate local maximum spanning [Left, Right].
type Plateau struct {
	Left   int
	Right  int
	Mid    int // (Left + Right) / 2
	Height float64
}

// Width is the number of samples on the plateau.
func (p Plateau) Width() int { return p.Right - p.Left + 1 }

// GapStats summarizes the spacing of a primary peak sequence.
type GapStats struct {
	MedianGap          float64
	Tolerance          float64 // MedianGap / 2
	AcceptableDistance float64 // MedianGap + Tolerance
}

// ResolutionSource records how a gap was filled.
type ResolutionSource string

const (
	SourceSecondary    ResolutionSource = "secondary"    // matched a secondary-channel peak
	SourceMidpoint     ResolutionSource = "midpoint"     // midpoint of the neighbours
	SourceExtrapolated ResolutionSource = "extrapolated" // neighbour +/- median gap
)

// Resolution is the audit record of one filled gap.
type Resolution struct {
	Position int // position in the classification sequence
	Front    int // -1 when there is no left neighbour
	Back     int // -1 when there is no right neighbour
	Middle   float64
	Index    int
	Source   ResolutionSource
}

// Reconciliation is the output of the cross-channel reconciler.
type Reconciliation struct {
	Stats       GapStats
	Entries     []PeakEntry
	Resolutions []Resolution
	Peaks       []int
}
