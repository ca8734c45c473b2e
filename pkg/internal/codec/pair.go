package codec

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// PairDecoder parses cleaned "<a> <b>" lines.
type PairDecoder struct{}

// NewPairDecoder returns a cleaned-capture decoder.
func NewPairDecoder() *PairDecoder {
	return &PairDecoder{}
}

// DecodeLine accepts exactly two integer fields.
func (d *PairDecoder) DecodeLine(line string) (types.SamplePair, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return types.SamplePair{}, false
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return types.SamplePair{}, false
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return types.SamplePair{}, false
	}
	return types.SamplePair{A: a, B: b}, true
}

// DecodeAll reads every pair in r.
func (d *PairDecoder) DecodeAll(r io.Reader) ([]types.SamplePair, types.DecodeStats, error) {
	return decodeLines(r, d.DecodeLine)
}

// Decode implements types.Decoder.
func (d *PairDecoder) Decode(r io.Reader) ([]types.SamplePair, error) {
	pairs, _, err := d.DecodeAll(r)
	return pairs, err
}

// PairEncoder writes cleaned "<a> <b>" lines separated by newlines, with no
// trailing newline after the last pair.
type PairEncoder struct{}

// NewPairEncoder returns a cleaned-capture encoder.
func NewPairEncoder() *PairEncoder {
	return &PairEncoder{}
}

// EncodeLine formats one pair.
func (e *PairEncoder) EncodeLine(p types.SamplePair) string {
	return strconv.Itoa(p.A) + " " + strconv.Itoa(p.B)
}

// Encode implements types.Encoder.
func (e *PairEncoder) Encode(w io.Writer, pairs []types.SamplePair) error {
	bw := bufio.NewWriter(w)
	for i, p := range pairs {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(e.EncodeLine(p)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
