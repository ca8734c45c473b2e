package codec

import (
	"io"
	"strconv"
	"strings"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// Default frame keys written by the acquisition firmware.
const (
	DefaultKeyA = "Ca"
	DefaultKeyB = "Cb"
)

// FrameDecoder parses raw device frames.
type FrameDecoder struct {
	KeyA string
	KeyB string
}

// NewFrameDecoder returns a decoder for "Ca=<int> Cb=<int>" frames.
func NewFrameDecoder() *FrameDecoder {
	return &FrameDecoder{KeyA: DefaultKeyA, KeyB: DefaultKeyB}
}

// DecodeLine accepts a line that starts with "<KeyA>=" and mentions
// "<KeyB>=". Both markers are stripped and the first two fields are read as
// integers; anything after them is ignored.
func (d *FrameDecoder) DecodeLine(line string) (types.SamplePair, bool) {
	markA, markB := d.KeyA+"=", d.KeyB+"="
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, markA) || !strings.Contains(line, markB) {
		return types.SamplePair{}, false
	}
	line = strings.ReplaceAll(line, markA, "")
	line = strings.ReplaceAll(line, markB, "")
	fields := strings.Fields(line)
	if len(fields) < 2 {
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

// DecodeAll reads every frame in r.
func (d *FrameDecoder) DecodeAll(r io.Reader) ([]types.SamplePair, types.DecodeStats, error) {
	return decodeLines(r, d.DecodeLine)
}

// Decode implements types.Decoder.
func (d *FrameDecoder) Decode(r io.Reader) ([]types.SamplePair, error) {
	pairs, _, err := d.DecodeAll(r)
	return pairs, err
}
