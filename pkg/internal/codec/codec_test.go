package codec_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/joeydtaylor/breathscope/pkg/internal/codec"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// Interface conformance.
var (
	_ types.Decoder[[]types.SamplePair] = (*codec.FrameDecoder)(nil)
	_ types.Decoder[[]types.SamplePair] = (*codec.PairDecoder)(nil)
	_ types.Encoder[[]types.SamplePair] = (*codec.PairEncoder)(nil)
	_ types.Encoder[types.Report]       = (*codec.JSONEncoder[types.Report])(nil)
)

func TestFrameDecoder_DecodeLine(t *testing.T) {
	tests := []struct {
		line string
		want types.SamplePair
		ok   bool
	}{
		{"Ca=123 Cb=456", types.SamplePair{A: 123, B: 456}, true},
		{"  Ca=7 Cb=-8  ", types.SamplePair{A: 7, B: -8}, true},
		{"Ca=1 Cb=2 trailing", types.SamplePair{A: 1, B: 2}, true},
		{"Cb=456 Ca=123", types.SamplePair{}, false},
		{"Ca=123", types.SamplePair{}, false},
		{"Ca=123Cb=456", types.SamplePair{}, false},
		{"Ca=x Cb=2", types.SamplePair{}, false},
		{"boot v1.2", types.SamplePair{}, false},
		{"", types.SamplePair{}, false},
	}

	d := codec.NewFrameDecoder()
	for _, tt := range tests {
		got, ok := d.DecodeLine(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("DecodeLine(%q) = %+v, %v; want %+v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFrameDecoder_CustomKeys(t *testing.T) {
	d := &codec.FrameDecoder{KeyA: "L", KeyB: "R"}
	got, ok := d.DecodeLine("L=10 R=20")
	if !ok || got != (types.SamplePair{A: 10, B: 20}) {
		t.Fatalf("unexpected %+v %v", got, ok)
	}
}

func TestFrameDecoder_DecodeAll(t *testing.T) {
	raw := "reset\nCa=1 Cb=2\nCa=3 Cb=\nCa=5 Cb=6\n\n"
	pairs, stats, err := codec.NewFrameDecoder().DecodeAll(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeAll error: %v", err)
	}
	want := []types.SamplePair{{A: 1, B: 2}, {A: 5, B: 6}}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("expected %v, got %v", want, pairs)
	}
	if stats != (types.DecodeStats{Lines: 5, Accepted: 2, Skipped: 3}) {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestPairDecoder(t *testing.T) {
	raw := "1 2\n3 4 5\nx 6\n 7 8 \n9"
	pairs, stats, err := codec.NewPairDecoder().DecodeAll(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeAll error: %v", err)
	}
	want := []types.SamplePair{{A: 1, B: 2}, {A: 7, B: 8}}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("expected %v, got %v", want, pairs)
	}
	if stats.Accepted != 2 || stats.Skipped != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestPairEncoder(t *testing.T) {
	var buf bytes.Buffer
	pairs := []types.SamplePair{{A: 1, B: 2}, {A: -3, B: 4}}
	if err := codec.NewPairEncoder().Encode(&buf, pairs); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if buf.String() != "1 2\n-3 4" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	back, err := codec.NewPairDecoder().Decode(&buf)
	if err != nil || !reflect.DeepEqual(back, pairs) {
		t.Fatalf("decode of encoded pairs: %v, %v", back, err)
	}
}

func TestJSONCodec(t *testing.T) {
	var buf bytes.Buffer
	in := types.Report{ID: "r1", BreathCount: 7}
	if err := codec.NewJSONEncoder[types.Report]().Encode(&buf, in); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	out, err := codec.NewJSONDecoder[types.Report]().Decode(&buf)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if out.ID != "r1" || out.BreathCount != 7 {
		t.Fatalf("unexpected decoded report %+v", out)
	}
}

func TestFrameDecoder_SkipsOversizedLine(t *testing.T) {
	huge := "Ca=" + strings.Repeat("9", 2<<20) + " Cb=1"
	in := "Ca=1 Cb=2\r\n" + huge + "\nCa=3 Cb=4"

	pairs, stats, err := codec.NewFrameDecoder().DecodeAll(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeAll error: %v", err)
	}
	want := []types.SamplePair{{A: 1, B: 2}, {A: 3, B: 4}}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("expected %v, got %v", want, pairs)
	}
	if stats.Lines != 3 || stats.Accepted != 2 || stats.Skipped != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
