package archive_test

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/joeydtaylor/breathscope/pkg/internal/archive"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

var algorithms = []types.CompressionAlgorithm{
	types.CompressNone,
	types.CompressGzip,
	types.CompressZstd,
	types.CompressSnappy,
	types.CompressLZ4,
	types.CompressBrotli,
}

func samplePairs(n int) []types.SamplePair {
	out := make([]types.SamplePair, n)
	for i := range out {
		out[i] = types.SamplePair{A: 2000 + i%37, B: 2100 - i%41}
	}
	return out
}

func TestCompressDecompress(t *testing.T) {
	payload := []byte(strings.Repeat("2048 2100\n", 500))
	for _, alg := range algorithms {
		t.Run(string(alg), func(t *testing.T) {
			packed, err := archive.Compress(payload, alg)
			if err != nil {
				t.Fatalf("Compress error: %v", err)
			}
			if alg != types.CompressNone && len(packed) >= len(payload) {
				t.Fatalf("expected repetitive payload to shrink: %d >= %d", len(packed), len(payload))
			}
			unpacked, err := archive.Decompress(packed, alg)
			if err != nil {
				t.Fatalf("Decompress error: %v", err)
			}
			if !bytes.Equal(unpacked, payload) {
				t.Fatalf("payload mismatch after %s", alg)
			}
		})
	}
}

func TestUnsupportedAlgorithm(t *testing.T) {
	if _, err := archive.Compress([]byte("x"), "rar"); err == nil {
		t.Fatalf("expected error compressing with unknown algorithm")
	}
	if _, err := archive.Decompress([]byte("x"), "rar"); err == nil {
		t.Fatalf("expected error decompressing with unknown algorithm")
	}
	if _, err := archive.ParseAlgorithm("rar"); err == nil {
		t.Fatalf("expected error parsing unknown algorithm")
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := map[string]types.CompressionAlgorithm{
		"":      types.CompressNone,
		"GZ":    types.CompressGzip,
		"zst":   types.CompressZstd,
		"sz":    types.CompressSnappy,
		" lz4 ": types.CompressLZ4,
		"br":    types.CompressBrotli,
	}
	for in, want := range tests {
		got, err := archive.ParseAlgorithm(in)
		if err != nil || got != want {
			t.Fatalf("ParseAlgorithm(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
}

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	samples := samplePairs(1000)

	for _, alg := range algorithms {
		path, err := archive.WriteFile(filepath.Join(dir, "capture-"+string(alg)+".data"), samples, alg)
		if err != nil {
			t.Fatalf("%s: WriteFile error: %v", alg, err)
		}
		if !strings.HasSuffix(path, ".data"+alg.Ext()) {
			t.Fatalf("%s: unexpected path %s", alg, path)
		}
		if archive.AlgorithmFromName(path) != alg {
			t.Fatalf("%s: extension not recognised in %s", alg, path)
		}

		back, err := archive.ReadFile(path)
		if err != nil {
			t.Fatalf("%s: ReadFile error: %v", alg, err)
		}
		if !reflect.DeepEqual(back, samples) {
			t.Fatalf("%s: samples differ after archive round trip", alg)
		}
	}
}

func TestContentEncoding(t *testing.T) {
	if archive.ContentEncoding(types.CompressGzip) != "gzip" || archive.ContentEncoding(types.CompressNone) != "" {
		t.Fatalf("unexpected content encodings")
	}
}

func TestSuffixesMatchAlgorithmFromName(t *testing.T) {
	got := archive.Suffixes()
	if len(got) != len(algorithms)-1 {
		t.Fatalf("expected %d suffixes, got %v", len(algorithms)-1, got)
	}
	for _, ext := range got {
		if archive.AlgorithmFromName("runs/eval.data"+ext) == types.CompressNone {
			t.Fatalf("suffix %q not recognised", ext)
		}
	}
}
