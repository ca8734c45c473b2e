// Package archive compresses cleaned captures for storage and upload.
package archive

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/joeydtaylor/breathscope/pkg/internal/codec"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// ParseAlgorithm accepts the algorithm names and a few common aliases.
func ParseAlgorithm(s string) (types.CompressionAlgorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "raw":
		return types.CompressNone, nil
	case "gzip", "gz", "deflate":
		return types.CompressGzip, nil
	case "zstd", "zst":
		return types.CompressZstd, nil
	case "snappy", "sz":
		return types.CompressSnappy, nil
	case "lz4":
		return types.CompressLZ4, nil
	case "brotli", "br":
		return types.CompressBrotli, nil
	default:
		return "", fmt.Errorf("unsupported compression %q", s)
	}
}

var compressed = []types.CompressionAlgorithm{
	types.CompressGzip, types.CompressZstd, types.CompressSnappy, types.CompressLZ4, types.CompressBrotli,
}

// Suffixes returns the extensions of every compressed archive format.
func Suffixes() []string {
	out := make([]string, 0, len(compressed))
	for _, a := range compressed {
		out = append(out, a.Ext())
	}
	return out
}

// AlgorithmFromName infers the algorithm from a file extension.
func AlgorithmFromName(name string) types.CompressionAlgorithm {
	for _, a := range compressed {
		if strings.HasSuffix(name, a.Ext()) {
			return a
		}
	}
	return types.CompressNone
}

// ContentEncoding returns the HTTP Content-Encoding for object uploads.
func ContentEncoding(a types.CompressionAlgorithm) string {
	switch a {
	case types.CompressGzip:
		return "gzip"
	case types.CompressZstd:
		return "zstd"
	case types.CompressBrotli:
		return "br"
	case types.CompressSnappy:
		return "x-snappy-framed"
	case types.CompressLZ4:
		return "x-lz4"
	default:
		return ""
	}
}

// Compress encodes data with algorithm.
func Compress(data []byte, algorithm types.CompressionAlgorithm) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch algorithm {
	case types.CompressNone, "":
		return data, nil
	case types.CompressGzip:
		w = gzip.NewWriter(&b)
	case types.CompressSnappy:
		w = snappy.NewBufferedWriter(&b)
	case types.CompressZstd:
		var err error
		w, err = zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
	case types.CompressBrotli:
		w = brotli.NewWriterLevel(&b, brotli.BestCompression)
	case types.CompressLZ4:
		w = lz4.NewWriter(&b)
	default:
		return nil, fmt.Errorf("unsupported compression %q", algorithm)
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte, algorithm types.CompressionAlgorithm) ([]byte, error) {
	var b bytes.Buffer
	var r io.Reader

	switch algorithm {
	case types.CompressNone, "":
		return data, nil
	case types.CompressGzip:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		r = gr
	case types.CompressSnappy:
		r = snappy.NewReader(bytes.NewReader(data))
	case types.CompressZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case types.CompressBrotli:
		r = brotli.NewReader(bytes.NewReader(data))
	case types.CompressLZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported compression %q", algorithm)
	}

	if _, err := io.Copy(&b, r); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// EncodeCapture renders samples as cleaned pair lines and compresses them.
func EncodeCapture(samples []types.SamplePair, algorithm types.CompressionAlgorithm) ([]byte, error) {
	var buf bytes.Buffer
	if err := codec.NewPairEncoder().Encode(&buf, samples); err != nil {
		return nil, err
	}
	return Compress(buf.Bytes(), algorithm)
}

// DecodeCapture reverses EncodeCapture.
func DecodeCapture(data []byte, algorithm types.CompressionAlgorithm) ([]types.SamplePair, error) {
	raw, err := Decompress(data, algorithm)
	if err != nil {
		return nil, err
	}
	return codec.NewPairDecoder().Decode(bytes.NewReader(raw))
}

// WriteFile writes the compressed capture to path plus the algorithm's
// extension and returns the final path.
func WriteFile(path string, samples []types.SamplePair, algorithm types.CompressionAlgorithm) (string, error) {
	data, err := EncodeCapture(samples, algorithm)
	if err != nil {
		return "", err
	}
	final := path + algorithm.Ext()
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return final, nil
}

// ReadFile loads a capture written by WriteFile, picking the algorithm from
// the file extension.
func ReadFile(path string) ([]types.SamplePair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeCapture(data, AlgorithmFromName(path))
}
