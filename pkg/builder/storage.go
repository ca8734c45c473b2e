package builder

import (
	"context"
	"io"
	"time"

	"github.com/joeydtaylor/breathscope/pkg/internal/archive"
	"github.com/joeydtaylor/breathscope/pkg/internal/capture"
	"github.com/joeydtaylor/breathscope/pkg/internal/export"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

type CompressionAlgorithm = types.CompressionAlgorithm

const (
	CompressNone   = types.CompressNone
	CompressGzip   = types.CompressGzip
	CompressZstd   = types.CompressZstd
	CompressSnappy = types.CompressSnappy
	CompressLZ4    = types.CompressLZ4
	CompressBrotli = types.CompressBrotli
)

type (
	PeakRow    = export.PeakRow
	SummaryRow = export.SummaryRow
)

// CleanCapture copies the valid "Ca=<a> Cb=<b>" lines of r to w as "<a> <b>".
func CleanCapture(ctx context.Context, r io.Reader, w io.Writer) (DecodeStats, error) {
	return capture.Clean(ctx, r, w)
}

// CleanCaptureFile rewrites a raw capture file in place with only cleaned lines.
func CleanCaptureFile(ctx context.Context, path string) (DecodeStats, error) {
	return capture.CleanFile(ctx, path)
}

// LoadCapture reads cleaned "<a> <b>" lines.
func LoadCapture(r io.Reader) ([]SamplePair, DecodeStats, error) {
	return capture.Load(r)
}

// LoadCaptureFile reads a cleaned capture file and attaches duration.
func LoadCaptureFile(path string, duration time.Duration) (Capture, DecodeStats, error) {
	return capture.LoadFile(path, duration)
}

// ParseCompression maps a name such as "zstd" or "gz" to an algorithm.
func ParseCompression(name string) (CompressionAlgorithm, error) {
	return archive.ParseAlgorithm(name)
}

// ArchiveCapture writes samples compressed with algorithm; the returned path
// carries the algorithm's extension.
func ArchiveCapture(path string, samples []SamplePair, algorithm CompressionAlgorithm) (string, error) {
	return archive.WriteFile(path, samples, algorithm)
}

// ReadArchivedCapture reads a file written by ArchiveCapture.
func ReadArchivedCapture(path string) ([]SamplePair, error) {
	return archive.ReadFile(path)
}

// ExportReport writes <id>.peaks.parquet and <id>.summary.parquet into dir.
func ExportReport(dir string, r Report, compression string) (peaksPath, summaryPath string, err error) {
	return export.WriteReport(dir, r, compression)
}

// ExportPeakRows flattens a report into parquet peak rows.
func ExportPeakRows(r Report) []PeakRow {
	return export.PeakRows(r)
}

// ExportSummary flattens a report into its parquet summary row.
func ExportSummary(r Report) SummaryRow {
	return export.Summary(r)
}

// ArchiveSuffixes lists the file extensions ArchiveCapture can produce.
func ArchiveSuffixes() []string {
	return archive.Suffixes()
}
