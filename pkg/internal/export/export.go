// Package export writes detection reports as Parquet tables: one row per
// peak and one summary row per report.
package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	parquet "github.com/parquet-go/parquet-go"
)

// Peak row roles.
const (
	RolePrimary    = "primary"
	RoleSecondary  = "secondary"
	RoleReconciled = "reconciled"
)

// PeakRow is one peak of a report.
type PeakRow struct {
	ReportID string `parquet:"report_id"`
	Role     string `parquet:"role"`
	Channel  string `parquet:"channel"`
	Seq      int64  `parquet:"seq"`
	Index    int64  `parquet:"index"`
	Source   string `parquet:"source"` // resolution source for filled gaps, empty otherwise
}

// SummaryRow is the headline of a report.
type SummaryRow struct {
	ReportID           string  `parquet:"report_id"`
	Primary            string  `parquet:"primary_channel"`
	Profile            string  `parquet:"profile"`
	BreathCount        int64   `parquet:"breath_count"`
	DurationMS         int64   `parquet:"duration_ms"`
	BreathsPerMinute   float64 `parquet:"breaths_per_minute"`
	MedianGap          float64 `parquet:"median_gap"`
	Tolerance          float64 `parquet:"tolerance"`
	AcceptableDistance float64 `parquet:"acceptable_distance"`
	PrimaryPeaks       int64   `parquet:"primary_peaks"`
	SecondaryPeaks     int64   `parquet:"secondary_peaks"`
	Gaps               int64   `parquet:"gaps"`
	SpectralBPM        float64 `parquet:"spectral_bpm"` // 0 when not computed
}

// PeakRows flattens the three peak sets of r.
func PeakRows(r types.Report) []PeakRow {
	rows := make([]PeakRow, 0, len(r.Primary.Peaks)+len(r.Secondary.Peaks)+len(r.Reconciliation.Peaks))
	add := func(role string, ch types.Channel, peaks []int, sources map[int]types.ResolutionSource) {
		for i, p := range peaks {
			rows = append(rows, PeakRow{
				ReportID: r.ID,
				Role:     role,
				Channel:  ch.String(),
				Seq:      int64(i),
				Index:    int64(p),
				Source:   string(sources[i]),
			})
		}
	}

	sources := make(map[int]types.ResolutionSource, len(r.Reconciliation.Resolutions))
	for _, res := range r.Reconciliation.Resolutions {
		sources[res.Position] = res.Source
	}

	add(RolePrimary, r.Primary.Channel, r.Primary.Peaks, nil)
	add(RoleSecondary, r.Secondary.Channel, r.Secondary.Peaks, nil)
	add(RoleReconciled, r.Primary.Channel, r.Reconciliation.Peaks, sources)
	return rows
}

// Summary builds the summary row of r.
func Summary(r types.Report) SummaryRow {
	row := SummaryRow{
		ReportID:           r.ID,
		Primary:            r.Primary.Channel.String(),
		Profile:            string(r.Profile),
		BreathCount:        int64(r.BreathCount),
		DurationMS:         r.Duration.Milliseconds(),
		BreathsPerMinute:   r.BreathsPerMinute,
		MedianGap:          r.Reconciliation.Stats.MedianGap,
		Tolerance:          r.Reconciliation.Stats.Tolerance,
		AcceptableDistance: r.Reconciliation.Stats.AcceptableDistance,
		PrimaryPeaks:       int64(len(r.Primary.Peaks)),
		SecondaryPeaks:     int64(len(r.Secondary.Peaks)),
		Gaps:               int64(len(r.Reconciliation.Resolutions)),
	}
	if r.Spectral != nil {
		row.SpectralBPM = r.Spectral.BreathsPerMinute
	}
	return row
}

// CompressionOption maps a codec name to a writer option; snappy is the default.
func CompressionOption(name string) parquet.WriterOption {
	switch strings.ToLower(name) {
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	case "gzip", "gz":
		return parquet.Compression(&parquet.Gzip)
	default:
		return parquet.Compression(&parquet.Snappy)
	}
}

// Write encodes rows as a single Parquet file on w.
func Write[T any](w io.Writer, rows []T, compression string) error {
	pw := parquet.NewGenericWriter[T](w, CompressionOption(compression))
	if len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			return err
		}
	}
	return pw.Close()
}

// Encode is Write into a fresh buffer.
func Encode[T any](rows []T, compression string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rows, compression); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read decodes every row of a Parquet file.
func Read[T any](ra io.ReaderAt) ([]T, error) {
	gr := parquet.NewGenericReader[T](ra)
	defer gr.Close()

	out := make([]T, 0, 1024)
	batch := make([]T, 1024)
	for {
		n, err := gr.Read(batch)
		if n > 0 {
			out = append(out, batch[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Decode is Read over an in-memory file.
func Decode[T any](data []byte) ([]T, error) {
	return Read[T](bytes.NewReader(data))
}

// WriteReport writes <dir>/<id>.peaks.parquet and <dir>/<id>.summary.parquet
// and returns both paths.
func WriteReport(dir string, r types.Report, compression string) (peaksPath, summaryPath string, err error) {
	peaks, err := Encode(PeakRows(r), compression)
	if err != nil {
		return "", "", err
	}
	summary, err := Encode([]SummaryRow{Summary(r)}, compression)
	if err != nil {
		return "", "", err
	}

	peaksPath = filepath.Join(dir, r.ID+".peaks.parquet")
	summaryPath = filepath.Join(dir, r.ID+".summary.parquet")
	if err := os.WriteFile(peaksPath, peaks, 0o644); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(summaryPath, summary, 0o644); err != nil {
		return "", "", err
	}
	return peaksPath, summaryPath, nil
}
