package s3client

import (
	"context"

	"github.com/joeydtaylor/breathscope/pkg/internal/archive"
	"github.com/joeydtaylor/breathscope/pkg/internal/export"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// UploadCapture archives samples with algorithm and uploads them as
// <name><ext>. It returns the object key.
func UploadCapture(ctx context.Context, a types.S3ClientAdapter, name string, samples []types.SamplePair, algorithm types.CompressionAlgorithm) (string, error) {
	body, err := archive.EncodeCapture(samples, algorithm)
	if err != nil {
		return "", err
	}
	return a.Put(ctx, types.S3Object{
		Name:            name + algorithm.Ext(),
		ContentType:     "text/plain",
		ContentEncoding: archive.ContentEncoding(algorithm),
		Body:            body,
	})
}

// UploadReport writes the report's peak and summary tables as Parquet
// objects named <id>.peaks.parquet and <id>.summary.parquet.
func UploadReport(ctx context.Context, a types.S3ClientAdapter, r types.Report, compression string) ([]string, error) {
	peaks, err := export.Encode(export.PeakRows(r), compression)
	if err != nil {
		return nil, err
	}
	summary, err := export.Encode([]export.SummaryRow{export.Summary(r)}, compression)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, 2)
	for _, obj := range []types.S3Object{
		{Name: r.ID + ".peaks.parquet", ContentType: "application/parquet", Body: peaks},
		{Name: r.ID + ".summary.parquet", ContentType: "application/parquet", Body: summary},
	} {
		key, err := a.Put(ctx, obj)
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
