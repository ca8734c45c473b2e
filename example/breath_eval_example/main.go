package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joeydtaylor/breathscope/pkg/builder"
)

// Environment:
//
//	BREATH_CAPTURE           raw or cleaned capture file (default eval.data)
//	BREATH_DURATION          collection time, e.g. 30s (default 30s)
//	BREATH_OUT_DIR           where exports and archives go (default ./out)
//	BREATH_ARCHIVE           compression for the capture archive (default zstd)
//	BREATH_S3_BUCKET         upload archive and exports when set
//	BREATH_S3_REPLAY_PREFIX  re-evaluate archived captures under this prefix
//	                         instead of reading BREATH_CAPTURE
//	BREATH_S3_ENDPOINT       LocalStack/MinIO endpoint
//	BREATH_S3_ROLE_ARN       assume this role (with BREATH_S3_WEB_IDENTITY_TOKEN_FILE
//	                         for web identity)
//	BREATH_KAFKA_BROKERS     comma separated; publish the report when set
//	BREATH_KAFKA_TOPIC       default breath.reports
//	BREATH_KAFKA_CA          comma separated CA candidates; enables TLS
//	BREATH_KAFKA_SASL_USER   enables SCRAM with BREATH_KAFKA_SASL_PASS
//
// S3 settings are read by builder.S3ClientConfigFromEnv, Kafka settings by
// builder.KafkaPublishConfigFromEnv and detector settings by
// builder.DetectorConfigFromEnv.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := builder.NewLogger(
		builder.LoggerWithLevel(builder.EnvOr("BREATH_LOG_LEVEL", "info")),
		builder.LoggerWithFields(map[string]interface{}{"app": "breath_eval_example"}),
	)

	if err := run(ctx, logger); err != nil {
		logger.Error("Evaluation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger builder.Logger) error {
	path := builder.EnvOr("BREATH_CAPTURE", "eval.data")
	duration, err := time.ParseDuration(builder.EnvOr("BREATH_DURATION", "30s"))
	if err != nil {
		return fmt.Errorf("BREATH_DURATION: %w", err)
	}
	cfg, err := builder.DetectorConfigFromEnv("")
	if err != nil {
		return err
	}

	if prefix := builder.EnvOr("BREATH_S3_REPLAY_PREFIX", ""); prefix != "" {
		return replay(ctx, logger, cfg, prefix, duration)
	}

	outDir := builder.EnvOr("BREATH_OUT_DIR", "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	// Raw device files carry "Ca=... Cb=..." lines; an already cleaned file
	// has none and would be emptied, so clean only when frames are present.
	if raw, err := isRaw(path); err != nil {
		return err
	} else if raw {
		stats, err := builder.CleanCaptureFile(ctx, path)
		if err != nil {
			return err
		}
		logger.Info("Cleaned capture", "path", path, "accepted", stats.Accepted, "skipped", stats.Skipped)
	}

	capture, stats, err := builder.LoadCaptureFile(path, duration)
	if err != nil {
		return err
	}
	logger.Info("Loaded capture", "samples", len(capture.Samples), "skipped", stats.Skipped)

	sensor := builder.NewSensor(
		builder.SensorWithOnGapResolvedFunc(func(c builder.ComponentMetadata, r builder.Resolution) {
			fmt.Printf("gap at %d filled with %d (%s)\n", r.Position, r.Index, r.Source)
		}),
	)
	detector := builder.NewDetector(
		builder.DetectorWithConfig(cfg),
		builder.DetectorWithLogger(logger),
		builder.DetectorWithSensor(sensor),
	)

	report, err := detector.Detect(capture)
	if err != nil {
		return err
	}
	fmt.Printf("Total breaths detected: %d cycles\n", report.BreathCount)
	fmt.Printf("Breath rate: %.2f breaths/minute\n", report.BreathsPerMinute)
	if report.Spectral != nil {
		fmt.Printf("Spectral cross-check: %.2f breaths/minute\n", report.Spectral.BreathsPerMinute)
	}

	peaksPath, summaryPath, err := builder.ExportReport(outDir, report, "zstd")
	if err != nil {
		return err
	}
	logger.Info("Exported report", "peaks", peaksPath, "summary", summaryPath)

	alg, err := builder.ParseCompression(builder.EnvOr("BREATH_ARCHIVE", "zstd"))
	if err != nil {
		return err
	}
	archived, err := builder.ArchiveCapture(filepath.Join(outDir, report.ID+".data"), capture.Samples, alg)
	if err != nil {
		return err
	}
	logger.Info("Archived capture", "path", archived)

	if bucket := builder.EnvOr("BREATH_S3_BUCKET", ""); bucket != "" {
		if err := upload(ctx, logger, bucket, report, capture); err != nil {
			return err
		}
	}
	if kcfg := builder.KafkaPublishConfigFromEnv(""); len(kcfg.Brokers) > 0 {
		if err := publish(ctx, logger, kcfg, report); err != nil {
			return err
		}
	}
	return nil
}

func isRaw(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return strings.Contains(string(data), "Ca="), nil
}

func s3Client(ctx context.Context, logger builder.Logger) (*s3.Client, error) {
	scfg := builder.S3ClientConfigFromEnv("")
	logger.Info("Connecting to S3", "mode", scfg.Mode(), "endpoint", scfg.Endpoint)
	return builder.NewS3Client(ctx, scfg)
}

func upload(ctx context.Context, logger builder.Logger, bucket string, report builder.Report, capture builder.Capture) error {
	cli, err := s3Client(ctx, logger)
	if err != nil {
		return err
	}

	uploader := builder.NewS3ClientAdapter(ctx,
		builder.S3ClientAdapterWithClientAndBucket(cli, bucket),
		builder.S3ClientAdapterWithWriterPrefixTemplate("breathscope/{yyyy}/{MM}/{dd}"),
		builder.S3ClientAdapterWithLogger(logger),
	)
	if _, err := builder.UploadCapture(ctx, uploader, report.ID+".data", capture.Samples, builder.CompressZstd); err != nil {
		return err
	}
	_, err = builder.UploadReport(ctx, uploader, report, "zstd")
	return err
}

// replay runs detection over every archived capture under prefix.
func replay(ctx context.Context, logger builder.Logger, cfg builder.DetectorConfig, prefix string, duration time.Duration) error {
	bucket := builder.EnvOr("BREATH_S3_BUCKET", "")
	if bucket == "" {
		return fmt.Errorf("BREATH_S3_REPLAY_PREFIX requires BREATH_S3_BUCKET")
	}
	cli, err := s3Client(ctx, logger)
	if err != nil {
		return err
	}
	keys, err := builder.S3ListKeys(ctx, cli, bucket, prefix, builder.ArchiveSuffixes()...)
	if err != nil {
		return err
	}
	logger.Info("Replaying archived captures", "bucket", bucket, "prefix", prefix, "count", len(keys))

	detector := builder.NewDetector(
		builder.DetectorWithConfig(cfg),
		builder.DetectorWithLogger(logger),
	)
	for _, key := range keys {
		samples, err := builder.S3FetchCapture(ctx, cli, bucket, key)
		if err != nil {
			return err
		}
		report, err := detector.Detect(builder.Capture{Samples: samples, Duration: duration})
		if err != nil {
			logger.Warn("Replay failed", "key", key, "error", err)
			continue
		}
		fmt.Printf("%s: %d cycles, %.2f breaths/minute\n", key, report.BreathCount, report.BreathsPerMinute)
	}
	return nil
}

func publish(ctx context.Context, logger builder.Logger, kcfg builder.KafkaPublishConfig, report builder.Report) error {
	w, err := builder.NewKafkaGoWriterFromConfig(kcfg)
	if err != nil {
		return err
	}
	defer w.Close()
	logger.Info("Publishing report", "brokers", kcfg.Brokers, "topic", kcfg.Topic, "secure", kcfg.Secure())

	k := builder.NewKafkaClientAdapter(ctx,
		builder.KafkaClientAdapterWithKafkaGoWriter(w),
		builder.KafkaClientAdapterWithWriterKeyTemplate("{profile}/{id}"),
		builder.KafkaClientAdapterWithLogger(logger),
	)
	return k.Publish(ctx, report)
}
