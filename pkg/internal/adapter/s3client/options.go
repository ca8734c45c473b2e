package s3client

import (
	"time"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// WithLogger attaches loggers.
func WithLogger(l ...types.Logger) types.Option[types.S3ClientAdapter] {
	return func(a types.S3ClientAdapter) { a.ConnectLogger(l...) }
}

// WithClientAndBucket sets the S3 client and bucket.
func WithClientAndBucket(cli types.S3PutAPI, bucket string) types.Option[types.S3ClientAdapter] {
	return func(a types.S3ClientAdapter) {
		a.SetS3ClientDeps(types.S3ClientDeps{Client: cli, Bucket: bucket})
	}
}

// WithWriterConfig sets key layout, encryption and retry settings.
func WithWriterConfig(c types.S3WriterConfig) types.Option[types.S3ClientAdapter] {
	return func(a types.S3ClientAdapter) { a.SetWriterConfig(c) }
}

// WithPrefixTemplate sets the key prefix, e.g. "captures/{yyyy}/{MM}/{dd}/".
func WithPrefixTemplate(prefix string) types.Option[types.S3ClientAdapter] {
	return func(a types.S3ClientAdapter) {
		a.SetWriterConfig(types.S3WriterConfig{PrefixTemplate: prefix})
	}
}

// WithSSE sets server-side encryption ("AES256" or "aws:kms").
func WithSSE(mode, kmsKeyID string) types.Option[types.S3ClientAdapter] {
	return func(a types.S3ClientAdapter) {
		a.SetWriterConfig(types.S3WriterConfig{SSEMode: mode, KMSKeyID: kmsKeyID})
	}
}

// WithRetryBackoff sets the first retry delay; later delays double up to 3s.
func WithRetryBackoff(base time.Duration) types.Option[types.S3ClientAdapter] {
	return func(a types.S3ClientAdapter) {
		if c, ok := a.(*S3Client); ok && base > 0 {
			c.configLock.Lock()
			c.baseBackoff = base
			c.configLock.Unlock()
		}
	}
}

// WithComponentMetadata sets a custom name and ID.
func WithComponentMetadata(name string, id string) types.Option[types.S3ClientAdapter] {
	return func(a types.S3ClientAdapter) { a.SetComponentMetadata(name, id) }
}
