package types

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3PutAPI is the slice of *s3.Client the uploader needs.
type S3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ClientDeps wires a concrete client and bucket into the adapter.
type S3ClientDeps struct {
	Client S3PutAPI // required; *s3.Client for AWS, LocalStack or MinIO
	Bucket string   // required
}

// S3WriterConfig controls object layout.
type S3WriterConfig struct {
	PrefixTemplate string // e.g. "captures/{yyyy}/{MM}/{dd}/"
	FileNameTmpl   string // e.g. "{name}-{ts}"; default "{name}"
	SSEMode        string // "", "AES256" or "aws:kms"
	KMSKeyID       string
	MaxAttempts    int // PutObject attempts, default 3
}

// S3Object is one payload to upload.
type S3Object struct {
	Name            string // substituted into {name}; should carry the extension
	ContentType     string
	ContentEncoding string
	Body            []byte
}

// S3ClientAdapter uploads capture archives and report exports.
type S3ClientAdapter interface {
	ConnectLogger(...Logger)
	SetS3ClientDeps(S3ClientDeps)
	SetWriterConfig(S3WriterConfig)
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	// Put uploads obj and returns the rendered object key.
	Put(ctx context.Context, obj S3Object) (string, error)
}
