package s3client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	"github.com/joeydtaylor/breathscope/pkg/internal/utils"
)

// Put uploads obj under the rendered key and returns the key. A nil ctx
// falls back to the context the adapter was built with.
func (a *S3Client) Put(ctx context.Context, obj types.S3Object) (string, error) {
	if ctx == nil {
		ctx = a.ctx
	}

	a.configLock.RLock()
	cli, bucket := a.cli, a.bucket
	sseMode, kmsKey := a.sseMode, a.kmsKey
	a.configLock.RUnlock()

	if cli == nil || bucket == "" {
		return "", fmt.Errorf("s3client: Put requires client and bucket")
	}
	if obj.Name == "" {
		return "", fmt.Errorf("s3client: object name is empty")
	}

	key := a.renderKey(a.now(), obj.Name)
	ct := obj.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	put := &s3api.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(ct),
	}
	if obj.ContentEncoding != "" {
		put.ContentEncoding = aws.String(obj.ContentEncoding)
	}
	switch strings.ToLower(sseMode) {
	case "aes256":
		put.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	case "aws:kms":
		put.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		if kmsKey != "" {
			put.SSEKMSKeyId = aws.String(kmsKey)
		}
	}

	dur, err := a.putWithRetry(ctx, cli, put, obj.Body)
	if err != nil {
		a.NotifyLoggers(types.ErrorLevel, "PutObject failed",
			"component", a.GetComponentMetadata(), "event", "Put",
			"bucket", bucket, "key", key, "error", err)
		return "", err
	}

	a.NotifyLoggers(types.InfoLevel, "Put",
		"component", a.GetComponentMetadata(), "event", "Put",
		"bucket", bucket, "key", key, "bytes", len(obj.Body), "duration", dur)
	return key, nil
}

func (a *S3Client) renderKey(now time.Time, name string) string {
	a.configLock.RLock()
	prefixTpl, nameTpl := a.prefixTemplate, a.fileNameTmpl
	a.configLock.RUnlock()

	repl := utils.TimeTokens(now)
	repl["{name}"] = name

	prefix := utils.RenderTemplate(prefixTpl, repl)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return path.Join(prefix, utils.RenderTemplate(nameTpl, repl))
}

func (a *S3Client) putWithRetry(ctx context.Context, cli types.S3PutAPI, put *s3api.PutObjectInput, body []byte) (time.Duration, error) {
	a.configLock.RLock()
	maxAttempts, base := a.maxAttempts, a.baseBackoff
	a.configLock.RUnlock()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		put.Body = bytes.NewReader(body)

		start := time.Now()
		_, err := cli.PutObject(ctx, put)
		dur := time.Since(start)
		if err == nil {
			return dur, nil
		}

		lastErr = err
		a.NotifyLoggers(types.WarnLevel, "PutObject retry",
			"component", a.GetComponentMetadata(),
			"event", "PutObject",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"key", aws.ToString(put.Key),
			"error", err,
		)

		if !isRetryable(err) || attempt == maxAttempts || ctx.Err() != nil {
			return 0, err
		}

		select {
		case <-time.After(backoffDuration(base, attempt)):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return 0, lastErr
}

func backoffDuration(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := base << (attempt - 1)
	if d > defaultMaxBackoff {
		d = defaultMaxBackoff
	}
	return time.Duration(rand.Int63n(int64(d) + 1))
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "throttl"),
		strings.Contains(msg, "slowdown"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "tempor"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "eof"),
		strings.Contains(msg, "internalerror"),
		strings.Contains(msg, "service unavailable"),
		strings.Contains(msg, "503"),
		strings.Contains(msg, "500"):
		return true
	default:
		return false
	}
}
