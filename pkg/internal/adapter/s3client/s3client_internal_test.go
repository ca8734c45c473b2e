package s3client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joeydtaylor/breathscope/pkg/internal/archive"
	"github.com/joeydtaylor/breathscope/pkg/internal/export"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

type fakePut struct {
	mu       sync.Mutex
	failures int
	failWith error
	inputs   []*s3.PutObjectInput
	bodies   [][]byte
}

func (f *fakePut) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	if f.failures > 0 {
		f.failures--
		return nil, f.failWith
	}
	return &s3.PutObjectOutput{}, nil
}

var fixedNow = time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

func newTestAdapter(cli types.S3PutAPI, opts ...types.Option[types.S3ClientAdapter]) *S3Client {
	opts = append([]types.Option[types.S3ClientAdapter]{
		WithClientAndBucket(cli, "breath-bucket"),
		WithRetryBackoff(time.Millisecond),
	}, opts...)
	a := NewS3ClientAdapter(context.Background(), opts...).(*S3Client)
	a.now = func() time.Time { return fixedNow }
	return a
}

func TestS3Client_RenderKey(t *testing.T) {
	a := newTestAdapter(&fakePut{}, WithWriterConfig(types.S3WriterConfig{
		PrefixTemplate: "captures/{yyyy}/{MM}/{dd}",
		FileNameTmpl:   "{HH}{mm}-{name}",
	}))
	if got := a.renderKey(fixedNow, "eval.data.zst"); got != "captures/2024/02/03/0405-eval.data.zst" {
		t.Fatalf("unexpected key %q", got)
	}

	b := newTestAdapter(&fakePut{})
	if got := b.renderKey(fixedNow, "x.bin"); got != "x.bin" {
		t.Fatalf("expected bare name without prefix, got %q", got)
	}
}

func TestS3Client_PutSetsHeaders(t *testing.T) {
	f := &fakePut{}
	a := newTestAdapter(f, WithPrefixTemplate("org/{yyyy}/"), WithSSE("aws:kms", "key-1"))

	key, err := a.Put(context.Background(), types.S3Object{
		Name:            "eval.data.gz",
		ContentEncoding: "gzip",
		Body:            []byte("payload"),
	})
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if key != "org/2024/eval.data.gz" {
		t.Fatalf("unexpected key %q", key)
	}

	in := f.inputs[0]
	if aws.ToString(in.Bucket) != "breath-bucket" || aws.ToString(in.Key) != key {
		t.Fatalf("unexpected target %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}
	if aws.ToString(in.ContentType) != "application/octet-stream" || aws.ToString(in.ContentEncoding) != "gzip" {
		t.Fatalf("unexpected content headers %q %q", aws.ToString(in.ContentType), aws.ToString(in.ContentEncoding))
	}
	if in.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || aws.ToString(in.SSEKMSKeyId) != "key-1" {
		t.Fatalf("unexpected SSE settings %v %q", in.ServerSideEncryption, aws.ToString(in.SSEKMSKeyId))
	}
	if string(f.bodies[0]) != "payload" {
		t.Fatalf("unexpected body %q", f.bodies[0])
	}
}

func TestS3Client_PutWithRetry(t *testing.T) {
	f := &fakePut{failures: 2, failWith: errors.New("api error ServiceUnavailable: 503 service unavailable")}
	a := newTestAdapter(f)

	if _, err := a.Put(context.Background(), types.S3Object{Name: "a", Body: []byte("data")}); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if len(f.inputs) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(f.inputs))
	}
	for i, b := range f.bodies {
		if string(b) != "data" {
			t.Fatalf("attempt %d sent %q; body must be rewound", i, b)
		}
	}
}

func TestS3Client_PutWithRetryNonRetryable(t *testing.T) {
	f := &fakePut{failures: 5, failWith: errors.New("AccessDenied")}
	a := newTestAdapter(f)

	if _, err := a.Put(context.Background(), types.S3Object{Name: "a", Body: []byte("data")}); err == nil {
		t.Fatalf("expected error")
	}
	if len(f.inputs) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(f.inputs))
	}
}

func TestS3Client_PutGivesUpAfterMaxAttempts(t *testing.T) {
	f := &fakePut{failures: 10, failWith: errors.New("SlowDown")}
	a := newTestAdapter(f, WithWriterConfig(types.S3WriterConfig{MaxAttempts: 2}))

	if _, err := a.Put(context.Background(), types.S3Object{Name: "a"}); err == nil {
		t.Fatalf("expected error")
	}
	if len(f.inputs) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(f.inputs))
	}
}

func TestS3Client_PutValidation(t *testing.T) {
	a := NewS3ClientAdapter(context.Background())
	if _, err := a.Put(context.Background(), types.S3Object{Name: "a"}); err == nil {
		t.Fatalf("expected error without client and bucket")
	}
	b := newTestAdapter(&fakePut{})
	if _, err := b.Put(context.Background(), types.S3Object{}); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestS3Client_BackoffAndRetryable(t *testing.T) {
	for attempt := 1; attempt <= 8; attempt++ {
		if d := backoffDuration(100*time.Millisecond, attempt); d < 0 || d > defaultMaxBackoff {
			t.Fatalf("attempt %d: backoff %s out of range", attempt, d)
		}
	}
	if isRetryable(context.Canceled) || isRetryable(nil) || !isRetryable(errors.New("request timeout")) {
		t.Fatalf("unexpected retry classification")
	}
}

func TestS3Client_SetComponentMetadataPreservesType(t *testing.T) {
	a := NewS3ClientAdapter(context.Background(), WithComponentMetadata("uploader", "id-1"))
	meta := a.GetComponentMetadata()
	if meta.Type != "S3_CLIENT" || meta.Name != "uploader" || meta.ID != "id-1" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
}

func TestUploadCaptureAndReport(t *testing.T) {
	f := &fakePut{}
	a := newTestAdapter(f, WithPrefixTemplate("runs/{yyyy}{MM}{dd}"))

	samples := []types.SamplePair{{A: 1, B: 2}, {A: 3, B: 4}}
	key, err := UploadCapture(context.Background(), a, "eval.data", samples, types.CompressZstd)
	if err != nil {
		t.Fatalf("UploadCapture error: %v", err)
	}
	if key != "runs/20240203/eval.data.zst" {
		t.Fatalf("unexpected capture key %q", key)
	}
	back, err := archive.DecodeCapture(f.bodies[0], types.CompressZstd)
	if err != nil || len(back) != 2 || back[1] != samples[1] {
		t.Fatalf("uploaded capture does not decode: %v %v", back, err)
	}

	keys, err := UploadReport(context.Background(), a, types.Report{ID: "rep", BreathCount: 5}, "snappy")
	if err != nil {
		t.Fatalf("UploadReport error: %v", err)
	}
	if len(keys) != 2 || !strings.HasSuffix(keys[1], "rep.summary.parquet") {
		t.Fatalf("unexpected report keys %v", keys)
	}
	rows, err := export.Decode[export.SummaryRow](f.bodies[2])
	if err != nil || len(rows) != 1 || rows[0].BreathCount != 5 {
		t.Fatalf("uploaded summary does not decode: %v %v", rows, err)
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestS3Client(rt http.RoundTripper) *s3.Client {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		HTTPClient:  &http.Client{Transport: rt},
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("http://s3.test")
		o.Retryer = aws.NopRetryer{}
	})
}

func TestS3Client_PutThroughSDK(t *testing.T) {
	var (
		calls int32
		path  string
		sse   string
	)
	rt := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPut {
			return nil, fmt.Errorf("unexpected method %s", r.Method)
		}
		atomic.AddInt32(&calls, 1)
		path = r.URL.Path
		sse = r.Header.Get("X-Amz-Server-Side-Encryption")
		return &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Header:     http.Header{},
			Body:       io.NopCloser(bytes.NewReader(nil)),
		}, nil
	})

	a := newTestAdapter(newTestS3Client(rt), WithPrefixTemplate("captures"), WithSSE("AES256", ""))
	key, err := a.Put(context.Background(), types.S3Object{Name: "eval.data", Body: []byte("1 2")})
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 request, got %d", calls)
	}
	if path != "/breath-bucket/"+key || key != "captures/eval.data" {
		t.Fatalf("unexpected request path %q for key %q", path, key)
	}
	if sse != "AES256" {
		t.Fatalf("expected AES256 SSE header, got %q", sse)
	}
}
