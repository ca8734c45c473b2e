// Package s3client uploads capture archives and report exports to S3 or an
// S3-compatible store.
package s3client

import (
	"context"
	"sync"
	"time"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	"github.com/joeydtaylor/breathscope/pkg/internal/utils"
)

const (
	defaultMaxAttempts = 3
	defaultBaseBackoff = 100 * time.Millisecond
	defaultMaxBackoff  = 3 * time.Second
)

// S3Client implements types.S3ClientAdapter.
type S3Client struct {
	ctx               context.Context
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	cli    types.S3PutAPI
	bucket string

	prefixTemplate string
	fileNameTmpl   string
	sseMode        string
	kmsKey         string
	maxAttempts    int
	baseBackoff    time.Duration
	configLock     sync.RWMutex

	loggers     []types.Logger
	loggersLock sync.Mutex

	now func() time.Time
}

// NewS3ClientAdapter creates an uploader and applies options.
func NewS3ClientAdapter(ctx context.Context, options ...types.Option[types.S3ClientAdapter]) types.S3ClientAdapter {
	a := &S3Client{
		ctx: ctx,
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "S3_CLIENT",
		},
		fileNameTmpl: "{name}",
		maxAttempts:  defaultMaxAttempts,
		baseBackoff:  defaultBaseBackoff,
		now:          time.Now,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}

	return a
}
