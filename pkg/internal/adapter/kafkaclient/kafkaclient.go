// Package kafkaclient publishes breath reports as JSON events.
package kafkaclient

import (
	"context"
	"sync"
	"time"

	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	"github.com/joeydtaylor/breathscope/pkg/internal/utils"
)

// EventSchema is written to every message's "schema" header.
const EventSchema = "breathscope.report.v1"

// KafkaClient implements types.KafkaClientAdapter.
type KafkaClient struct {
	ctx               context.Context
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	producer    types.KafkaMessageWriter
	topic       string
	keyTemplate string
	headers     map[string]string
	configLock  sync.RWMutex

	loggers     []types.Logger
	loggersLock sync.Mutex

	now func() time.Time
}

// NewKafkaClientAdapter creates a publisher and applies options.
func NewKafkaClientAdapter(ctx context.Context, options ...types.Option[types.KafkaClientAdapter]) types.KafkaClientAdapter {
	a := &KafkaClient{
		ctx: ctx,
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "KAFKA_CLIENT",
		},
		keyTemplate: "{id}",
		headers:     map[string]string{},
		now:         time.Now,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}

	return a
}
