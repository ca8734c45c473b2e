package types

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// KafkaMessageWriter is the slice of *kafka.Writer the publisher needs.
type KafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaWriterConfig controls how reports are published.
type KafkaWriterConfig struct {
	Topic       string            // used when the writer has no topic of its own
	KeyTemplate string            // e.g. "{profile}/{id}"; default "{id}"
	Headers     map[string]string // static headers added to every message
}

// KafkaClientAdapter publishes breath reports as JSON events.
type KafkaClientAdapter interface {
	ConnectLogger(...Logger)
	SetProducer(KafkaMessageWriter)
	SetWriterConfig(KafkaWriterConfig)
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	// Publish writes one report event.
	Publish(ctx context.Context, report Report) error
}
