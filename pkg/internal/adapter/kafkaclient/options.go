package kafkaclient

import "github.com/joeydtaylor/breathscope/pkg/internal/types"

// WithLogger attaches loggers.
func WithLogger(l ...types.Logger) types.Option[types.KafkaClientAdapter] {
	return func(a types.KafkaClientAdapter) { a.ConnectLogger(l...) }
}

// WithProducer sets the message writer.
func WithProducer(w types.KafkaMessageWriter) types.Option[types.KafkaClientAdapter] {
	return func(a types.KafkaClientAdapter) { a.SetProducer(w) }
}

// WithWriterConfig sets topic, key template and static headers.
func WithWriterConfig(c types.KafkaWriterConfig) types.Option[types.KafkaClientAdapter] {
	return func(a types.KafkaClientAdapter) { a.SetWriterConfig(c) }
}

// WithComponentMetadata sets a custom name and ID.
func WithComponentMetadata(name string, id string) types.Option[types.KafkaClientAdapter] {
	return func(a types.KafkaClientAdapter) { a.SetComponentMetadata(name, id) }
}
