package kafkaclient

import "github.com/joeydtaylor/breathscope/pkg/internal/types"

// ConnectLogger attaches loggers, skipping nils.
func (a *KafkaClient) ConnectLogger(loggers ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			a.loggers = append(a.loggers, l)
		}
	}
}

// SetProducer sets the message writer, usually a *kafka.Writer.
func (a *KafkaClient) SetProducer(w types.KafkaMessageWriter) {
	a.configLock.Lock()
	a.producer = w
	a.configLock.Unlock()
}

// SetWriterConfig sets topic, key template and static headers. Headers are
// merged into the current set.
func (a *KafkaClient) SetWriterConfig(c types.KafkaWriterConfig) {
	a.configLock.Lock()
	defer a.configLock.Unlock()
	if c.Topic != "" {
		a.topic = c.Topic
	}
	if c.KeyTemplate != "" {
		a.keyTemplate = c.KeyTemplate
	}
	for k, v := range c.Headers {
		a.headers[k] = v
	}
}

// GetComponentMetadata returns the adapter metadata.
func (a *KafkaClient) GetComponentMetadata() types.ComponentMetadata {
	a.metadataLock.Lock()
	defer a.metadataLock.Unlock()
	return a.componentMetadata
}

// SetComponentMetadata updates the adapter name and ID; the type is kept.
func (a *KafkaClient) SetComponentMetadata(name string, id string) {
	a.metadataLock.Lock()
	a.componentMetadata.Name = name
	a.componentMetadata.ID = id
	a.metadataLock.Unlock()
}

// NotifyLoggers sends a structured log message to all attached loggers.
func (a *KafkaClient) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	a.loggersLock.Lock()
	loggers := append([]types.Logger(nil), a.loggers...)
	a.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}
