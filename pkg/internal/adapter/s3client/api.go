package s3client

import "github.com/joeydtaylor/breathscope/pkg/internal/types"

// ConnectLogger attaches loggers, skipping nils.
func (a *S3Client) ConnectLogger(loggers ...types.Logger) {
	a.loggersLock.Lock()
	defer a.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			a.loggers = append(a.loggers, l)
		}
	}
}

// SetS3ClientDeps sets the client and bucket.
func (a *S3Client) SetS3ClientDeps(d types.S3ClientDeps) {
	a.configLock.Lock()
	a.cli = d.Client
	a.bucket = d.Bucket
	a.configLock.Unlock()
}

// SetWriterConfig sets key layout, encryption and retry settings. Zero
// values keep the current setting.
func (a *S3Client) SetWriterConfig(c types.S3WriterConfig) {
	a.configLock.Lock()
	defer a.configLock.Unlock()
	if c.PrefixTemplate != "" {
		a.prefixTemplate = c.PrefixTemplate
	}
	if c.FileNameTmpl != "" {
		a.fileNameTmpl = c.FileNameTmpl
	}
	if c.SSEMode != "" {
		a.sseMode = c.SSEMode
	}
	if c.KMSKeyID != "" {
		a.kmsKey = c.KMSKeyID
	}
	if c.MaxAttempts > 0 {
		a.maxAttempts = c.MaxAttempts
	}
}

// GetComponentMetadata returns the adapter metadata.
func (a *S3Client) GetComponentMetadata() types.ComponentMetadata {
	a.metadataLock.Lock()
	defer a.metadataLock.Unlock()
	return a.componentMetadata
}

// SetComponentMetadata updates the adapter name and ID; the type is kept.
func (a *S3Client) SetComponentMetadata(name string, id string) {
	a.metadataLock.Lock()
	a.componentMetadata.Name = name
	a.componentMetadata.ID = id
	a.metadataLock.Unlock()
}

// NotifyLoggers sends a structured log message to all attached loggers.
func (a *S3Client) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
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
