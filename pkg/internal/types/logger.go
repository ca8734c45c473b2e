package types

// LogLevel orders log severities; higher is more severe.
type LogLevel int

// SinkType names a logger output.
type SinkType string

const (
	FileSink   SinkType = "file"
	StdoutSink SinkType = "stdout"
)

const (
	DebugLevel  LogLevel = iota // DebugLevel indicates debug messages.
	InfoLevel                   // InfoLevel indicates informational messages.
	WarnLevel                   // WarnLevel indicates warning messages.
	ErrorLevel                  // ErrorLevel indicates error messages.
	DPanicLevel                 // DPanicLevel panics in development, logs an error in production.
	PanicLevel                  // PanicLevel logs then panics.
	FatalLevel                  // FatalLevel logs then exits.
)

// SinkConfig describes an extra output attached to a logger.
type SinkConfig struct {
	Type   string                 // "file" or "stdout"
	Config map[string]interface{} // sink specific settings, e.g. {"path": "/var/log/breath.log"}
}

// Logger is the structured logging contract used by every component.
type Logger interface {
	GetLevel() LogLevel
	SetLevel(LogLevel)
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	DPanic(msg string, keysAndValues ...interface{})
	Panic(msg string, keysAndValues ...interface{})
	Fatal(msg string, keysAndValues ...interface{})
	Flush() error
	AddSink(identifier string, config SinkConfig) error
	RemoveSink(identifier string) error
	ListSinks() ([]string, error)
}
