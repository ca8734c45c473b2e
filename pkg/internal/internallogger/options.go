package internallogger

import (
	"github.com/joeydtaylor/breathscope/pkg/logschema"
	"go.uber.org/zap/zapcore"
)

// LoggerWithLevel sets the minimum level from its name ("debug", "info", ...).
// Unknown names fall back to info.
func LoggerWithLevel(levelStr string) LoggerOption {
	return func(s *settings) {
		s.level = ConvertLevel(parseLogLevel(levelStr))
	}
}

// LoggerWithDevelopment switches to capitalized level names for local runs.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return func(s *settings) {
		s.development = dev
	}
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(s *settings) {
		for key, value := range fields {
			if key == "" {
				continue
			}
			s.fields[key] = value
		}
	}
}

// LoggerWithSchema overrides the log schema identifier field.
func LoggerWithSchema(schema string) LoggerOption {
	return func(s *settings) {
		s.fields[logschema.FieldSchema] = schema
	}
}

// LoggerWithOutput replaces stdout as the base output.
func LoggerWithOutput(ws zapcore.WriteSyncer) LoggerOption {
	return func(s *settings) {
		if ws != nil {
			s.output = ws
		}
	}
}

// ZapAdapterWithCallerSkip adds frames to skip when reporting the caller.
func ZapAdapterWithCallerSkip(skip int) LoggerOption {
	return func(s *settings) {
		s.callerSkip += skip
	}
}
