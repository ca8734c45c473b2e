package internallogger

import (
	"os"
	"sync"

	"github.com/joeydtaylor/breathscope/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption adjusts logger settings before the zap core is built.
type LoggerOption func(*settings)

type settings struct {
	level       zapcore.Level
	development bool
	callerSkip  int
	fields      map[string]interface{}
	output      zapcore.WriteSyncer
}

// ZapLoggerAdapter implements types.Logger on top of zap.
type ZapLoggerAdapter struct {
	mu          sync.Mutex
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
	encConfig   zapcore.EncoderConfig
	baseCore    zapcore.Core
	baseFields  []zap.Field
	callerDepth int
	callerOn    bool
	sinks       map[string]sinkEntry
}

// NewLogger builds a JSON logger writing to stdout at info level unless
// options say otherwise.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	s := &settings{
		level:      zapcore.InfoLevel,
		callerSkip: 2,
		fields:     map[string]interface{}{logschema.FieldSchema: logschema.SchemaID},
		output:     zapcore.Lock(os.Stdout),
	}
	for _, option := range options {
		option(s)
	}

	z := &ZapLoggerAdapter{
		atomicLevel: zap.NewAtomicLevelAt(s.level),
		encConfig:   standardEncoderConfig(),
		baseFields:  fieldsFromMap(s.fields),
		callerDepth: s.callerSkip,
		callerOn:    true,
		sinks:       make(map[string]sinkEntry),
	}
	if s.development {
		z.encConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	z.baseCore = zapcore.NewCore(zapcore.NewJSONEncoder(z.encConfig), s.output, z.atomicLevel)

	z.mu.Lock()
	z.rebuildLoggerLocked()
	z.mu.Unlock()
	return z
}

func fieldsFromMap(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		if key == "" {
			continue
		}
		out = append(out, zap.Any(key, value))
	}
	return out
}
