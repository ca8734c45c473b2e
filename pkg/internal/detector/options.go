package detector

import "github.com/joeydtaylor/breathscope/pkg/internal/types"

// WithConfig replaces the detector configuration.
func WithConfig(cfg types.DetectorConfig) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.SetConfig(cfg)
	}
}

// WithLogger attaches loggers.
func WithLogger(logger ...types.Logger) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.ConnectLogger(logger...)
	}
}

// WithSensor attaches sensors that receive stage events.
func WithSensor(sensor ...types.Sensor) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.ConnectSensor(sensor...)
	}
}

// WithComponentMetadata sets a custom name and ID.
func WithComponentMetadata(name string, id string) types.Option[types.Detector] {
	return func(d types.Detector) {
		d.SetComponentMetadata(name, id)
	}
}
