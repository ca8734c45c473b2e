// Package sensor provides options for configuring Sensor components.
package sensor

import "github.com/joeydtaylor/breathscope/pkg/internal/types"

// WithLogger adds loggers to a Sensor.
func WithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectLogger(logger...)
	}
}

// WithOnFilteredFunc registers callbacks for the OnFiltered event.
func WithOnFilteredFunc(callback ...func(c types.ComponentMetadata, ch types.Channel, length int)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnFiltered(callback...)
	}
}

// WithOnPeaksFunc registers callbacks for the OnPeaks event.
func WithOnPeaksFunc(callback ...func(c types.ComponentMetadata, ch types.Channel, peaks []int)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnPeaks(callback...)
	}
}

// WithOnGapResolvedFunc registers callbacks for the OnGapResolved event.
func WithOnGapResolvedFunc(callback ...func(c types.ComponentMetadata, r types.Resolution)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnGapResolved(callback...)
	}
}

// WithOnCompleteFunc registers callbacks for the OnComplete event.
func WithOnCompleteFunc(callback ...func(c types.ComponentMetadata, r types.Report)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnComplete(callback...)
	}
}

// WithOnErrorFunc registers callbacks for the OnError event.
func WithOnErrorFunc(callback ...func(c types.ComponentMetadata, err error)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnError(callback...)
	}
}

// WithComponentMetadata sets a custom name and ID.
func WithComponentMetadata(name string, id string) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.SetComponentMetadata(name, id)
	}
}
