package builder

import (
	"github.com/joeydtaylor/breathscope/pkg/internal/sensor"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

// NewSensor creates a new Sensor with specified options.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	return sensor.NewSensor(options...)
}

// SensorWithLogger adds a logger to the Sensor.
func SensorWithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return sensor.WithLogger(logger...)
}

// SensorWithOnFilteredFunc registers a callback for the OnFiltered event.
func SensorWithOnFilteredFunc(callback ...func(c ComponentMetadata, ch Channel, length int)) types.Option[types.Sensor] {
	return sensor.WithOnFilteredFunc(callback...)
}

// SensorWithOnPeaksFunc registers a callback for the OnPeaks event.
func SensorWithOnPeaksFunc(callback ...func(c ComponentMetadata, ch Channel, peaks []int)) types.Option[types.Sensor] {
	return sensor.WithOnPeaksFunc(callback...)
}

// SensorWithOnGapResolvedFunc registers a callback for the OnGapResolved event.
func SensorWithOnGapResolvedFunc(callback ...func(c ComponentMetadata, r Resolution)) types.Option[types.Sensor] {
	return sensor.WithOnGapResolvedFunc(callback...)
}

// SensorWithOnCompleteFunc registers a callback for the OnComplete event.
func SensorWithOnCompleteFunc(callback ...func(c ComponentMetadata, r Report)) types.Option[types.Sensor] {
	return sensor.WithOnCompleteFunc(callback...)
}

// SensorWithOnErrorFunc registers a callback for the OnError event.
func SensorWithOnErrorFunc(callback ...func(c ComponentMetadata, err error)) types.Option[types.Sensor] {
	return sensor.WithOnErrorFunc(callback...)
}

// SensorWithComponentMetadata adds component metadata overrides.
func SensorWithComponentMetadata(name string, id string) types.Option[types.Sensor] {
	return sensor.WithComponentMetadata(name, id)
}
