package types

// Sensor receives callbacks as a detection run moves through its stages.
type Sensor interface {
	ConnectLogger(...Logger)
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)

	RegisterOnFiltered(...func(c ComponentMetadata, ch Channel, length int))
	RegisterOnPeaks(...func(c ComponentMetadata, ch Channel, peaks []int))
	RegisterOnGapResolved(...func(c ComponentMetadata, r Resolution))
	RegisterOnComplete(...func(c ComponentMetadata, r Report))
	RegisterOnError(...func(c ComponentMetadata, err error))

	InvokeOnFiltered(c ComponentMetadata, ch Channel, length int)
	InvokeOnPeaks(c ComponentMetadata, ch Channel, peaks []int)
	InvokeOnGapResolved(c ComponentMetadata, r Resolution)
	InvokeOnComplete(c ComponentMetadata, r Report)
	InvokeOnError(c ComponentMetadata, err error)
}
