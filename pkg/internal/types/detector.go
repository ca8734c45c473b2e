package types

// Detector runs the breath pipeline over complete captures. A Detector holds
// configuration only; each Detect call is independent.
type Detector interface {
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	SetConfig(DetectorConfig)
	GetConfig() DetectorConfig
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	// Detect filters, normalizes and peak-picks both channels, reconciles the
	// primary peaks against the secondary ones and derives the breath count.
	Detect(capture Capture) (Report, error)
}
