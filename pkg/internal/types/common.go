package types

// ComponentMetadata identifies a component in log lines and sensor callbacks.
type ComponentMetadata struct {
	ID   string // Unique identifier for the component.
	Type string // Component class, e.g. "DETECTOR" or "S3_CLIENT".
	Name string // Human-readable name.
}

// Option configures a component of type T at construction time.
type Option[T any] func(T)
