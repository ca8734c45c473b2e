package types

import "io"

// Decoder deserializes one object from r.
type Decoder[T any] interface {
	Decode(io.Reader) (T, error)
}

// Encoder serializes one object to w.
type Encoder[T any] interface {
	Encode(io.Writer, T) error
}

// DecodeStats counts what a line-oriented decoder saw.
type DecodeStats struct {
	Lines    int // lines read, including blank ones
	Accepted int // lines that produced a SamplePair
	Skipped  int // malformed or foreign lines
}
