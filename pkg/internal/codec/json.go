package codec

import (
	"encoding/json"
	"io"
)

// JSONEncoder writes one JSON document per Encode call.
type JSONEncoder[T any] struct{}

// JSONDecoder reads one JSON document per Decode call.
type JSONDecoder[T any] struct{}

// NewJSONEncoder returns a JSON encoder for T.
func NewJSONEncoder[T any]() *JSONEncoder[T] {
	return &JSONEncoder[T]{}
}

// NewJSONDecoder returns a JSON decoder for T.
func NewJSONDecoder[T any]() *JSONDecoder[T] {
	return &JSONDecoder[T]{}
}

// Encode writes the JSON encoding of elem to w.
func (e *JSONEncoder[T]) Encode(w io.Writer, elem T) error {
	return json.NewEncoder(w).Encode(elem)
}

// Decode reads a JSON value of type T from r.
func (d *JSONDecoder[T]) Decode(r io.Reader) (T, error) {
	var t T
	err := json.NewDecoder(r).Decode(&t)
	return t, err
}
