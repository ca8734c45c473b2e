package builder

import "github.com/joeydtaylor/breathscope/pkg/internal/codec"

// NewJSONEncoder returns a JSON encoder for T.
func NewJSONEncoder[T any]() *codec.JSONEncoder[T] {
	return codec.NewJSONEncoder[T]()
}

// NewJSONDecoder returns a JSON decoder for T.
func NewJSONDecoder[T any]() *codec.JSONDecoder[T] {
	return codec.NewJSONDecoder[T]()
}

// NewFrameDecoder parses raw device lines ("Ca=<a> Cb=<b>").
func NewFrameDecoder() *codec.FrameDecoder {
	return codec.NewFrameDecoder()
}

// NewPairDecoder parses cleaned "<a> <b>" lines.
func NewPairDecoder() *codec.PairDecoder {
	return codec.NewPairDecoder()
}

// NewPairEncoder writes cleaned "<a> <b>" lines.
func NewPairEncoder() *codec.PairEncoder {
	return codec.NewPairEncoder()
}
