package types

// CompressionAlgorithm names an archive codec.
type CompressionAlgorithm string

const (
	CompressNone   CompressionAlgorithm = "none"
	CompressGzip   CompressionAlgorithm = "gzip"
	CompressZstd   CompressionAlgorithm = "zstd"
	CompressSnappy CompressionAlgorithm = "snappy"
	CompressLZ4    CompressionAlgorithm = "lz4"
	CompressBrotli CompressionAlgorithm = "brotli"
)

// Ext returns the file extension conventionally used for the algorithm.
func (c CompressionAlgorithm) Ext() string {
	switch c {
	case CompressGzip:
		return ".gz"
	case CompressZstd:
		return ".zst"
	case CompressSnappy:
		return ".sz"
	case CompressLZ4:
		return ".lz4"
	case CompressBrotli:
		return ".br"
	default:
		return ""
	}
}
