package compress

// ZstdCompressor compresses with Zstandard. It gives the best ratio of the
// built-in codecs and is the default for reference tables.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
