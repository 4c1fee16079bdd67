package compress

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/s2"
)

// maxS2ColumnSize bounds the decoded size announced by an S2 block header so
// a corrupted header cannot trigger a huge allocation.
const maxS2ColumnSize = 128 * 1024 * 1024

// errS2ColumnTooLarge is returned when a block header announces more than
// maxS2ColumnSize bytes.
var errS2ColumnTooLarge = errors.New("s2: decoded column exceeds size limit")

// S2Compressor compresses column payloads with S2 block encoding.
//
// Columns are little-endian float64 words whose high bytes repeat across
// neighbouring samples, so the codec uses the "better" encoder, which finds
// those longer matches at a modest speed cost.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data as a single S2 block. An empty column encodes to an
// empty, non-nil slice.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	bound := s2.MaxEncodedLen(len(data))
	if bound < 0 {
		return nil, fmt.Errorf("s2: column of %d bytes is too large to encode", len(data))
	}

	return s2.EncodeBetter(make([]byte, bound), data), nil
}

// Decompress decodes a block written by Compress. The announced length is
// checked against maxS2ColumnSize before any buffer is allocated.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2: read block header: %w", err)
	}
	if n > maxS2ColumnSize {
		return nil, fmt.Errorf("%w: %d bytes", errS2ColumnTooLarge, n)
	}

	out, err := s2.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("s2: decode column: %w", err)
	}

	return out, nil
}
