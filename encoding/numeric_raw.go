package encoding

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/curvefit/endian"
	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/internal/pool"
)

const float64Size = 8

// NumericRawEncoder writes float64 values as raw IEEE 754 bits.
type NumericRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float64] = (*NumericRawEncoder)(nil)

// NewNumericRawEncoder creates an encoder backed by a pooled buffer.
// Call Finish when done to return the buffer.
func NewNumericRawEncoder(engine endian.EndianEngine) *NumericRawEncoder {
	return &NumericRawEncoder{
		engine: engine,
		buf:    pool.GetTableBuffer(),
	}
}

// Write appends a single value.
//
// Panics if Finish has been called.
func (e *NumericRawEncoder) Write(v float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.Grow(float64Size)
	e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v))
}

// WriteSlice appends all values with a single buffer growth.
//
// Panics if Finish has been called.
func (e *NumericRawEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if len(values) == 0 {
		return
	}

	e.count += len(values)
	e.buf.Grow(len(values) * float64Size)
	for _, v := range values {
		e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v))
	}
}

// Bytes returns the encoded payload.
func (e *NumericRawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of values written since the last Reset.
func (e *NumericRawEncoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes.
func (e *NumericRawEncoder) Size() int {
	if e.buf == nil {
		return 0
	}

	return e.buf.Len()
}

// Reset discards the written values and keeps the buffer.
func (e *NumericRawEncoder) Reset() {
	if e.buf != nil {
		e.buf.Reset()
	}
	e.count = 0
}

// Finish returns the buffer to the pool.
func (e *NumericRawEncoder) Finish() {
	if e.buf == nil {
		return
	}

	pool.PutTableBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// NumericRawDecoder reads float64 values written by NumericRawEncoder.
type NumericRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = NumericRawDecoder{}

// NewNumericRawDecoder creates a decoder for the given byte order.
func NewNumericRawDecoder(engine endian.EndianEngine) NumericRawDecoder {
	return NumericRawDecoder{engine: engine}
}

// All yields up to count values; it stops early if data is short.
func (d NumericRawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		n := min(count, len(data)/float64Size)
		for i := range n {
			off := i * float64Size
			if !yield(math.Float64frombits(d.engine.Uint64(data[off : off+float64Size]))) {
				return
			}
		}
	}
}

// At returns the value at index.
func (d NumericRawDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	off := index * float64Size
	if off+float64Size > len(data) {
		return 0, false
	}

	return math.Float64frombits(d.engine.Uint64(data[off : off+float64Size])), true
}

// Decode decodes exactly count values into a new slice.
//
// Returns errs.ErrInvalidPayload when the payload length is not count × 8 bytes.
func (d NumericRawDecoder) Decode(data []byte, count int) ([]float64, error) {
	if count < 0 || len(data) != count*float64Size {
		return nil, fmt.Errorf("%w: %d bytes for %d values", errs.ErrInvalidPayload, len(data), count)
	}

	out := make([]float64, count)
	for i := range count {
		off := i * float64Size
		out[i] = math.Float64frombits(d.engine.Uint64(data[off : off+float64Size]))
	}

	return out, nil
}
