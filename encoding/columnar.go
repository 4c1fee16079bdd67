package encoding

import "iter"

// ColumnarEncoder appends values of one column to an internal buffer.
type ColumnarEncoder[T comparable] interface {
	// Write appends a single value.
	Write(v T)
	// WriteSlice appends all values.
	WriteSlice(values []T)
	// Bytes returns the encoded payload. It is valid until the next Reset or Finish
	// and must not be modified.
	Bytes() []byte
	// Len returns the number of encoded values.
	Len() int
	// Size returns the payload size in bytes.
	Size() int
	// Reset discards the encoded values so the encoder can be reused for another column.
	Reset()
	// Finish returns the buffer to its pool. The encoder is unusable afterwards.
	Finish()
}

// ColumnarDecoder reads values back from a payload produced by the matching encoder.
type ColumnarDecoder[T comparable] interface {
	// All yields up to count values.
	All(data []byte, count int) iter.Seq[T]
	// At returns the value at index, or false when index is outside [0, count).
	At(data []byte, index int, count int) (T, bool)
}
