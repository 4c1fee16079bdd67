package section

import (
	"time"

	"github.com/arloliu/curvefit/errs"
)

// TableHeader is the fixed-size header at the start of a table file.
type TableHeader struct {
	Flag          TableFlag // byte offset 0-3
	ColumnCount   uint32    // byte offset 4-7
	RowCount      uint32    // byte offset 8-11
	IndexOffset   uint32    // byte offset 12-15
	NamesOffset   uint32    // byte offset 16-19
	PayloadOffset uint32    // byte offset 20-23
	// CreatedAt is the unix timestamp in microseconds when the table was encoded.
	CreatedAt int64 // byte offset 24-31
}

// NewTableHeader creates a header stamped with createdAt.
// Counts and offsets are filled in by the encoder.
func NewTableHeader(createdAt time.Time) *TableHeader {
	return &TableHeader{
		Flag:        NewTableFlag(),
		IndexOffset: IndexOffsetOffset,
		CreatedAt:   createdAt.UnixMicro(),
	}
}

// Bytes serializes the header.
func (h *TableHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Version
	b[3] = h.Flag.CompressionType
	engine.PutUint32(b[4:8], h.ColumnCount)
	engine.PutUint32(b[8:12], h.RowCount)
	engine.PutUint32(b[12:16], h.IndexOffset)
	engine.PutUint32(b[16:20], h.NamesOffset)
	engine.PutUint32(b[20:24], h.PayloadOffset)
	engine.PutUint64(b[24:32], uint64(h.CreatedAt)) //nolint: gosec

	return b
}

// Parse reads the header from exactly HeaderSize bytes and validates the flag.
func (h *TableHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.Version = data[2]
	h.Flag.CompressionType = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.ColumnCount = engine.Uint32(data[4:8])
	h.RowCount = engine.Uint32(data[8:12])
	h.IndexOffset = engine.Uint32(data[12:16])
	h.NamesOffset = engine.Uint32(data[16:20])
	h.PayloadOffset = engine.Uint32(data[20:24])
	h.CreatedAt = int64(engine.Uint64(data[24:32])) //nolint: gosec

	return nil
}

// CreatedAtTime returns CreatedAt as a time.Time.
func (h *TableHeader) CreatedAtTime() time.Time {
	return time.UnixMicro(h.CreatedAt)
}

// ParseTableHeader parses a header from the start of data and checks that the
// section offsets are ordered and inside data.
func ParseTableHeader(data []byte) (TableHeader, error) {
	if len(data) < HeaderSize {
		return TableHeader{}, errs.ErrInvalidHeaderSize
	}

	h := TableHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return TableHeader{}, err
	}

	indexEnd := uint64(h.IndexOffset) + uint64(h.ColumnCount)*ColumnIndexEntrySize
	if h.IndexOffset != IndexOffsetOffset ||
		indexEnd > uint64(h.NamesOffset) ||
		h.NamesOffset > h.PayloadOffset ||
		uint64(h.PayloadOffset) > uint64(len(data)) {
		return TableHeader{}, errs.ErrInvalidIndexOffsets
	}

	return h, nil
}
