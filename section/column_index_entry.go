package section

import (
	"github.com/arloliu/curvefit/endian"
	"github.com/arloliu/curvefit/errs"
)

// ColumnIndexEntry locates one column payload inside the payload section.
type ColumnIndexEntry struct {
	// ColumnID is the xxHash64 of the column name.
	ColumnID uint64
	// Offset is relative to the start of the payload section.
	Offset uint32
	// Length is the byte length of the stored (possibly compressed) payload.
	Length uint32
}

// WriteToSlice writes the entry at offset and returns the next write position.
func (e ColumnIndexEntry) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint64(data[offset:offset+8], e.ColumnID)
	engine.PutUint32(data[offset+8:offset+12], e.Offset)
	engine.PutUint32(data[offset+12:offset+16], e.Length)

	return offset + ColumnIndexEntrySize
}

// Bytes returns the 16-byte encoding of the entry.
func (e ColumnIndexEntry) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, ColumnIndexEntrySize)
	e.WriteToSlice(b, 0, engine)

	return b
}

// End returns the offset just past the column payload.
func (e ColumnIndexEntry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Length)
}

// ParseColumnIndexEntry parses an entry from the first 16 bytes of data.
func ParseColumnIndexEntry(data []byte, engine endian.EndianEngine) (ColumnIndexEntry, error) {
	if len(data) < ColumnIndexEntrySize {
		return ColumnIndexEntry{}, errs.ErrInvalidIndexSize
	}

	return ColumnIndexEntry{
		ColumnID: engine.Uint64(data[0:8]),
		Offset:   engine.Uint32(data[8:12]),
		Length:   engine.Uint32(data[12:16]),
	}, nil
}
