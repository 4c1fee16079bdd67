package table

import (
	"fmt"
	"time"

	"github.com/arloliu/curvefit/compress"
	"github.com/arloliu/curvefit/encoding"
	"github.com/arloliu/curvefit/endian"
	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/format"
	"github.com/arloliu/curvefit/internal/hash"
	"github.com/arloliu/curvefit/section"
)

// Decoder reconstructs a Table from its binary representation.
//
// The header is validated by NewDecoder; payloads are decompressed by Decode.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	data   []byte
	header section.TableHeader
	engine endian.EndianEngine
}

// NewDecoder parses and validates the header of data.
func NewDecoder(data []byte) (*Decoder, error) {
	header, err := section.ParseTableHeader(data)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		data:   data,
		header: header,
		engine: header.Flag.GetEndianEngine(),
	}, nil
}

// Compression returns the codec the columns were compressed with.
func (d *Decoder) Compression() format.CompressionType {
	return d.header.Flag.Compression()
}

// CreatedAt returns the encode timestamp stored in the header.
func (d *Decoder) CreatedAt() time.Time {
	return d.header.CreatedAtTime().UTC()
}

// IsBigEndian reports whether the table was encoded big-endian.
func (d *Decoder) IsBigEndian() bool {
	return !d.header.Flag.IsLittleEndian()
}

// Decode decompresses all columns and verifies that the stored names match
// the column IDs in the index.
func (d *Decoder) Decode() (*Table, error) {
	columnCount := int(d.header.ColumnCount)
	rowCount := int(d.header.RowCount)

	// Step 1: index entries
	entries := make([]section.ColumnIndexEntry, columnCount)
	ids := make([]uint64, columnCount)
	offset := int(d.header.IndexOffset)
	for i := range columnCount {
		entry, err := section.ParseColumnIndexEntry(d.data[offset:], d.engine)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
		ids[i] = entry.ColumnID
		offset += section.ColumnIndexEntrySize
	}

	// Step 2: names, verified against the index
	namesData := d.data[d.header.NamesOffset:d.header.PayloadOffset]
	names, n, err := encoding.DecodeColumnNames(namesData, d.engine)
	if err != nil {
		return nil, err
	}
	if n != len(namesData) {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidColumnNames, len(namesData)-n)
	}
	if err := encoding.VerifyColumnNameHashes(names, ids, hash.ColumnID); err != nil {
		return nil, fmt.Errorf("column name verification failed: %w", err)
	}

	t, err := New(names...)
	if err != nil {
		return nil, err
	}

	// Step 3: payloads
	codec, err := compress.GetCodec(d.header.Flag.Compression())
	if err != nil {
		return nil, err
	}
	dec := encoding.NewNumericRawDecoder(d.engine)
	payloads := d.data[d.header.PayloadOffset:]

	for i, entry := range entries {
		if entry.End() > uint64(len(payloads)) {
			return nil, fmt.Errorf("%w: column %q ends at %d, payload section is %d bytes",
				errs.ErrInvalidIndexOffsets, names[i], entry.End(), len(payloads))
		}

		raw, err := codec.Decompress(payloads[entry.Offset:entry.End()])
		if err != nil {
			return nil, fmt.Errorf("failed to decompress column %q: %w", names[i], err)
		}

		values, err := dec.Decode(raw, rowCount)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", names[i], err)
		}
		t.columns[i] = values
	}

	return t, nil
}

// Decode decodes a complete table from data.
func Decode(data []byte) (*Table, error) {
	d, err := NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return d.Decode()
}
