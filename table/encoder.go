package table

import (
	"fmt"
	"math"
	"time"

	"github.com/arloliu/curvefit/compress"
	"github.com/arloliu/curvefit/encoding"
	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/internal/hash"
	"github.com/arloliu/curvefit/internal/options"
	"github.com/arloliu/curvefit/section"
)

// Encoder serializes tables into the binary table format.
//
// An Encoder is stateless after construction and may encode any number of
// tables. It is safe for concurrent use.
type Encoder struct {
	*EncoderConfig
	codec compress.Codec
}

// NewEncoder creates an encoder whose tables are stamped with createdAt.
//
// Returns an error when an option is invalid.
func NewEncoder(createdAt time.Time, opts ...EncoderOption) (*Encoder, error) {
	config := newEncoderConfig(createdAt)
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(config.header.Flag.Compression())
	if err != nil {
		return nil, err
	}

	return &Encoder{EncoderConfig: config, codec: codec}, nil
}

// Encode returns the complete binary representation of t.
func (e *Encoder) Encode(t *Table) ([]byte, error) {
	rows := t.Rows()
	if rows > math.MaxUint32 {
		return nil, errs.ErrTooManyRows
	}

	header := *e.header
	header.ColumnCount = uint32(t.NumColumns()) //nolint: gosec
	header.RowCount = uint32(rows)              //nolint: gosec

	namesPayload, err := encoding.EncodeColumnNames(t.names, e.engine)
	if err != nil {
		return nil, err
	}

	valEncoder := encoding.NewNumericRawEncoder(e.engine)
	defer valEncoder.Finish()

	entries := make([]section.ColumnIndexEntry, len(t.columns))
	payloads := make([][]byte, len(t.columns))
	payloadSize := 0

	for i, col := range t.columns {
		valEncoder.Reset()
		valEncoder.WriteSlice(col)

		payload, err := e.codec.Compress(valEncoder.Bytes())
		if err != nil {
			return nil, fmt.Errorf("failed to compress column %q: %w", t.names[i], err)
		}
		if uint64(payloadSize)+uint64(len(payload)) > section.MaxColumnPayloadBytes {
			return nil, errs.ErrTooManyRows
		}

		entries[i] = section.ColumnIndexEntry{
			ColumnID: hash.ColumnID(t.names[i]),
			Offset:   uint32(payloadSize),  //nolint: gosec
			Length:   uint32(len(payload)), //nolint: gosec
		}
		payloads[i] = payload
		payloadSize += len(payload)
	}

	indexSize := section.ColumnIndexEntrySize * len(entries)
	header.IndexOffset = section.IndexOffsetOffset
	header.NamesOffset = header.IndexOffset + uint32(indexSize)           //nolint: gosec
	header.PayloadOffset = header.NamesOffset + uint32(len(namesPayload)) //nolint: gosec

	data := make([]byte, int(header.PayloadOffset)+payloadSize)
	offset := copy(data, header.Bytes())
	for _, entry := range entries {
		offset = entry.WriteToSlice(data, offset, e.engine)
	}
	offset += copy(data[offset:], namesPayload)
	for _, payload := range payloads {
		offset += copy(data[offset:], payload)
	}

	return data, nil
}

// Encode encodes t with a one-off encoder built from opts.
func Encode(t *Table, createdAt time.Time, opts ...EncoderOption) ([]byte, error) {
	enc, err := NewEncoder(createdAt, opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(t)
}
