package encoding

import (
	"fmt"

	"github.com/arloliu/curvefit/endian"
	"github.com/arloliu/curvefit/errs"
)

const maxUint16 = 1<<16 - 1

// EncodeColumnNames encodes names as
// [Count: uint16] [Len1: uint16][Name1] [Len2: uint16][Name2] ...
func EncodeColumnNames(names []string, engine endian.EndianEngine) ([]byte, error) {
	if len(names) > maxUint16 {
		return nil, fmt.Errorf("%w: column count %d exceeds maximum %d", errs.ErrInvalidColumnCount, len(names), maxUint16)
	}

	totalSize := 2
	for _, name := range names {
		if len(name) > maxUint16 {
			return nil, fmt.Errorf("%w: column name %q exceeds maximum length %d bytes", errs.ErrInvalidColumnName, name, maxUint16)
		}
		totalSize += 2 + len(name)
	}

	buf := make([]byte, 0, totalSize)
	buf = engine.AppendUint16(buf, uint16(len(names))) //nolint: gosec
	for _, name := range names {
		buf = engine.AppendUint16(buf, uint16(len(name))) //nolint: gosec
		buf = append(buf, name...)
	}

	return buf, nil
}

// DecodeColumnNames decodes a names payload and returns the names and the
// number of bytes consumed.
func DecodeColumnNames(data []byte, engine endian.EndianEngine) ([]string, int, error) {
	if len(data) < 2 {
		return nil, 0, fmt.Errorf("%w: cannot read column count (need 2 bytes, have %d)", errs.ErrInvalidColumnNames, len(data))
	}

	count := int(engine.Uint16(data))
	offset := 2
	names := make([]string, count)

	for i := range count {
		if len(data) < offset+2 {
			return nil, 0, fmt.Errorf("%w: cannot read length of column name %d at offset %d",
				errs.ErrInvalidColumnNames, i, offset)
		}
		nameLen := int(engine.Uint16(data[offset:]))
		offset += 2

		if len(data) < offset+nameLen {
			return nil, 0, fmt.Errorf("%w: column name %d needs %d bytes at offset %d, have %d total",
				errs.ErrInvalidColumnNames, i, nameLen, offset, len(data))
		}
		names[i] = string(data[offset : offset+nameLen])
		offset += nameLen
	}

	return names, offset, nil
}

// VerifyColumnNameHashes checks that hashFunc(names[i]) == ids[i] for every column.
func VerifyColumnNameHashes(names []string, ids []uint64, hashFunc func(string) uint64) error {
	if len(names) != len(ids) {
		return fmt.Errorf("%w: %d names for %d column ids", errs.ErrInvalidColumnCount, len(names), len(ids))
	}

	for i, name := range names {
		if want := hashFunc(name); want != ids[i] {
			return fmt.Errorf("%w: column %q at index %d: expected 0x%016x, got 0x%016x",
				errs.ErrHashMismatch, name, i, want, ids[i])
		}
	}

	return nil
}
