package section

import (
	"github.com/arloliu/curvefit/endian"
	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/format"
)

// TableFlag is the packed flag area at the start of the header.
type TableFlag struct {
	// Options packs the endianness bit and the magic number.
	Options uint16
	// Version is the table format version.
	Version uint8
	// CompressionType is the codec applied to every column payload.
	CompressionType uint8
}

// NewTableFlag creates a little-endian, uncompressed v1 flag.
func NewTableFlag() TableFlag {
	return TableFlag{
		Options:         MagicTableV1Opt,
		Version:         TableVersionV1,
		CompressionType: uint8(format.CompressionNone),
	}
}

// IsLittleEndian returns whether the table is little-endian.
func (f TableFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// WithLittleEndian sets little-endian byte order.
func (f *TableFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *TableFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// MagicNumber returns the magic bits of Options.
func (f TableFlag) MagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Compression returns the column codec type.
func (f TableFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the column codec type.
func (f *TableFlag) SetCompression(c format.CompressionType) {
	f.CompressionType = uint8(c)
}

// Validate checks magic number, reserved bits, version and compression type.
func (f TableFlag) Validate() error {
	if f.MagicNumber() != MagicTableV1Opt {
		return errs.ErrInvalidMagicNumber
	}
	if f.Options&ReservedMask != 0 || f.Version != TableVersionV1 {
		return errs.ErrInvalidHeaderFlags
	}
	if !f.Compression().IsValid() {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// GetEndianEngine returns the engine matching the endianness bit.
func (f TableFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
