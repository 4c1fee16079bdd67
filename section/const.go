package section

const (
	EndiannessMask  = 0x0002 // Mask for endianness bit (bit 1)
	ReservedMask    = 0x000D // Bits 0, 2 and 3 must be zero
	MagicNumberMask = 0xFFF0 // Mask for magic number (bits 4-15)

	MagicTableV1Opt = 0xEC10 // MagicTableV1Opt identifies version 1 table files.

	TableVersionV1 = 1
)

const (
	HeaderSize            = 32         // fixed header size in bytes
	ColumnIndexEntrySize  = 16         // fixed index entry size in bytes
	IndexOffsetOffset     = HeaderSize // byte offset where the index section starts
	MaxColumnCount        = 65535      // names payload stores the count as uint16
	MaxColumnNameLength   = 65535      // names payload stores each length as uint16
	MaxColumnPayloadBytes = 1<<32 - 1  // offsets and lengths are uint32
)
