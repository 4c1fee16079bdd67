// Package section defines the fixed-size binary sections of a curvefit table file.
//
// # Layout
//
//	+----------------------+  offset 0
//	| Header (32 bytes)    |
//	+----------------------+  IndexOffset
//	| Column index         |  ColumnCount × 16 bytes
//	+----------------------+  NamesOffset
//	| Column names payload |  count + length-prefixed UTF-8 names
//	+----------------------+  PayloadOffset
//	| Column payloads      |  one compressed float64 column after another
//	+----------------------+
//
// # Header
//
//	bytes 0-1   Options: bit 1 endianness (0=little, 1=big), bits 4-15 magic 0xEC1
//	byte  2     Version
//	byte  3     CompressionType (format.CompressionType)
//	bytes 4-7   ColumnCount
//	bytes 8-11  RowCount
//	bytes 12-15 IndexOffset
//	bytes 16-19 NamesOffset
//	bytes 20-23 PayloadOffset
//	bytes 24-31 CreatedAt (unix microseconds)
//
// The Options field is always little-endian so the endianness bit can be read
// before the engine for the remaining fields is known.
//
// # Column index entry
//
//	bytes 0-7   ColumnID (xxHash64 of the column name)
//	bytes 8-11  Offset of the column payload relative to PayloadOffset
//	bytes 12-15 Length of the (compressed) column payload
package section
