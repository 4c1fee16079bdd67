// Package encoding converts table columns to and from their binary payloads.
//
// Two payload kinds exist in a curvefit table:
//
//   - float64 columns, written by NumericRawEncoder as fixed 8-byte IEEE 754
//     values in the table's byte order and read back by NumericRawDecoder;
//   - the column names payload, written by EncodeColumnNames as a uint16 count
//     followed by uint16 length-prefixed UTF-8 strings.
//
// Missing values (an unmatched deviation, an absent reference id) are stored
// as NaN, which survives the raw encoding bit for bit.
//
// Compression is not applied here; the table encoder passes finished payloads
// through a compress.Codec.
package encoding
