// Package compress provides the codecs applied to table column payloads.
//
// Each column of a curvefit table is encoded as raw float64 values and then
// compressed independently with the codec selected in the table header:
//
//   - format.CompressionNone: payload stored unchanged
//   - format.CompressionZstd: best ratio; pure Go (klauspost/compress) by default,
//     cgo-backed valyala/gozstd when built with -tags gozstd
//   - format.CompressionS2: fast, moderate ratio (klauspost/compress/s2)
//   - format.CompressionLZ4: fastest decompression (pierrec/lz4 block format)
//
// Reference tables are dominated by smooth curves whose float64 values share
// exponent bits, so Zstd usually shrinks them by half or more.
//
// All codecs are stateless values and safe for concurrent use; pooled encoder
// and decoder state is kept in package-level sync.Pools.
package compress
