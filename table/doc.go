// Package table provides an in-memory table of named float64 columns and a
// compact binary encoding for it.
//
// A Table is the unit the curvefit store reads and writes: the training,
// reference, test and results data sets are each one Table whose first
// column holds the independent variable x.
//
// # Encoding
//
//	tbl, _ := table.New("x", "y")
//	_ = tbl.AppendRow(-20, 3.1)
//
//	enc, _ := table.NewEncoder(time.Now(), table.WithCompression(format.CompressionZstd))
//	data, _ := enc.Encode(tbl)
//
//	dec, _ := table.NewDecoder(data)
//	decoded, _ := dec.Decode()
//
// Each column is stored as raw IEEE 754 float64 values and compressed on its
// own with the configured codec. Missing values are stored as NaN. See package
// section for the byte layout.
package table
