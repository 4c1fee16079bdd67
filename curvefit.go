// Package curvefit selects, for every training curve, the reference curve of a
// catalog that fits it best in the least-squares sense, derives a tolerance
// from the worst deviation of that fit, and classifies new observations
// against the selected curves.
//
// # Core Features
//
//   - Least-squares selection over a reference catalog with a deterministic
//     lowest-ID tie-break
//   - Two deviation metrics: pointwise vertical distance on a shared x-grid and
//     nearest Euclidean distance to the reference polyline
//   - Per-observation classification with per-pair domain errors reported as
//     values instead of aborting the run
//   - A columnar binary table format with per-column compression (None, Zstd,
//     S2, LZ4) used as the on-disk store
//   - CSV ingestion and PNG visualization of a run
//
// # Basic Usage
//
// Selecting and classifying in memory:
//
//	sel, err := curvefit.Select(training, catalog)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	clf, _ := curvefit.NewClassifier(sel, catalog)
//	c := clf.Classify(fit.Observation{X: 1, Y: 2})
//	fmt.Println(c.Matched, c.ReferenceID, c.Deviation)
//
// Running the full pipeline against a table directory:
//
//	s, _ := curvefit.OpenStore("data")
//	defer s.Close()
//	report, err := curvefit.Run(ctx, s, pipeline.WithResetResults())
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the fit, store,
// table and pipeline packages. For fine-grained control, use those packages
// directly.
package curvefit

import (
	"context"
	"time"

	"github.com/arloliu/curvefit/fit"
	"github.com/arloliu/curvefit/internal/hash"
	"github.com/arloliu/curvefit/pipeline"
	"github.com/arloliu/curvefit/store"
	"github.com/arloliu/curvefit/table"
)

// Select chooses a reference curve and tolerance for every training curve.
//
// Parameters:
//   - training: Training curves with unique IDs
//   - catalog: Reference curves sharing the training x-grid
//   - opts: fit.WithMetric, fit.WithCatalogSize
//
// Returns:
//   - *fit.Selection: One entry per training curve in ascending ID order
//   - error: A precondition error (errs.ErrPrecondition) aborts the selection
//
// Example:
//
//	sel, err := curvefit.Select(training, catalog,
//	    fit.WithMetric(fit.MetricNearestEuclidean),
//	    fit.WithCatalogSize(fit.DefaultCatalogSize),
//	)
func Select(training, catalog []fit.Curve, opts ...fit.SelectOption) (*fit.Selection, error) {
	return fit.Select(training, catalog, opts...)
}

// NewClassifier creates a classifier for the pairs of sel.
//
// Parameters:
//   - sel: The selection to classify against
//   - catalog: The reference catalog the selection was made from
//
// Returns:
//   - *fit.Classifier: The classifier
//   - error: errs.ErrUnknownReference when a selected curve is missing from catalog
func NewClassifier(sel *fit.Selection, catalog []fit.Curve) (*fit.Classifier, error) {
	return fit.NewClassifier(sel, catalog)
}

// OpenStore opens a table directory, creating it when missing.
//
// The default store expects 4 training curves and 50 reference curves and
// writes Zstd-compressed little-endian tables.
func OpenStore(dir string, opts ...store.Option) (*store.FileStore, error) {
	return store.Open(dir, opts...)
}

// NewMemStore creates an in-memory store with the same contract as OpenStore.
func NewMemStore(opts ...store.Option) (*store.MemStore, error) {
	return store.NewMemStore(opts...)
}

// Run performs one selection and classification pass against s.
//
// Parameters:
//   - ctx: Cancels the run between observations
//   - s: The store to read from and persist into
//   - opts: pipeline options
//
// Returns:
//   - *pipeline.Report: The selection, records and counters of the run
//   - error: Any failure; nothing is persisted when Run fails
func Run(ctx context.Context, s store.Store, opts ...pipeline.Option) (*pipeline.Report, error) {
	p, err := pipeline.New(s, opts...)
	if err != nil {
		return nil, err
	}

	return p.Run(ctx)
}

// EncodeTable encodes t in the binary table format stamped with the current
// time.
func EncodeTable(t *table.Table, opts ...table.EncoderOption) ([]byte, error) {
	return table.Encode(t, time.Now(), opts...)
}

// DecodeTable decodes a table produced by EncodeTable.
func DecodeTable(data []byte) (*table.Table, error) {
	return table.Decode(data)
}

// ReadCSVFile reads a CSV file with a header row into a table.
func ReadCSVFile(path string) (*table.Table, error) {
	return store.ReadCSVFile(path)
}

// ColumnID returns the 64-bit ID under which a column name is indexed in the
// binary table format.
func ColumnID(name string) uint64 {
	return hash.ColumnID(name)
}
