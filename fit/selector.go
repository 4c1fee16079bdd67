package fit

import (
	"fmt"
	"math"

	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/internal/options"
)

// Fit is the outcome of selecting a reference curve for one training curve.
type Fit struct {
	// ReferenceID is the ID of the winning reference curve.
	ReferenceID int
	// SSE is the sum of squared errors of the winner.
	SSE float64
	// RMSE is √(SSE/n), reported for display only.
	RMSE float64
}

// String returns a human-readable summary of the fit.
func (f Fit) String() string {
	return fmt.Sprintf("Fit{ReferenceID: %d, SSE: %.6g, RMSE: %.6g}", f.ReferenceID, f.SSE, f.RMSE)
}

// SelectBest returns the reference curve that minimizes the sum of squared
// errors against train.
//
// Candidates are scanned in ascending ID order and a candidate only replaces
// the current best when its score is strictly smaller, so exact ties resolve
// to the lowest ID.
//
// Parameters:
//   - train: Training curve
//   - catalog: Reference curves, in any order
//   - opts: WithCatalogSize limits the scan; other options are ignored here
//
// Returns:
//   - Fit: Winning reference ID with its SSE and RMSE
//   - error: errs.ErrEmptyCatalog, errs.ErrGridMismatch, errs.ErrDuplicateReference,
//     errs.ErrCatalogTooSmall or a curve validation error, all in the
//     errs.ErrPrecondition category
func SelectBest(train Curve, catalog []Curve, opts ...SelectOption) (Fit, error) {
	cfg := defaultSelectConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return Fit{}, err
	}

	candidates, err := prepareCatalog(catalog, cfg.CatalogSize)
	if err != nil {
		return Fit{}, err
	}

	return selectBest(train, candidates)
}

// selectBest runs the scan over an already sorted and validated catalog.
func selectBest(train Curve, candidates []Curve) (Fit, error) {
	if err := train.Validate(); err != nil {
		return Fit{}, err
	}

	best := Fit{ReferenceID: -1, SSE: math.Inf(1)}
	for _, ref := range candidates {
		if err := checkGrid(train, ref); err != nil {
			return Fit{}, err
		}

		score := sumSquaredErrors(train.Y, ref.Y)
		if best.ReferenceID < 0 || score < best.SSE {
			best.ReferenceID = ref.ID
			best.SSE = score
		}
	}
	best.RMSE = math.Sqrt(best.SSE / float64(train.Len()))

	return best, nil
}

// sumSquaredErrors computes Σ (a[i] - b[i])² in index order.
func sumSquaredErrors(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return sum
}

// prepareCatalog validates the catalog and returns its first size curves in
// ascending ID order.
func prepareCatalog(catalog []Curve, size int) ([]Curve, error) {
	if len(catalog) == 0 {
		return nil, errs.ErrEmptyCatalog
	}

	sorted, err := sortByID(catalog, errs.ErrDuplicateReference)
	if err != nil {
		return nil, err
	}

	if size > 0 {
		if len(sorted) < size {
			return nil, fmt.Errorf("%w: have %d curves, want %d", errs.ErrCatalogTooSmall, len(sorted), size)
		}
		sorted = sorted[:size]
	}

	for _, c := range sorted {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	return sorted, nil
}
