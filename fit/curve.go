package fit

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/curvefit/errs"
	"gonum.org/v1/gonum/floats"
)

// Curve is an ordered sequence of (x, y) samples identified by ID.
//
// Training curves are numbered 1..4 and reference curves 1..N, matching the
// y-column numbers of the tables they are loaded from.
type Curve struct {
	ID int
	X  []float64
	Y  []float64
}

// Len returns the number of samples.
func (c Curve) Len() int {
	return len(c.X)
}

// Validate checks that the curve has samples, equally long X and Y, and only
// finite values. A NaN sample would make every score it touches NaN, and NaN
// never compares smaller than anything.
func (c Curve) Validate() error {
	if len(c.X) != len(c.Y) {
		return fmt.Errorf("%w: curve %d has %d x and %d y values", errs.ErrCurveLength, c.ID, len(c.X), len(c.Y))
	}
	if len(c.X) == 0 {
		return fmt.Errorf("%w: curve %d", errs.ErrEmptyCurve, c.ID)
	}
	for i := range c.X {
		if !isFinite(c.X[i]) || !isFinite(c.Y[i]) {
			return fmt.Errorf("%w: curve %d sample %d is (%v, %v)", errs.ErrNonFiniteValue, c.ID, i, c.X[i], c.Y[i])
		}
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Observation is a single test point.
type Observation struct {
	X float64
	Y float64
}

// sameGrid reports whether a and b have identical x values in the same order.
func sameGrid(a, b Curve) bool {
	return floats.Equal(a.X, b.X)
}

// checkGrid returns errs.ErrGridMismatch when ref is not sampled on train's grid.
func checkGrid(train, ref Curve) error {
	if !sameGrid(train, ref) {
		return fmt.Errorf("%w: training curve %d (%d samples) vs reference curve %d (%d samples)",
			errs.ErrGridMismatch, train.ID, train.Len(), ref.ID, ref.Len())
	}

	return nil
}

// sortByID returns a copy of curves sorted by ascending ID.
//
// Returns dup when two curves share an ID.
func sortByID(curves []Curve, dup error) ([]Curve, error) {
	sorted := slices.Clone(curves)
	slices.SortStableFunc(sorted, func(a, b Curve) int {
		return cmp.Compare(a.ID, b.ID)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return nil, fmt.Errorf("%w: id %d", dup, sorted[i].ID)
		}
	}

	return sorted, nil
}
