package fit

import (
	"math"
	"testing"

	"github.com/arloliu/curvefit/errs"
	"github.com/stretchr/testify/require"
)

func TestSelect_EntriesInTrainingOrder(t *testing.T) {
	xs := []float64{-1, 0, 1, 2}
	catalog := []Curve{
		lineCurve(1, xs, 0, 0),
		lineCurve(2, xs, 1, 0),
		lineCurve(3, xs, 2, 0),
		lineCurve(4, xs, -1, 0),
	}
	training := []Curve{
		lineCurve(3, xs, 1.9, 0.05),
		lineCurve(1, xs, 0, 0.2),
		lineCurve(2, xs, -1, -0.1),
	}

	sel, err := Select(training, catalog)
	require.NoError(t, err)
	require.Equal(t, MetricPointwise, sel.Metric())
	require.Equal(t, 3, sel.Len())
	require.Equal(t, []int{1, 4, 3}, sel.ReferenceIDs())

	first := sel.At(0)
	require.Equal(t, 1, first.TrainingID)
	require.InDelta(t, 0.2, first.MaxDeviation, 1e-12)
	require.InDelta(t, 0.2*math.Sqrt2, first.Tolerance, 1e-9)
	require.InDelta(t, 4*0.04, first.SSE, 1e-12)

	e, ok := sel.Lookup(3)
	require.True(t, ok)
	require.Equal(t, 3, e.ReferenceID)
	require.InDelta(t, e.MaxDeviation*math.Sqrt2, e.Tolerance, 1e-9)

	_, ok = sel.Lookup(9)
	require.False(t, ok)
}

func TestSelect_IsImmutable(t *testing.T) {
	xs := []float64{0, 1}
	sel, err := Select([]Curve{lineCurve(1, xs, 1, 0)}, []Curve{lineCurve(1, xs, 1, 0.5)})
	require.NoError(t, err)

	entries := sel.Entries()
	entries[0].Tolerance = 99
	ids := sel.ReferenceIDs()
	ids[0] = 42

	require.InDelta(t, 0.5*math.Sqrt2, sel.At(0).Tolerance, 1e-9)
	require.Equal(t, 1, sel.At(0).ReferenceID)
}

func TestSelect_EuclideanMetric(t *testing.T) {
	xs := []float64{0, 1, 2}
	sel, err := Select(
		[]Curve{lineCurve(1, xs, 1, 0.1)},
		[]Curve{lineCurve(1, xs, 1, 0), lineCurve(2, xs, 1, 5)},
		WithMetric(MetricNearestEuclidean),
	)
	require.NoError(t, err)
	require.Equal(t, MetricNearestEuclidean, sel.Metric())
	require.Equal(t, 1, sel.At(0).ReferenceID)
	require.InDelta(t, 0.1, sel.At(0).MaxDeviation, 1e-12)
	require.InDelta(t, 0.1*math.Sqrt2, sel.At(0).Tolerance, 1e-9)
}

func TestSelect_Errors(t *testing.T) {
	xs := []float64{0, 1}
	ref := []Curve{lineCurve(1, xs, 1, 0)}

	_, err := Select(nil, ref)
	require.ErrorIs(t, err, errs.ErrPrecondition)

	_, err = Select([]Curve{lineCurve(1, xs, 1, 0), lineCurve(1, xs, 2, 0)}, ref)
	require.ErrorIs(t, err, errs.ErrDuplicateTraining)

	_, err = Select([]Curve{lineCurve(1, []float64{0, 2}, 1, 0)}, ref)
	require.ErrorIs(t, err, errs.ErrGridMismatch)

	_, err = Select([]Curve{lineCurve(1, xs, 1, 0)}, ref, WithMetric(Metric(7)))
	require.ErrorIs(t, err, errs.ErrInvalidMetric)
}

func TestNewSelection(t *testing.T) {
	sel, err := NewSelection(MetricNearestEuclidean, []Entry{{TrainingID: 1, ReferenceID: 2, Tolerance: 0.1}})
	require.NoError(t, err)
	require.Equal(t, 1, sel.Len())
	require.Contains(t, sel.String(), "nearest_euclidean")
	require.Contains(t, sel.String(), "ReferenceID: 2")

	_, err = NewSelection(Metric(0), nil)
	require.ErrorIs(t, err, errs.ErrInvalidMetric)

	for _, tol := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = NewSelection(MetricPointwise, []Entry{{TrainingID: 1, ReferenceID: 1, Tolerance: tol}})
		require.ErrorIs(t, err, errs.ErrInvalidTolerance)
	}
}
