package fit

import (
	"math"
	"testing"

	"github.com/arloliu/curvefit/errs"
	"github.com/stretchr/testify/require"
)

func TestClassifier_EndToEndScenario(t *testing.T) {
	train := Curve{ID: 1, X: []float64{0, 1, 2, 3}, Y: []float64{1, 2, 3, 4}}
	catalog := offsetCatalog(t, train, DefaultCatalogSize, 7)

	sel, err := Select([]Curve{train}, catalog, WithCatalogSize(DefaultCatalogSize))
	require.NoError(t, err)
	require.Equal(t, 7, sel.At(0).ReferenceID)
	require.Zero(t, sel.At(0).MaxDeviation)
	require.Zero(t, sel.At(0).Tolerance)

	clf, err := NewClassifier(sel, catalog)
	require.NoError(t, err)

	near := clf.Classify(Observation{X: 1, Y: 2.0001})
	require.False(t, near.Matched)
	require.Empty(t, near.Skipped)
	require.Equal(t, Record{X: 1, Y: 2.0001}, near.Record())

	exact := clf.Classify(Observation{X: 1, Y: 2})
	require.True(t, exact.Matched)
	require.Equal(t, 7, exact.ReferenceID)
	require.Zero(t, exact.Deviation)
	require.Equal(t, Record{X: 1, Y: 2, Deviation: 0, ReferenceID: 7, Matched: true}, exact.Record())
}

func TestClassifier_EuclideanScenario(t *testing.T) {
	xs := []float64{0, 1, 2}
	ref := lineCurve(1, xs, 1, 0)

	sel, err := Select([]Curve{lineCurve(1, xs, 1, 0)}, []Curve{ref}, WithMetric(MetricNearestEuclidean))
	require.NoError(t, err)
	require.Zero(t, sel.At(0).MaxDeviation)

	sel, err = NewSelection(MetricNearestEuclidean, []Entry{{TrainingID: 1, ReferenceID: 1, Tolerance: 0.1}})
	require.NoError(t, err)

	clf, err := NewClassifier(sel, []Curve{ref})
	require.NoError(t, err)
	require.Equal(t, MetricNearestEuclidean, clf.Metric())

	c := clf.Classify(Observation{X: 0.5, Y: 0.6})
	require.True(t, c.Matched)
	require.Equal(t, 1, c.ReferenceID)
	require.InDelta(t, 0.0707, c.Deviation, 1e-4)

	far := clf.Classify(Observation{X: 0.5, Y: 0.8})
	require.False(t, far.Matched)

	// x off the grid is fine for the euclidean metric
	off := clf.Classify(Observation{X: 1.5, Y: 1.5})
	require.True(t, off.Matched)
	require.Empty(t, off.Skipped)
}

func TestClassifier_PointwiseAcceptanceRule(t *testing.T) {
	xs := []float64{0, 1, 2}
	ref := lineCurve(1, xs, 0, 0)
	sel, err := NewSelection(MetricPointwise, []Entry{{TrainingID: 1, ReferenceID: 1, Tolerance: 1}})
	require.NoError(t, err)

	clf, err := NewClassifier(sel, []Curve{ref})
	require.NoError(t, err)

	tests := []struct {
		name    string
		y       float64
		matched bool
	}{
		{"exact", 0, true},
		{"well inside", 0.5, true},
		// 0.7 + 0.49 > 1 although 0.7 <= 1
		{"below but rejected", 0.7, false},
		{"negative side", -0.5, true},
		{"outside", 2, false},
		{"nan", math.NaN(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := clf.Classify(Observation{X: 1, Y: tt.y})
			require.Equal(t, tt.matched, c.Matched)
			if tt.matched {
				require.InDelta(t, math.Abs(tt.y), c.Deviation, 1e-12)
			}
		})
	}
}

func TestAcceptPointwise(t *testing.T) {
	require.True(t, acceptPointwise(0, 0))
	require.False(t, acceptPointwise(0.0001, 0))
	require.True(t, acceptPointwise(0.0001, 0.00010002))
	require.True(t, acceptPointwise(0, 1))
}

func TestClassifier_SmallestDeviationWins(t *testing.T) {
	xs := []float64{0, 1, 2}
	catalog := []Curve{lineCurve(10, xs, 0, 0), lineCurve(20, xs, 0, 1)}
	sel, err := NewSelection(MetricPointwise, []Entry{
		{TrainingID: 1, ReferenceID: 10, Tolerance: 10},
		{TrainingID: 2, ReferenceID: 20, Tolerance: 10},
	})
	require.NoError(t, err)

	clf, err := NewClassifier(sel, catalog)
	require.NoError(t, err)

	c := clf.Classify(Observation{X: 2, Y: 0.7})
	require.True(t, c.Matched)
	require.Equal(t, 20, c.ReferenceID)
	require.InDelta(t, 0.3, c.Deviation, 1e-12)

	// equal deviations keep the earlier pair
	tie := clf.Classify(Observation{X: 0, Y: 0.5})
	require.True(t, tie.Matched)
	require.Equal(t, 10, tie.ReferenceID)
}

func TestClassifier_OnCurveAlwaysMatches(t *testing.T) {
	xs := []float64{0, 1, 2}
	catalog := []Curve{lineCurve(1, xs, 1, 0), lineCurve(2, xs, 1, 0.05)}
	sel, err := NewSelection(MetricPointwise, []Entry{
		{TrainingID: 1, ReferenceID: 2, Tolerance: 5},
		{TrainingID: 2, ReferenceID: 1, Tolerance: 0.01},
	})
	require.NoError(t, err)

	clf, err := NewClassifier(sel, catalog)
	require.NoError(t, err)

	c := clf.Classify(Observation{X: 1, Y: 1})
	require.True(t, c.Matched)
	require.Equal(t, 1, c.ReferenceID)
	require.Zero(t, c.Deviation)
}

func TestClassifier_XNotInGridSkipsPair(t *testing.T) {
	catalog := []Curve{
		lineCurve(1, []float64{0, 1, 2}, 0, 0),
		lineCurve(2, []float64{0, 0.5, 1}, 0, 0.1),
	}
	sel, err := NewSelection(MetricPointwise, []Entry{
		{TrainingID: 1, ReferenceID: 1, Tolerance: 1},
		{TrainingID: 2, ReferenceID: 2, Tolerance: 1},
	})
	require.NoError(t, err)

	clf, err := NewClassifier(sel, catalog)
	require.NoError(t, err)

	c := clf.Classify(Observation{X: 0.5, Y: 0.1})
	require.True(t, c.Matched)
	require.Equal(t, 2, c.ReferenceID)
	require.Len(t, c.Skipped, 1)
	require.Equal(t, 1, c.Skipped[0].TrainingID)
	require.Equal(t, 1, c.Skipped[0].ReferenceID)
	require.ErrorIs(t, c.Skipped[0], errs.ErrXNotInGrid)
	require.ErrorIs(t, c.Err(), errs.ErrDomain)

	none := clf.Classify(Observation{X: 7, Y: 0})
	require.False(t, none.Matched)
	require.Len(t, none.Skipped, 2)
	require.Equal(t, Record{X: 7, Y: 0}, none.Record())

	clean := clf.Classify(Observation{X: 1, Y: 0})
	require.NoError(t, clean.Err())
}

func TestClassifier_ClassifyAll(t *testing.T) {
	xs := []float64{0, 1, 2}
	sel, err := NewSelection(MetricPointwise, []Entry{{TrainingID: 1, ReferenceID: 1, Tolerance: 1}})
	require.NoError(t, err)
	clf, err := NewClassifier(sel, []Curve{lineCurve(1, xs, 1, 0)})
	require.NoError(t, err)

	out := clf.ClassifyAll([]Observation{{X: 0, Y: 0}, {X: 1, Y: 9}, {X: 2, Y: 2.1}})
	require.Len(t, out, 3)
	require.True(t, out[0].Matched)
	require.False(t, out[1].Matched)
	require.True(t, out[2].Matched)
	require.Equal(t, Observation{X: 1, Y: 9}, out[1].Observation)
}

func TestNewClassifier_Errors(t *testing.T) {
	xs := []float64{0, 1}
	sel, err := NewSelection(MetricPointwise, []Entry{{TrainingID: 1, ReferenceID: 3, Tolerance: 1}})
	require.NoError(t, err)

	_, err = NewClassifier(sel, []Curve{lineCurve(1, xs, 1, 0)})
	require.ErrorIs(t, err, errs.ErrUnknownReference)
	require.ErrorIs(t, err, errs.ErrPrecondition)

	_, err = NewClassifier(sel, []Curve{lineCurve(3, xs, 1, 0), lineCurve(3, xs, 1, 0)})
	require.ErrorIs(t, err, errs.ErrDuplicateReference)

	_, err = NewClassifier(sel, []Curve{{ID: 3}})
	require.ErrorIs(t, err, errs.ErrEmptyCurve)
}

func BenchmarkClassifier_Classify(b *testing.B) {
	xs := make([]float64, 400)
	for i := range xs {
		xs[i] = -20 + float64(i)*0.1
	}
	catalog := make([]Curve, 4)
	entries := make([]Entry, 4)
	for i := range catalog {
		catalog[i] = lineCurve(i+1, xs, float64(i), 0)
		entries[i] = Entry{TrainingID: i + 1, ReferenceID: i + 1, Tolerance: 0.5}
	}

	for _, m := range []Metric{MetricPointwise, MetricNearestEuclidean} {
		b.Run(m.String(), func(b *testing.B) {
			sel, err := NewSelection(m, entries)
			require.NoError(b, err)
			clf, err := NewClassifier(sel, catalog)
			require.NoError(b, err)
			obs := Observation{X: xs[123], Y: 1.2}

			for b.Loop() {
				_ = clf.Classify(obs)
			}
		})
	}
}
