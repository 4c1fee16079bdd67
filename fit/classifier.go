package fit

import (
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/curvefit/errs"
)

// Record is the persisted outcome of classifying one observation.
// Deviation and ReferenceID are meaningful only when Matched is true.
type Record struct {
	X           float64
	Y           float64
	Deviation   float64
	ReferenceID int
	Matched     bool
}

// PairError reports that one (observation, reference curve) pair could not be
// evaluated. The pair was skipped; the other pairs were still considered.
type PairError struct {
	TrainingID  int
	ReferenceID int
	Err         error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("training curve %d / reference curve %d: %v", e.TrainingID, e.ReferenceID, e.Err)
}

func (e *PairError) Unwrap() error {
	return e.Err
}

// Classification is the result of classifying one observation.
type Classification struct {
	Observation Observation
	// Deviation of the accepted pair with the smallest deviation.
	Deviation float64
	// ReferenceID of that pair.
	ReferenceID int
	// Matched is false when no pair accepted the observation.
	Matched bool
	// Skipped lists the pairs that failed with a domain error.
	Skipped []*PairError
}

// Record converts the classification to its persisted form.
func (c Classification) Record() Record {
	rec := Record{X: c.Observation.X, Y: c.Observation.Y}
	if c.Matched {
		rec.Deviation = c.Deviation
		rec.ReferenceID = c.ReferenceID
		rec.Matched = true
	}

	return rec
}

// Err joins the errors of all skipped pairs, or returns nil.
func (c Classification) Err() error {
	if len(c.Skipped) == 0 {
		return nil
	}

	errList := make([]error, len(c.Skipped))
	for i, pe := range c.Skipped {
		errList[i] = pe
	}

	return errors.Join(errList...)
}

// classifierPair is one selection entry with its resolved reference curve.
type classifierPair struct {
	entry Entry
	ref   Curve
	// index maps an x value to its first sample index (pointwise only).
	index map[float64]int
}

// Classifier assigns observations to the reference curves of a Selection.
// It is read-only after construction and safe for concurrent use.
type Classifier struct {
	metric Metric
	pairs  []classifierPair
}

// NewClassifier resolves the reference curve of every selection entry in
// catalog.
//
// Returns errs.ErrUnknownReference when an entry refers to a curve missing
// from catalog, errs.ErrDuplicateReference when catalog repeats an ID, or a
// curve validation error.
func NewClassifier(sel *Selection, catalog []Curve) (*Classifier, error) {
	byID := make(map[int]Curve, len(catalog))
	for _, c := range catalog {
		if _, ok := byID[c.ID]; ok {
			return nil, fmt.Errorf("%w: id %d", errs.ErrDuplicateReference, c.ID)
		}
		byID[c.ID] = c
	}

	clf := &Classifier{
		metric: sel.Metric(),
		pairs:  make([]classifierPair, 0, sel.Len()),
	}

	for _, e := range sel.entries {
		ref, ok := byID[e.ReferenceID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", errs.ErrUnknownReference, e.ReferenceID)
		}
		if err := ref.Validate(); err != nil {
			return nil, err
		}

		pair := classifierPair{entry: e, ref: ref}
		if clf.metric == MetricPointwise {
			pair.index = make(map[float64]int, ref.Len())
			for i, x := range ref.X {
				if _, seen := pair.index[x]; !seen {
					pair.index[x] = i
				}
			}
		}
		clf.pairs = append(clf.pairs, pair)
	}

	return clf, nil
}

// Metric returns the metric used for classification.
func (c *Classifier) Metric() Metric {
	return c.metric
}

// Classify assigns obs to the accepted pair with the smallest deviation.
//
// Pairs are evaluated in selection order. Under MetricPointwise a pair
// accepts when tolerance > d + d² or d is exactly zero, and an x that is not
// on the reference grid skips that pair with errs.ErrXNotInGrid. Under
// MetricNearestEuclidean a pair accepts when d ≤ tolerance. On equal
// deviations the earlier pair wins.
func (c *Classifier) Classify(obs Observation) Classification {
	result := Classification{Observation: obs}

	for _, p := range c.pairs {
		d, accepted, err := c.evaluate(p, obs)
		if err != nil {
			result.Skipped = append(result.Skipped, &PairError{
				TrainingID:  p.entry.TrainingID,
				ReferenceID: p.entry.ReferenceID,
				Err:         err,
			})

			continue
		}
		if !accepted {
			continue
		}

		if !result.Matched || d < result.Deviation {
			result.Matched = true
			result.Deviation = d
			result.ReferenceID = p.entry.ReferenceID
		}
	}

	return result
}

// ClassifyAll classifies every observation in order.
func (c *Classifier) ClassifyAll(observations []Observation) []Classification {
	out := make([]Classification, len(observations))
	for i, obs := range observations {
		out[i] = c.Classify(obs)
	}

	return out
}

func (c *Classifier) evaluate(p classifierPair, obs Observation) (float64, bool, error) {
	tol := p.entry.Tolerance

	switch c.metric {
	case MetricPointwise:
		i, ok := p.index[obs.X]
		if !ok {
			return 0, false, fmt.Errorf("%w: x=%v", errs.ErrXNotInGrid, obs.X)
		}
		d := math.Abs(obs.Y - p.ref.Y[i])

		return d, acceptPointwise(d, tol), nil
	case MetricNearestEuclidean:
		d := nearestDistance(p.ref, obs.X, obs.Y)

		return d, d <= tol, nil
	default:
		return 0, false, fmt.Errorf("%w: %d", errs.ErrInvalidMetric, c.metric)
	}
}

// acceptPointwise applies tol > d + d². An exact hit is accepted even when
// the tolerance is zero.
func acceptPointwise(d, tol float64) bool {
	return d == 0 || tol > d+d*d
}
