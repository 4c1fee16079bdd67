package fit

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/internal/options"
)

// Entry pairs one training curve with its selected reference curve.
type Entry struct {
	TrainingID   int
	ReferenceID  int
	SSE          float64
	MaxDeviation float64
	Tolerance    float64
}

// String returns a human-readable summary of the entry.
func (e Entry) String() string {
	return fmt.Sprintf("Entry{TrainingID: %d, ReferenceID: %d, SSE: %.6g, MaxDeviation: %.6g, Tolerance: %.6g}",
		e.TrainingID, e.ReferenceID, e.SSE, e.MaxDeviation, e.Tolerance)
}

// Selection is the immutable result of a selection run: one Entry per
// training curve in ascending training ID order, plus the metric the
// tolerances were computed with.
type Selection struct {
	metric  Metric
	entries []Entry
}

// Select chooses a reference curve for every training curve and derives its
// tolerance.
//
// Parameters:
//   - training: Training curves; entries are produced in ascending ID order
//   - catalog: Reference curves sharing the training x-grid
//   - opts: WithMetric and WithCatalogSize
//
// Returns:
//   - *Selection: One entry per training curve
//   - error: Any precondition failure aborts the whole run
func Select(training []Curve, catalog []Curve, opts ...SelectOption) (*Selection, error) {
	cfg := defaultSelectConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if len(training) == 0 {
		return nil, fmt.Errorf("%w: no training curves", errs.ErrEmptyCurve)
	}

	trainSorted, err := sortByID(training, errs.ErrDuplicateTraining)
	if err != nil {
		return nil, err
	}

	candidates, err := prepareCatalog(catalog, cfg.CatalogSize)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]Curve, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	entries := make([]Entry, 0, len(trainSorted))
	for _, train := range trainSorted {
		best, err := selectBest(train, candidates)
		if err != nil {
			return nil, fmt.Errorf("training curve %d: %w", train.ID, err)
		}

		maxDev, err := MaxDeviation(cfg.Metric, train, byID[best.ReferenceID])
		if err != nil {
			return nil, fmt.Errorf("training curve %d: %w", train.ID, err)
		}

		entries = append(entries, Entry{
			TrainingID:   train.ID,
			ReferenceID:  best.ReferenceID,
			SSE:          best.SSE,
			MaxDeviation: maxDev,
			Tolerance:    Tolerance(maxDev),
		})
	}

	return &Selection{metric: cfg.Metric, entries: entries}, nil
}

// NewSelection builds a Selection from known entries, for example when
// tolerances are restored from an earlier run. Entries keep the given order.
//
// Returns errs.ErrInvalidMetric or errs.ErrInvalidTolerance on bad input.
func NewSelection(m Metric, entries []Entry) (*Selection, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidMetric, m)
	}

	for _, e := range entries {
		if e.Tolerance < 0 || math.IsNaN(e.Tolerance) || math.IsInf(e.Tolerance, 0) {
			return nil, fmt.Errorf("%w: training curve %d has tolerance %v", errs.ErrInvalidTolerance, e.TrainingID, e.Tolerance)
		}
	}

	return &Selection{metric: m, entries: slices.Clone(entries)}, nil
}

// Metric returns the metric the tolerances were computed with.
func (s *Selection) Metric() Metric {
	return s.metric
}

// Len returns the number of entries.
func (s *Selection) Len() int {
	return len(s.entries)
}

// At returns entry i.
func (s *Selection) At(i int) Entry {
	return s.entries[i]
}

// Entries returns a copy of all entries in selection order.
func (s *Selection) Entries() []Entry {
	return slices.Clone(s.entries)
}

// ReferenceIDs returns the selected reference IDs in selection order.
func (s *Selection) ReferenceIDs() []int {
	ids := make([]int, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.ReferenceID
	}

	return ids
}

// Lookup returns the entry for a training curve.
func (s *Selection) Lookup(trainingID int) (Entry, bool) {
	for _, e := range s.entries {
		if e.TrainingID == trainingID {
			return e, true
		}
	}

	return Entry{}, false
}

// String returns a multi-line summary of the selection.
func (s *Selection) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Selection{Metric: %s, Entries: %d}", s.metric, len(s.entries))
	for _, e := range s.entries {
		sb.WriteString("\n  ")
		sb.WriteString(e.String())
	}

	return sb.String()
}
