package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arloliu/curvefit/fit"
	"github.com/arloliu/curvefit/internal/options"
	"github.com/arloliu/curvefit/plot"
	"github.com/arloliu/curvefit/store"
	"github.com/google/uuid"
)

// Report summarizes one run.
type Report struct {
	RunID     uuid.UUID
	Selection *fit.Selection
	Training  []fit.Curve
	Reference []fit.Curve
	Records   []fit.Record
	Matched   int
	Unmatched int
	// Skipped counts the (observation, pair) evaluations that failed with a
	// domain error.
	Skipped  int
	Duration time.Duration
}

// Snapshot returns the data needed to visualize the run.
func (r *Report) Snapshot() plot.Snapshot {
	return plot.Snapshot{
		Training:  r.Training,
		Reference: r.Reference,
		Selection: r.Selection,
		Records:   r.Records,
	}
}

// String returns a human-readable summary of the report.
func (r *Report) String() string {
	return fmt.Sprintf("Report{RunID: %s, Pairs: %d, Matched: %d, Unmatched: %d, Skipped: %d}",
		r.RunID, r.Selection.Len(), r.Matched, r.Unmatched, r.Skipped)
}

// Pipeline drives selection and classification against a store.
type Pipeline struct {
	store  store.Store
	cfg    *Config
	logger *slog.Logger
}

// New creates a pipeline over s.
func New(s store.Store, opts ...Option) (*Pipeline, error) {
	if s == nil {
		return nil, errors.New("pipeline: nil store")
	}

	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Pipeline{
		store:  s,
		cfg:    cfg,
		logger: cfg.Logger.With(slog.String("component", "pipeline")),
	}, nil
}

// Run performs one selection and classification pass.
//
// Parameters:
//   - ctx: Cancels the run between observations
//
// Returns:
//   - *Report: The selection and the persisted records
//   - error: Precondition and storage errors abort the run and persist nothing
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.New()}
	logger := p.logger.With(slog.String("run_id", report.RunID.String()))

	training, err := p.store.LoadTraining(ctx)
	if err != nil {
		return nil, fmt.Errorf("load training curves: %w", err)
	}
	reference, err := p.store.LoadReference(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference curves: %w", err)
	}
	observations, err := p.store.LoadTest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load test observations: %w", err)
	}
	logger.Info("data loaded",
		slog.Int("training", len(training)),
		slog.Int("reference", len(reference)),
		slog.Int("observations", len(observations)),
	)

	sel, err := fit.Select(training, reference,
		fit.WithMetric(p.cfg.Metric),
		fit.WithCatalogSize(p.cfg.CatalogSize),
	)
	if err != nil {
		return nil, fmt.Errorf("select reference curves: %w", err)
	}
	for _, e := range sel.Entries() {
		logger.Info("reference selected",
			slog.Int("training_id", e.TrainingID),
			slog.Int("reference_id", e.ReferenceID),
			slog.Float64("sse", e.SSE),
			slog.Float64("max_deviation", e.MaxDeviation),
			slog.Float64("tolerance", e.Tolerance),
		)
	}

	clf, err := fit.NewClassifier(sel, reference)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	records, err := p.persist(ctx, logger, clf, observations, report)
	if err != nil {
		return nil, err
	}

	report.Selection = sel
	report.Training = training
	report.Reference = reference
	report.Records = records
	report.Duration = time.Since(start)

	logger.Info("run finished",
		slog.Int("matched", report.Matched),
		slog.Int("unmatched", report.Unmatched),
		slog.Int("skipped", report.Skipped),
		slog.Duration("duration", report.Duration),
	)

	return report, nil
}

// persist classifies every observation and stores the records in one
// transaction, rolling it back on any failure.
func (p *Pipeline) persist(ctx context.Context, logger *slog.Logger, clf *fit.Classifier, observations []fit.Observation, report *Report) ([]fit.Record, error) {
	tx, err := p.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	if p.cfg.ResetResults {
		if err := tx.ResetResults(); err != nil {
			return nil, errors.Join(fmt.Errorf("reset results: %w", err), tx.Rollback())
		}
		logger.Debug("results table replaced on commit")
	}

	records := make([]fit.Record, 0, len(observations))
	for _, obs := range observations {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(err, tx.Rollback())
		}

		c := clf.Classify(obs)
		for _, pe := range c.Skipped {
			logger.Warn("pair skipped",
				slog.Float64("x", obs.X),
				slog.Float64("y", obs.Y),
				slog.Int("training_id", pe.TrainingID),
				slog.Int("reference_id", pe.ReferenceID),
				slog.String("error", pe.Err.Error()),
			)
		}
		report.Skipped += len(c.Skipped)
		if c.Matched {
			report.Matched++
		} else {
			report.Unmatched++
		}

		rec := c.Record()
		if err := tx.PersistClassification(rec); err != nil {
			return nil, errors.Join(fmt.Errorf("persist classification: %w", err), tx.Rollback())
		}
		records = append(records, rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit classifications: %w", err)
	}

	return records, nil
}
