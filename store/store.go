package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/fit"
	"github.com/arloliu/curvefit/internal/options"
	"github.com/arloliu/curvefit/table"
)

// Store is the tabular store consumed by the pipeline.
type Store interface {
	// LoadTraining returns the training curves, IDs 1..n.
	LoadTraining(ctx context.Context) ([]fit.Curve, error)
	// LoadReference returns the reference catalog, IDs 1..n.
	LoadReference(ctx context.Context) ([]fit.Curve, error)
	// LoadTest returns the test observations in table order.
	LoadTest(ctx context.Context) ([]fit.Observation, error)
	// LoadClassifications returns the persisted classification records.
	LoadClassifications(ctx context.Context) ([]fit.Record, error)
	// Begin starts a transaction for persisting classification records.
	Begin(ctx context.Context) (Tx, error)
}

// Tx stages classification records until Commit.
type Tx interface {
	PersistClassification(rec fit.Record) error
	// ResetResults makes Commit replace the results table with the staged
	// records instead of appending to it.
	ResetResults() error
	Commit() error
	Rollback() error
}

// backend reads and writes whole tables.
type backend interface {
	readTable(name string) (*table.Table, error)
	writeTable(name string, t *table.Table) error
}

// tables implements Store on top of a backend. All methods are serialized by mu.
type tables struct {
	mu      sync.Mutex
	closed  bool
	cfg     *Config
	backend backend
}

func newTables(b backend, opts ...Option) (*tables, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &tables{cfg: cfg, backend: b}, nil
}

// storageErr wraps err in errs.ErrStorage unless it already is one.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrStorage) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%w: %s: %w", errs.ErrStorage, op, err)
}

func (s *tables) load(ctx context.Context, name string, columns []string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageErr("load "+name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errs.ErrStoreClosed
	}

	t, err := s.backend.readTable(name)
	if err != nil {
		return nil, storageErr("load "+name, err)
	}
	if err := checkSchema(name, t, columns); err != nil {
		return nil, err
	}

	return t, nil
}

// LoadTraining loads the train table.
func (s *tables) LoadTraining(ctx context.Context) ([]fit.Curve, error) {
	t, err := s.load(ctx, TrainTable, CurveColumns(s.cfg.TrainingCount))
	if err != nil {
		return nil, err
	}

	return curvesFromTable(t), nil
}

// LoadReference loads the ideal table.
func (s *tables) LoadReference(ctx context.Context) ([]fit.Curve, error) {
	t, err := s.load(ctx, IdealTable, CurveColumns(s.cfg.CatalogSize))
	if err != nil {
		return nil, err
	}

	return curvesFromTable(t), nil
}

// LoadTest loads the test table.
func (s *tables) LoadTest(ctx context.Context) ([]fit.Observation, error) {
	t, err := s.load(ctx, TestTable, TestColumns())
	if err != nil {
		return nil, err
	}

	return observationsFromTable(t), nil
}

// LoadClassifications loads the results table. A missing results table is empty.
func (s *tables) LoadClassifications(ctx context.Context) ([]fit.Record, error) {
	t, err := s.load(ctx, ResultsTable, ResultColumns())
	if errors.Is(err, errs.ErrTableNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return recordsFromTable(t), nil
}

func (s *tables) replace(ctx context.Context, name string, t *table.Table, columns []string) error {
	if err := ctx.Err(); err != nil {
		return storageErr("import "+name, err)
	}
	if err := checkSchema(name, t, columns); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errs.ErrStoreClosed
	}

	return storageErr("import "+name, s.backend.writeTable(name, t))
}

// ImportTraining replaces the train table. t must have columns x, y1..yN
// where N is the configured training count.
func (s *tables) ImportTraining(ctx context.Context, t *table.Table) error {
	return s.replace(ctx, TrainTable, t, CurveColumns(s.cfg.TrainingCount))
}

// ImportReference replaces the ideal table. t must have columns x, y1..yN
// where N is the configured catalog size.
func (s *tables) ImportReference(ctx context.Context, t *table.Table) error {
	return s.replace(ctx, IdealTable, t, CurveColumns(s.cfg.CatalogSize))
}

// ImportTest replaces the test table.
func (s *tables) ImportTest(ctx context.Context, t *table.Table) error {
	return s.replace(ctx, TestTable, t, TestColumns())
}

// ResetResults replaces the results table with an empty one.
func (s *tables) ResetResults(ctx context.Context) error {
	t, err := table.New(ResultColumns()...)
	if err != nil {
		return storageErr("reset results", err)
	}

	return s.replace(ctx, ResultsTable, t, ResultColumns())
}

// Begin starts a transaction.
func (s *tables) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageErr("begin", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errs.ErrStoreClosed
	}

	return &tx{ctx: ctx, store: s}, nil
}

// Close releases the store. Further operations fail with errs.ErrStoreClosed.
// Closing twice is a no-op.
func (s *tables) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	return nil
}

// Config returns a copy of the store configuration.
func (s *tables) Config() Config {
	return *s.cfg
}

// appendResults appends rows to the results table in one write. With replace
// set the existing rows are dropped in the same write.
func (s *tables) appendResults(recs []fit.Record, replace bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errs.ErrStoreClosed
	}

	var t *table.Table
	err := errs.ErrTableNotFound
	if !replace {
		t, err = s.backend.readTable(ResultsTable)
	}
	switch {
	case errors.Is(err, errs.ErrTableNotFound):
		t, err = table.New(ResultColumns()...)
		if err != nil {
			return storageErr("commit", err)
		}
	case err != nil:
		return storageErr("commit", err)
	}
	if err := checkSchema(ResultsTable, t, ResultColumns()); err != nil {
		return err
	}

	for _, rec := range recs {
		if err := t.AppendRow(recordRow(rec)...); err != nil {
			return storageErr("commit", err)
		}
	}

	return storageErr("commit", s.backend.writeTable(ResultsTable, t))
}

// tx stages records in memory; Commit writes them with a single table write.
type tx struct {
	ctx     context.Context //nolint: containedctx
	store   *tables
	staged  []fit.Record
	replace bool
	done    bool
}

func (t *tx) PersistClassification(rec fit.Record) error {
	if t.done {
		return errs.ErrTxDone
	}
	if err := t.ctx.Err(); err != nil {
		return storageErr("persist classification", err)
	}

	t.staged = append(t.staged, rec)

	return nil
}

func (t *tx) ResetResults() error {
	if t.done {
		return errs.ErrTxDone
	}
	t.replace = true

	return nil
}

func (t *tx) Commit() error {
	if t.done {
		return errs.ErrTxDone
	}
	t.done = true

	if err := t.ctx.Err(); err != nil {
		return storageErr("commit", err)
	}

	return t.store.appendResults(t.staged, t.replace)
}

func (t *tx) Rollback() error {
	if t.done {
		return errs.ErrTxDone
	}
	t.done = true
	t.staged = nil

	return nil
}
