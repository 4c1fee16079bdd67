package store

import (
	"context"
	"math"
	"testing"

	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/fit"
	"github.com/arloliu/curvefit/table"
	"github.com/stretchr/testify/require"
)

// importer is the part of FileStore and MemStore that is not in Store.
type importer interface {
	Store
	ImportTraining(ctx context.Context, t *table.Table) error
	ImportReference(ctx context.Context, t *table.Table) error
	ImportTest(ctx context.Context, t *table.Table) error
	ResetResults(ctx context.Context) error
	Close() error
}

func curveTable(t *testing.T, n int, xs []float64) *table.Table {
	t.Helper()

	tbl, err := table.New(CurveColumns(n)...)
	require.NoError(t, err)
	for _, x := range xs {
		row := []float64{x}
		for id := 1; id <= n; id++ {
			row = append(row, x*float64(id))
		}
		require.NoError(t, tbl.AppendRow(row...))
	}

	return tbl
}

func testTable(t *testing.T, points ...fit.Observation) *table.Table {
	t.Helper()

	tbl, err := table.New(TestColumns()...)
	require.NoError(t, err)
	for _, p := range points {
		require.NoError(t, tbl.AppendRow(p.X, p.Y))
	}

	return tbl
}

func runStoreContract(t *testing.T, newStore func(t *testing.T, opts ...Option) importer) {
	ctx := context.Background()
	xs := []float64{-1, 0, 0.5, 2}

	t.Run("load missing table", func(t *testing.T) {
		s := newStore(t)
		_, err := s.LoadTraining(ctx)
		require.ErrorIs(t, err, errs.ErrTableNotFound)
		require.ErrorIs(t, err, errs.ErrStorage)

		recs, err := s.LoadClassifications(ctx)
		require.NoError(t, err)
		require.Empty(t, recs)
	})

	t.Run("import and load curves", func(t *testing.T) {
		s := newStore(t, WithTrainingCount(2), WithCatalogSize(3))
		require.NoError(t, s.ImportTraining(ctx, curveTable(t, 2, xs)))
		require.NoError(t, s.ImportReference(ctx, curveTable(t, 3, xs)))
		require.NoError(t, s.ImportTest(ctx, testTable(t, fit.Observation{X: 0.5, Y: 1}, fit.Observation{X: 2, Y: -3})))

		training, err := s.LoadTraining(ctx)
		require.NoError(t, err)
		require.Len(t, training, 2)
		require.Equal(t, 2, training[1].ID)
		require.Equal(t, xs, training[1].X)
		require.Equal(t, []float64{-2, 0, 1, 4}, training[1].Y)

		catalog, err := s.LoadReference(ctx)
		require.NoError(t, err)
		require.Len(t, catalog, 3)
		require.Equal(t, []float64{-3, 0, 1.5, 6}, catalog[2].Y)

		obs, err := s.LoadTest(ctx)
		require.NoError(t, err)
		require.Equal(t, []fit.Observation{{X: 0.5, Y: 1}, {X: 2, Y: -3}}, obs)
	})

	t.Run("schema mismatch", func(t *testing.T) {
		s := newStore(t)
		err := s.ImportTraining(ctx, curveTable(t, 3, xs))
		require.ErrorIs(t, err, errs.ErrSchemaMismatch)

		err = s.ImportReference(ctx, curveTable(t, 49, xs))
		require.ErrorIs(t, err, errs.ErrSchemaMismatch)

		bad, err := table.New("x", "value")
		require.NoError(t, err)
		require.ErrorIs(t, s.ImportTest(ctx, bad), errs.ErrSchemaMismatch)
	})

	t.Run("commit appends records", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.ResetResults(ctx))

		tx, err := s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.PersistClassification(fit.Record{X: 1, Y: 2, Deviation: 0.25, ReferenceID: 7, Matched: true}))
		require.NoError(t, tx.PersistClassification(fit.Record{X: 1, Y: 9}))
		require.NoError(t, tx.Commit())

		tx, err = s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.PersistClassification(fit.Record{X: 3, Y: 4, ReferenceID: 2, Matched: true}))
		require.NoError(t, tx.Commit())

		recs, err := s.LoadClassifications(ctx)
		require.NoError(t, err)
		require.Equal(t, []fit.Record{
			{X: 1, Y: 2, Deviation: 0.25, ReferenceID: 7, Matched: true},
			{X: 1, Y: 9},
			{X: 3, Y: 4, Deviation: 0, ReferenceID: 2, Matched: true},
		}, recs)

		require.NoError(t, s.ResetResults(ctx))
		recs, err = s.LoadClassifications(ctx)
		require.NoError(t, err)
		require.Empty(t, recs)
	})

	t.Run("reset inside transaction replaces on commit", func(t *testing.T) {
		s := newStore(t)
		old := fit.Record{X: 1, Y: 9}

		tx, err := s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.PersistClassification(old))
		require.NoError(t, tx.Commit())

		tx, err = s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.ResetResults())
		require.NoError(t, tx.PersistClassification(fit.Record{X: 3, Y: 4, ReferenceID: 2, Matched: true}))

		// nothing changes before commit
		recs, err := s.LoadClassifications(ctx)
		require.NoError(t, err)
		require.Equal(t, []fit.Record{old}, recs)

		require.NoError(t, tx.Commit())
		recs, err = s.LoadClassifications(ctx)
		require.NoError(t, err)
		require.Equal(t, []fit.Record{{X: 3, Y: 4, ReferenceID: 2, Matched: true}}, recs)
	})

	t.Run("reset inside transaction is undone by rollback", func(t *testing.T) {
		s := newStore(t)
		old := fit.Record{X: 1, Y: 2, Deviation: 0.5, ReferenceID: 3, Matched: true}

		tx, err := s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.PersistClassification(old))
		require.NoError(t, tx.Commit())

		tx, err = s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.ResetResults())
		require.NoError(t, tx.Rollback())
		require.ErrorIs(t, tx.ResetResults(), errs.ErrTxDone)

		recs, err := s.LoadClassifications(ctx)
		require.NoError(t, err)
		require.Equal(t, []fit.Record{old}, recs)
	})

	t.Run("rollback discards records", func(t *testing.T) {
		s := newStore(t)

		tx, err := s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.PersistClassification(fit.Record{X: 1, Y: 2}))
		require.NoError(t, tx.Rollback())

		recs, err := s.LoadClassifications(ctx)
		require.NoError(t, err)
		require.Empty(t, recs)
	})

	t.Run("finished transaction", func(t *testing.T) {
		s := newStore(t)

		tx, err := s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())
		require.ErrorIs(t, tx.Commit(), errs.ErrTxDone)
		require.ErrorIs(t, tx.Rollback(), errs.ErrTxDone)
		require.ErrorIs(t, tx.PersistClassification(fit.Record{}), errs.ErrTxDone)
	})

	t.Run("closed store", func(t *testing.T) {
		s := newStore(t)
		tx, err := s.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.PersistClassification(fit.Record{X: 1}))

		require.NoError(t, s.Close())
		require.NoError(t, s.Close())

		_, err = s.LoadTest(ctx)
		require.ErrorIs(t, err, errs.ErrStoreClosed)
		_, err = s.Begin(ctx)
		require.ErrorIs(t, err, errs.ErrStoreClosed)
		require.ErrorIs(t, s.ImportTest(ctx, testTable(t)), errs.ErrStoreClosed)
		require.ErrorIs(t, tx.Commit(), errs.ErrStoreClosed)
	})

	t.Run("canceled context", func(t *testing.T) {
		s := newStore(t)
		cctx, cancel := context.WithCancel(ctx)
		tx, err := s.Begin(cctx)
		require.NoError(t, err)
		cancel()

		_, err = s.LoadTest(cctx)
		require.ErrorIs(t, err, context.Canceled)
		require.ErrorIs(t, err, errs.ErrStorage)
		require.ErrorIs(t, tx.PersistClassification(fit.Record{}), context.Canceled)
		require.ErrorIs(t, tx.Commit(), context.Canceled)
	})
}

func TestMemStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T, opts ...Option) importer {
		s, err := NewMemStore(opts...)
		require.NoError(t, err)

		return s
	})
}

func TestMemStore_CopiesTables(t *testing.T) {
	ctx := context.Background()
	s, err := NewMemStore()
	require.NoError(t, err)

	tbl := testTable(t, fit.Observation{X: 1, Y: 1})
	require.NoError(t, s.ImportTest(ctx, tbl))
	require.NoError(t, tbl.AppendRow(2, 2))

	obs, err := s.LoadTest(ctx)
	require.NoError(t, err)
	require.Len(t, obs, 1)
}

func TestOptions_Invalid(t *testing.T) {
	_, err := NewMemStore(WithTrainingCount(0))
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)

	_, err = NewMemStore(WithCatalogSize(-3))
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)

	_, err = NewMemStore(WithCompression(0))
	require.ErrorIs(t, err, errs.ErrStorage)
}

func TestRecordRow(t *testing.T) {
	row := recordRow(fit.Record{X: 1, Y: 2})
	require.Equal(t, []float64{1, 2}, row[:2])
	require.True(t, math.IsNaN(row[2]))
	require.True(t, math.IsNaN(row[3]))

	require.Equal(t, []float64{1, 2, 0.5, 3}, recordRow(fit.Record{X: 1, Y: 2, Deviation: 0.5, ReferenceID: 3, Matched: true}))
}

func TestCurveColumns(t *testing.T) {
	require.Equal(t, []string{"x", "y1", "y2", "y3", "y4"}, CurveColumns(DefaultTrainingCount))
	require.Len(t, CurveColumns(DefaultCatalogSize), 51)
	require.Equal(t, "y50", CurveColumns(DefaultCatalogSize)[50])
}
