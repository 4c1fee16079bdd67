package store

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/fit"
	"github.com/arloliu/curvefit/table"
)

// Table names.
const (
	TrainTable   = "train"
	IdealTable   = "ideal"
	TestTable    = "test"
	ResultsTable = "results"
)

// Column names shared by all tables.
const (
	ColumnX         = "x"
	ColumnY         = "y"
	ColumnDeltaY    = "delta_y"
	ColumnReference = "ideal_id"
)

// CurveColumns returns x, y1..yn.
func CurveColumns(n int) []string {
	names := make([]string, 0, n+1)
	names = append(names, ColumnX)
	for i := 1; i <= n; i++ {
		names = append(names, "y"+strconv.Itoa(i))
	}

	return names
}

// TestColumns returns the test table columns.
func TestColumns() []string {
	return []string{ColumnX, ColumnY}
}

// ResultColumns returns the results table columns.
func ResultColumns() []string {
	return []string{ColumnX, ColumnY, ColumnDeltaY, ColumnReference}
}

func checkSchema(name string, t *table.Table, want []string) error {
	if !t.HasColumns(want...) {
		return fmt.Errorf("%w: table %q has columns %v, want %v", errs.ErrSchemaMismatch, name, t.Names(), want)
	}

	return nil
}

// curvesFromTable turns columns y1..yn into curves 1..n sharing column x.
func curvesFromTable(t *table.Table) []fit.Curve {
	xs := t.Key()
	curves := make([]fit.Curve, 0, t.NumColumns()-1)
	for i := 1; i < t.NumColumns(); i++ {
		curves = append(curves, fit.Curve{ID: i, X: xs, Y: t.ColumnAt(i)})
	}

	return curves
}

func observationsFromTable(t *table.Table) []fit.Observation {
	obs := make([]fit.Observation, t.Rows())
	for i := range obs {
		row := t.Row(i)
		obs[i] = fit.Observation{X: row[0], Y: row[1]}
	}

	return obs
}

func recordsFromTable(t *table.Table) []fit.Record {
	recs := make([]fit.Record, t.Rows())
	for i := range recs {
		row := t.Row(i)
		recs[i] = fit.Record{X: row[0], Y: row[1]}
		if !math.IsNaN(row[3]) {
			recs[i].Matched = true
			recs[i].Deviation = row[2]
			recs[i].ReferenceID = int(row[3])
		}
	}

	return recs
}

// recordRow encodes rec as a results row, with NaN for absent values.
func recordRow(rec fit.Record) []float64 {
	if !rec.Matched {
		return []float64{rec.X, rec.Y, math.NaN(), math.NaN()}
	}

	return []float64{rec.X, rec.Y, rec.Deviation, float64(rec.ReferenceID)}
}
