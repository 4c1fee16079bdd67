package table

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/internal/collision"
	"github.com/arloliu/curvefit/internal/hash"
	"github.com/arloliu/curvefit/section"
)

// Table holds ordered, equally long float64 columns addressed by name.
//
// Column 0 is the key column (the independent variable). A Table is not safe
// for concurrent mutation.
type Table struct {
	names   []string
	byName  map[string]int
	columns [][]float64
}

// New creates an empty table with the given column names.
//
// Returns errs.ErrInvalidColumnCount when no names or more than
// section.MaxColumnCount names are given, errs.ErrInvalidColumnName for an
// empty name, and errs.ErrDuplicateColumn when a name repeats.
func New(names ...string) (*Table, error) {
	if len(names) == 0 || len(names) > section.MaxColumnCount {
		return nil, fmt.Errorf("%w: %d columns", errs.ErrInvalidColumnCount, len(names))
	}

	tracker := collision.NewTracker()
	for _, name := range names {
		if err := tracker.TrackColumn(name, hash.ColumnID(name)); err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
	}

	t := &Table{
		names:   slices.Clone(names),
		byName:  make(map[string]int, len(names)),
		columns: make([][]float64, len(names)),
	}
	for i, name := range t.names {
		t.byName[name] = i
	}

	return t, nil
}

// FromColumns creates a table from existing column data. The columns are
// copied.
//
// Returns errs.ErrColumnLengthMismatch when the number of columns differs from
// the number of names or the columns differ in length.
func FromColumns(names []string, columns [][]float64) (*Table, error) {
	t, err := New(names...)
	if err != nil {
		return nil, err
	}

	if len(columns) != len(names) {
		return nil, fmt.Errorf("%w: %d names for %d columns", errs.ErrColumnLengthMismatch, len(names), len(columns))
	}

	rows := len(columns[0])
	for i, col := range columns {
		if len(col) != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				errs.ErrColumnLengthMismatch, names[i], len(col), rows)
		}
		t.columns[i] = slices.Clone(col)
	}

	return t, nil
}

// Names returns a copy of the column names in order.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.names)
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return len(t.columns[0])
}

// AppendRow appends one value per column.
func (t *Table) AppendRow(values ...float64) error {
	if len(values) != len(t.names) {
		return fmt.Errorf("%w: row has %d values, table has %d columns",
			errs.ErrInvalidColumnCount, len(values), len(t.names))
	}
	if t.Rows() >= math.MaxUint32 {
		return errs.ErrTooManyRows
	}

	for i, v := range values {
		t.columns[i] = append(t.columns[i], v)
	}

	return nil
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrColumnNotFound, name)
	}

	return slices.Clone(t.columns[i]), nil
}

// ColumnAt returns a copy of column i, or nil when i is out of range.
func (t *Table) ColumnAt(i int) []float64 {
	if i < 0 || i >= len(t.columns) {
		return nil
	}

	return slices.Clone(t.columns[i])
}

// Key returns a copy of the key column.
func (t *Table) Key() []float64 {
	return slices.Clone(t.columns[0])
}

// Row returns a copy of row i, or nil when i is out of range.
func (t *Table) Row(i int) []float64 {
	if i < 0 || i >= t.Rows() {
		return nil
	}

	row := make([]float64, len(t.columns))
	for c, col := range t.columns {
		row[c] = col[i]
	}

	return row
}

// HasColumns reports whether the table has exactly the given column names in order.
func (t *Table) HasColumns(names ...string) bool {
	return slices.Equal(t.names, names)
}

// Truncate removes all rows and keeps the schema.
func (t *Table) Truncate() {
	for i := range t.columns {
		t.columns[i] = t.columns[i][:0]
	}
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	c, _ := FromColumns(t.names, t.columns)

	return c
}
