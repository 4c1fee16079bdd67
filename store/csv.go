package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/curvefit/table"
)

// ReadCSV reads a table from CSV. The first record holds the column names,
// which are trimmed and lower-cased; every following record holds one row.
// Empty cells are read as NaN.
//
// Returns an error naming the line and column of the first bad value.
func ReadCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.ToLower(strings.TrimSpace(h))
	}

	t, err := table.New(names...)
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}

	row := make([]float64, len(names))
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}

		line, _ := cr.FieldPos(0)
		for i, field := range rec {
			v, err := parseCell(field)
			if err != nil {
				return nil, fmt.Errorf("csv line %d column %q: %w", line, names[i], err)
			}
			row[i] = v
		}
		if err := t.AppendRow(row...); err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
	}

	return t, nil
}

// ReadCSVFile reads a table from the CSV file at path.
func ReadCSVFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// WriteCSV writes t as CSV with a header record. NaN is written as an empty cell.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return err
	}

	rec := make([]string, t.NumColumns())
	for i := range t.Rows() {
		for c, v := range t.Row(i) {
			rec[c] = formatCell(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func parseCell(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return math.NaN(), nil
	}

	return strconv.ParseFloat(field, 64)
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
