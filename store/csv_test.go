package store

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arloliu/curvefit/errs"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	in := "X, Y1,y2\n-20.0,39.778572,-40.07859\n-19.9, 39.604813 ,\n"

	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y1", "y2"}, tbl.Names())
	require.Equal(t, 2, tbl.Rows())
	require.Equal(t, []float64{-20, 39.778572, -40.07859}, tbl.Row(0))

	row := tbl.Row(1)
	require.InDelta(t, 39.604813, row[1], 0)
	require.True(t, math.IsNaN(row[2]))
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
		wantMsg string
	}{
		{name: "empty", in: "", wantMsg: "missing header"},
		{name: "duplicate column", in: "x,y,Y\n", wantErr: errs.ErrDuplicateColumn},
		{name: "bad number", in: "x,y\n1,2\n3,abc\n", wantMsg: `line 3 column "y"`},
		{name: "ragged row", in: "x,y\n1,2,3\n", wantMsg: "wrong number of fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				require.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	in := "x,y,delta_y,ideal_id\n1,2,0.25,7\n3,4,,\n"

	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	require.Equal(t, in, buf.String())
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n0.5,1.5\n"), 0o600))

	tbl, err := ReadCSVFile(path)
	require.NoError(t, err)
	require.True(t, tbl.HasColumns(TestColumns()...))

	_, err = ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
