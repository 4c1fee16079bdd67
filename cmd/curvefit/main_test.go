package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/curvefit/store"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestImportAndRun(t *testing.T) {
	ctx := context.Background()
	src := t.TempDir()
	dir := filepath.Join(t.TempDir(), "tables")

	train := writeFile(t, src, "train.csv", "x,y1\n0,1\n1,2\n2,3\n3,4\n")
	ideal := writeFile(t, src, "ideal.csv", "x,y1,y2,y3\n0,11,1,0\n1,12,2,2\n2,13,3,4\n3,14,4,6\n")
	test := writeFile(t, src, "test.csv", "x,y\n1,2\n1,2.0001\n")

	require.NoError(t, runImport(ctx, []string{
		"-dir", dir, "-train", train, "-ideal", ideal, "-test", test, "-compression", "lz4",
	}))
	for _, name := range []string{store.TrainTable, store.IdealTable, store.TestTable} {
		require.FileExists(t, filepath.Join(dir, name+store.FileExt))
	}

	plotPath := filepath.Join(src, "out.png")
	var out bytes.Buffer
	require.NoError(t, runPipeline(ctx, []string{
		"-dir", dir, "-training", "1", "-catalog", "3", "-plot", plotPath, "-width", "300", "-height", "200",
	}, &out))

	require.Contains(t, out.String(), "Matched:    1")
	require.Contains(t, out.String(), "Unmatched:  1")
	require.FileExists(t, plotPath)

	s, err := store.Open(dir, store.WithTrainingCount(1), store.WithCatalogSize(3))
	require.NoError(t, err)
	defer s.Close()

	recs, err := s.LoadClassifications(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, 2, recs[0].ReferenceID)
}

func TestCommandErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.Error(t, runImport(ctx, []string{"-dir", dir}))
	require.Error(t, runImport(ctx, []string{"-dir", dir, "-test", "missing.csv"}))
	require.Error(t, runImport(ctx, []string{"-dir", dir, "-test", "x.csv", "-compression", "brotli"}))
	require.Error(t, runPipeline(ctx, []string{"-dir", dir, "-metric", "manhattan"}, &bytes.Buffer{}))
	require.Error(t, runPipeline(ctx, []string{"-dir", dir}, &bytes.Buffer{}))
}
