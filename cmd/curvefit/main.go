// Command curvefit imports curve data into a table directory and runs the
// selection and classification pipeline on it.
//
// Usage:
//
//	curvefit import -dir data -train train.csv -ideal ideal.csv -test test.csv
//	curvefit run -dir data [-metric pointwise] [-plot out.png]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/arloliu/curvefit/fit"
	"github.com/arloliu/curvefit/format"
	"github.com/arloliu/curvefit/pipeline"
	"github.com/arloliu/curvefit/plot"
	"github.com/arloliu/curvefit/store"
	"github.com/arloliu/curvefit/table"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "import":
		err = runImport(ctx, os.Args[2:])
	case "run":
		err = runPipeline(ctx, os.Args[2:], os.Stdout)
	case "-h", "-help", "--help", "help":
		usage(os.Stdout)
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: curvefit <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  import   load train, ideal and test CSV files into a table directory")
	fmt.Fprintln(w, "  run      select reference curves, classify test data and persist results")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	dir := fs.String("dir", "data", "Table directory")
	trainPath := fs.String("train", "", "Training data CSV (x, y1..yN)")
	idealPath := fs.String("ideal", "", "Reference catalog CSV (x, y1..yN)")
	testPath := fs.String("test", "", "Test data CSV (x, y)")
	compression := fs.String("compression", "zstd", "Column compression: none, zstd, s2, lz4")
	bigEndian := fs.Bool("big-endian", false, "Write tables in big-endian byte order")
	verbose := fs.Bool("v", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *trainPath == "" && *idealPath == "" && *testPath == "" {
		return errors.New("at least one of -train, -ideal, -test is required")
	}

	comp, err := format.ParseCompression(*compression)
	if err != nil {
		return err
	}
	logger := newLogger(*verbose).With(slog.String("component", "import"))

	type source struct {
		name  string
		path  string
		apply func(s *store.FileStore, t *table.Table) error
	}
	sources := []source{
		{store.TrainTable, *trainPath, func(s *store.FileStore, t *table.Table) error { return s.ImportTraining(ctx, t) }},
		{store.IdealTable, *idealPath, func(s *store.FileStore, t *table.Table) error { return s.ImportReference(ctx, t) }},
		{store.TestTable, *testPath, func(s *store.FileStore, t *table.Table) error { return s.ImportTest(ctx, t) }},
	}

	loaded := make(map[string]*table.Table, len(sources))
	for _, src := range sources {
		if src.path == "" {
			continue
		}
		t, err := store.ReadCSVFile(src.path)
		if err != nil {
			return err
		}
		loaded[src.name] = t
	}

	opts := []store.Option{store.WithCompression(comp)}
	if d, ok := loaded[store.TrainTable]; ok {
		opts = append(opts, store.WithTrainingCount(d.NumColumns()-1))
	}
	if d, ok := loaded[store.IdealTable]; ok {
		opts = append(opts, store.WithCatalogSize(d.NumColumns()-1))
	}
	if *bigEndian {
		opts = append(opts, store.WithBigEndian())
	}

	s, err := store.Open(*dir, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, src := range sources {
		d, ok := loaded[src.name]
		if !ok {
			continue
		}
		if err := src.apply(s, d); err != nil {
			return fmt.Errorf("import %s: %w", src.path, err)
		}
		logger.Info("table imported",
			slog.String("table", src.name),
			slog.String("source", src.path),
			slog.String("file", s.Path(src.name)),
			slog.Int("rows", d.Rows()),
			slog.Int("columns", d.NumColumns()),
		)
	}

	return nil
}

func runPipeline(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	dir := fs.String("dir", "data", "Table directory")
	metricName := fs.String("metric", "pointwise", "Deviation metric: pointwise, nearest_euclidean")
	training := fs.Int("training", store.DefaultTrainingCount, "Number of training curves in the train table")
	catalog := fs.Int("catalog", store.DefaultCatalogSize, "Number of reference curves in the ideal table")
	reset := fs.Bool("reset", true, "Clear previous results before persisting")
	plotPath := fs.String("plot", "", "Optional PNG output for the visualization")
	width := fs.Int("width", plot.DefaultWidth, "Plot width in pixels")
	height := fs.Int("height", plot.DefaultHeight, "Plot height in pixels")
	verbose := fs.Bool("v", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	metric, err := fit.ParseMetric(*metricName)
	if err != nil {
		return err
	}

	s, err := store.Open(*dir, store.WithTrainingCount(*training), store.WithCatalogSize(*catalog))
	if err != nil {
		return err
	}
	defer s.Close()

	opts := []pipeline.Option{
		pipeline.WithLogger(newLogger(*verbose)),
		pipeline.WithMetric(metric),
		pipeline.WithCatalogSize(*catalog),
	}
	if *reset {
		opts = append(opts, pipeline.WithResetResults())
	}

	p, err := pipeline.New(s, opts...)
	if err != nil {
		return err
	}

	report, err := p.Run(ctx)
	if err != nil {
		return err
	}

	printReport(out, report)

	if *plotPath == "" {
		return nil
	}

	f, err := os.Create(*plotPath)
	if err != nil {
		return err
	}
	caption := fmt.Sprintf("run %s, metric %s, %d matched, %d unmatched",
		report.RunID, metric, report.Matched, report.Unmatched)
	if err := plot.Render(f, report.Snapshot(), plot.WithSize(*width, *height), plot.WithCaption(caption)); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func printReport(w io.Writer, report *pipeline.Report) {
	fmt.Fprintf(w, "=== Run %s (%s metric) ===\n\n", report.RunID, report.Selection.Metric())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TRAINING\tREFERENCE\tSSE\tMAX DEVIATION\tTOLERANCE")
	for _, e := range report.Selection.Entries() {
		fmt.Fprintf(tw, "%d\t%d\t%.6g\t%.6g\t%.6g\n", e.TrainingID, e.ReferenceID, e.SSE, e.MaxDeviation, e.Tolerance)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Observations: %d\n", len(report.Records))
	fmt.Fprintf(w, "  Matched:    %d\n", report.Matched)
	fmt.Fprintf(w, "  Unmatched:  %d\n", report.Unmatched)
	fmt.Fprintf(w, "  Skipped:    %d pair evaluations\n", report.Skipped)
	fmt.Fprintf(w, "Duration:     %v\n", report.Duration)
}
