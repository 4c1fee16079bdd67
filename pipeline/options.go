package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/fit"
	"github.com/arloliu/curvefit/internal/options"
)

// Config holds the parameters of a pipeline run.
type Config struct {
	Logger       *slog.Logger
	Metric       fit.Metric
	CatalogSize  int
	ResetResults bool
}

func defaultConfig() *Config {
	return &Config{
		Logger: slog.Default(),
		Metric: fit.MetricPointwise,
	}
}

// Option configures a Pipeline.
type Option = options.Option[*Config]

// WithLogger sets the logger. The pipeline adds a component attribute.
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(c *Config) error {
		if logger == nil {
			return errors.New("pipeline: nil logger")
		}
		c.Logger = logger

		return nil
	})
}

// WithMetric sets the deviation metric used for tolerances and classification.
func WithMetric(m fit.Metric) Option {
	return options.New(func(c *Config) error {
		if !m.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidMetric, m)
		}
		c.Metric = m

		return nil
	})
}

// WithCatalogSize limits the reference scan to the first n curves.
// Zero scans every loaded curve.
func WithCatalogSize(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return errors.New("pipeline: negative catalog size")
		}
		c.CatalogSize = n

		return nil
	})
}

// WithResetResults makes the run replace the results table instead of
// appending to it. The replacement is part of the run's transaction, so a
// failed run keeps the previous results.
func WithResetResults() Option {
	return options.NoError(func(c *Config) {
		c.ResetResults = true
	})
}
