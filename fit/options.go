package fit

import (
	"fmt"

	"github.com/arloliu/curvefit/errs"
	"github.com/arloliu/curvefit/internal/options"
)

// DefaultCatalogSize is the number of reference curves in a standard catalog.
const DefaultCatalogSize = 50

// SelectConfig holds the parameters of a selection run.
type SelectConfig struct {
	// Metric is used for both tolerance and classification.
	Metric Metric
	// CatalogSize limits the scan to the first CatalogSize reference curves
	// in ascending ID order. Zero means all supplied curves.
	CatalogSize int
}

func defaultSelectConfig() SelectConfig {
	return SelectConfig{
		Metric:      MetricPointwise,
		CatalogSize: 0,
	}
}

// SelectOption configures a selection run.
type SelectOption = options.Option[*SelectConfig]

// WithMetric sets the deviation metric.
func WithMetric(m Metric) SelectOption {
	return options.New(func(cfg *SelectConfig) error {
		if !m.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidMetric, m)
		}
		cfg.Metric = m

		return nil
	})
}

// WithCatalogSize limits the reference catalog to its first n curves.
// n = 0 uses every supplied curve.
func WithCatalogSize(n int) SelectOption {
	return options.New(func(cfg *SelectConfig) error {
		if n < 0 {
			return fmt.Errorf("%w: catalog size %d", errs.ErrPrecondition, n)
		}
		cfg.CatalogSize = n

		return nil
	})
}
