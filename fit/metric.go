package fit

import (
	"fmt"
	"strings"

	"github.com/arloliu/curvefit/errs"
)

// Metric selects how the deviation between a point and a curve is measured.
type Metric uint8

const (
	// MetricPointwise measures |y - y_ref(x)| on a shared x-grid.
	MetricPointwise Metric = iota + 1
	// MetricNearestEuclidean measures the Euclidean distance to the nearest
	// point of the reference polyline.
	MetricNearestEuclidean
)

func (m Metric) String() string {
	switch m {
	case MetricPointwise:
		return "pointwise"
	case MetricNearestEuclidean:
		return "nearest_euclidean"
	default:
		return "unknown"
	}
}

// IsValid reports whether m is a known metric.
func (m Metric) IsValid() bool {
	return m == MetricPointwise || m == MetricNearestEuclidean
}

// ParseMetric converts "pointwise" or "nearest_euclidean" (case-insensitive,
// "euclidean" and "nearest-euclidean" accepted) into a Metric.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "pointwise":
		return MetricPointwise, nil
	case "nearest_euclidean", "nearest-euclidean", "euclidean":
		return MetricNearestEuclidean, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidMetric, name)
	}
}
