package fit

import (
	"fmt"
	"math"

	"github.com/arloliu/curvefit/errs"
	"gonum.org/v1/gonum/floats"
)

// ToleranceScale inflates the training deviation into the acceptance radius
// used for test observations.
const ToleranceScale = math.Sqrt2

// MaxDeviation returns the largest deviation of train from ref under metric m.
//
// For MetricPointwise this is max_i |train.Y[i] - ref.Y[i]| and the curves
// must share their x-grid. For MetricNearestEuclidean it is the largest
// distance from any training sample to the nearest point of the reference
// polyline.
//
// Returns errs.ErrGridMismatch for a pointwise comparison of different grids,
// errs.ErrInvalidMetric for an unknown metric, or a curve validation error.
func MaxDeviation(m Metric, train, ref Curve) (float64, error) {
	if err := train.Validate(); err != nil {
		return 0, err
	}
	if err := ref.Validate(); err != nil {
		return 0, err
	}

	switch m {
	case MetricPointwise:
		if err := checkGrid(train, ref); err != nil {
			return 0, err
		}

		return floats.Distance(train.Y, ref.Y, math.Inf(1)), nil
	case MetricNearestEuclidean:
		var maxDist float64
		for i := range train.X {
			if d := nearestDistance(ref, train.X[i], train.Y[i]); d > maxDist {
				maxDist = d
			}
		}

		return maxDist, nil
	default:
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidMetric, m)
	}
}

// Tolerance scales a maximum deviation by ToleranceScale.
func Tolerance(maxDeviation float64) float64 {
	return maxDeviation * ToleranceScale
}

// nearestDistance returns the Euclidean distance from (x, y) to the closest
// point of the polyline through c's samples. A single-sample curve is a point.
func nearestDistance(c Curve, x, y float64) float64 {
	if c.Len() == 1 {
		return math.Hypot(x-c.X[0], y-c.Y[0])
	}

	best := math.Inf(1)
	for i := 1; i < c.Len(); i++ {
		if d := segmentDistance(c.X[i-1], c.Y[i-1], c.X[i], c.Y[i], x, y); d < best {
			best = d
		}
	}

	return best
}

// segmentDistance returns the distance from (px, py) to the segment (ax, ay)-(bx, by).
func segmentDistance(ax, ay, bx, by, px, py float64) float64 {
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	t = max(0, min(1, t))

	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}
