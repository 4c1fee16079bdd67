package plot

import "math"

type point struct {
	x, y float64
}

// rect is the visible data window.
type rect struct {
	xmin, xmax, ymin, ymax float64
}

func (r rect) contains(p point) bool {
	return p.x >= r.xmin && p.x <= r.xmax && p.y >= r.ymin && p.y <= r.ymax
}

// clipSegment clips a-b to r with the Liang-Barsky algorithm.
func (r rect) clipSegment(a, b point) (point, point, bool) {
	dx, dy := b.x-a.x, b.y-a.y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, a.x - r.xmin},
		{dx, r.xmax - a.x},
		{-dy, a.y - r.ymin},
		{dy, r.ymax - a.y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}

	return point{a.x + t0*dx, a.y + t0*dy}, point{a.x + t1*dx, a.y + t1*dy}, true
}

// clipPolyline splits the polyline into the runs that lie inside r.
func (r rect) clipPolyline(xs, ys []float64) [][]point {
	var runs [][]point
	var cur []point

	flush := func() {
		if len(cur) > 1 {
			runs = append(runs, cur)
		}
		cur = nil
	}

	for i := 1; i < len(xs); i++ {
		a, b := point{xs[i-1], ys[i-1]}, point{xs[i], ys[i]}
		if isNaNPoint(a) || isNaNPoint(b) {
			flush()
			continue
		}

		ca, cb, ok := r.clipSegment(a, b)
		if !ok {
			flush()
			continue
		}
		if len(cur) == 0 || cur[len(cur)-1] != ca {
			flush()
			cur = append(cur, ca)
		}
		cur = append(cur, cb)
		if cb != b {
			flush()
		}
	}
	flush()

	return runs
}

// clipPolygon clips a closed polygon to r with the Sutherland-Hodgman algorithm.
func (r rect) clipPolygon(xs, ys []float64) []point {
	poly := make([]point, 0, len(xs))
	for i := range xs {
		poly = append(poly, point{xs[i], ys[i]})
	}

	type edge struct {
		inside    func(point) bool
		intersect func(a, b point) point
	}
	lerpX := func(a, b point, x float64) point {
		return point{x, a.y + (b.y-a.y)*(x-a.x)/(b.x-a.x)}
	}
	lerpY := func(a, b point, y float64) point {
		return point{a.x + (b.x-a.x)*(y-a.y)/(b.y-a.y), y}
	}

	edges := []edge{
		{func(p point) bool { return p.x >= r.xmin }, func(a, b point) point { return lerpX(a, b, r.xmin) }},
		{func(p point) bool { return p.x <= r.xmax }, func(a, b point) point { return lerpX(a, b, r.xmax) }},
		{func(p point) bool { return p.y >= r.ymin }, func(a, b point) point { return lerpY(a, b, r.ymin) }},
		{func(p point) bool { return p.y <= r.ymax }, func(a, b point) point { return lerpY(a, b, r.ymax) }},
	}

	for _, e := range edges {
		if len(poly) == 0 {
			break
		}
		in := poly
		poly = make([]point, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, p := range in {
			switch {
			case e.inside(p):
				if !e.inside(prev) {
					poly = append(poly, e.intersect(prev, p))
				}
				poly = append(poly, p)
			case e.inside(prev):
				poly = append(poly, e.intersect(prev, p))
			}
			prev = p
		}
	}

	return poly
}

// visiblePoints returns the points of xs, ys inside r.
func (r rect) visiblePoints(xs, ys []float64) (vx, vy []float64) {
	for i := range xs {
		if r.contains(point{xs[i], ys[i]}) {
			vx = append(vx, xs[i])
			vy = append(vy, ys[i])
		}
	}

	return vx, vy
}

func isNaNPoint(p point) bool {
	return math.IsNaN(p.x) || math.IsNaN(p.y)
}
