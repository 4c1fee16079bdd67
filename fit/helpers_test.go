package fit

import "testing"

// lineCurve returns a curve with y = slope*x + offset on xs.
func lineCurve(id int, xs []float64, slope, offset float64) Curve {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = slope*x + offset
	}

	return Curve{ID: id, X: append([]float64(nil), xs...), Y: ys}
}

// offsetCatalog returns reference curves 1..n that equal base shifted by +10,
// except for exactID which equals base exactly.
func offsetCatalog(t testing.TB, base Curve, n, exactID int) []Curve {
	t.Helper()

	catalog := make([]Curve, 0, n)
	for id := 1; id <= n; id++ {
		ys := make([]float64, len(base.Y))
		for i, y := range base.Y {
			if id == exactID {
				ys[i] = y
			} else {
				ys[i] = y + 10
			}
		}
		catalog = append(catalog, Curve{ID: id, X: append([]float64(nil), base.X...), Y: ys})
	}

	return catalog
}
