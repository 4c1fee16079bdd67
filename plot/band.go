package plot

import "math"

// gradient estimates dy/dx at every sample with second-order central
// differences on a possibly uneven grid and one-sided differences at the ends.
func gradient(xs, ys []float64) []float64 {
	n := len(xs)
	g := make([]float64, n)
	if n < 2 {
		return g
	}

	g[0] = (ys[1] - ys[0]) / (xs[1] - xs[0])
	g[n-1] = (ys[n-1] - ys[n-2]) / (xs[n-1] - xs[n-2])
	for i := 1; i < n-1; i++ {
		hs := xs[i] - xs[i-1]
		hd := xs[i+1] - xs[i]
		g[i] = (hs*hs*ys[i+1] + (hd*hd-hs*hs)*ys[i] - hd*hd*ys[i-1]) / (hs * hd * (hd + hs))
	}

	return g
}

// band returns the closed outline of the region within width of the curve,
// measured along the curve normals: the upper offset curve followed by the
// lower one in reverse.
func band(xs, ys []float64, width float64) (bx, by []float64) {
	n := len(xs)
	bx = make([]float64, 2*n)
	by = make([]float64, 2*n)

	g := gradient(xs, ys)
	for i := range n {
		norm := math.Sqrt(1 + g[i]*g[i])
		nx, ny := -g[i]/norm, 1/norm

		bx[i], by[i] = xs[i]+width*nx, ys[i]+width*ny
		bx[2*n-1-i], by[2*n-1-i] = xs[i]-width*nx, ys[i]-width*ny
	}

	return bx, by
}
