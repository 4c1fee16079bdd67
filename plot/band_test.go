package plot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGradient(t *testing.T) {
	t.Run("linear on uniform grid", func(t *testing.T) {
		xs := []float64{0, 1, 2, 3}
		ys := []float64{1, 3, 5, 7}
		g := gradient(xs, ys)
		for _, v := range g {
			require.InDelta(t, 2.0, v, 1e-12)
		}
	})

	t.Run("quadratic on uneven grid", func(t *testing.T) {
		xs := []float64{0, 0.5, 2, 3}
		ys := make([]float64, len(xs))
		for i, x := range xs {
			ys[i] = x * x
		}
		g := gradient(xs, ys)
		// interior points are exact for a quadratic
		require.InDelta(t, 1.0, g[1], 1e-12)
		require.InDelta(t, 4.0, g[2], 1e-12)
		// ends use one-sided differences
		require.InDelta(t, 0.5, g[0], 1e-12)
		require.InDelta(t, 5.0, g[3], 1e-12)
	})

	t.Run("short input", func(t *testing.T) {
		require.Equal(t, []float64{0}, gradient([]float64{1}, []float64{2}))
		require.Empty(t, gradient(nil, nil))
	})
}

func TestBand(t *testing.T) {
	t.Run("horizontal line", func(t *testing.T) {
		xs := []float64{0, 1, 2}
		ys := []float64{1, 1, 1}
		bx, by := band(xs, ys, 0.5)
		require.Equal(t, []float64{0, 1, 2, 2, 1, 0}, bx)
		require.Equal(t, []float64{1.5, 1.5, 1.5, 0.5, 0.5, 0.5}, by)
	})

	t.Run("diagonal line offsets along the normal", func(t *testing.T) {
		xs := []float64{0, 1}
		ys := []float64{0, 1}
		bx, by := band(xs, ys, math.Sqrt2)
		require.Len(t, bx, 4)
		// upper outline moves up-left, lower outline moves down-right
		require.InDelta(t, -1.0, bx[0], 1e-12)
		require.InDelta(t, 1.0, by[0], 1e-12)
		require.InDelta(t, 1.0, bx[3], 1e-12)
		require.InDelta(t, -1.0, by[3], 1e-12)

		for i := range bx {
			src := i
			if i >= len(xs) {
				src = 2*len(xs) - 1 - i
			}
			require.InDelta(t, math.Sqrt2, math.Hypot(bx[i]-xs[src], by[i]-ys[src]), 1e-12)
		}
	})

	t.Run("zero width collapses onto the curve", func(t *testing.T) {
		xs := []float64{0, 1, 2}
		ys := []float64{0, 4, 1}
		bx, by := band(xs, ys, 0)
		require.Equal(t, []float64{0, 1, 2, 2, 1, 0}, bx)
		require.Equal(t, []float64{0, 4, 1, 1, 4, 0}, by)
	})
}
