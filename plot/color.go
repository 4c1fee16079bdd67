package plot

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// palette colours the chosen curves in selection order.
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("17becf"),
}

var (
	colorGray     = drawing.ColorFromHex("808080")
	colorUnchosen = colorGray.WithAlpha(51)
	colorTraining = colorGray.WithAlpha(51)
	colorGrid     = drawing.ColorFromHex("e6e6e6")
)

const (
	bandAlpha     = 102
	matchedDarken = 0.95
)

func paletteColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

// darken multiplies the RGB channels by factor and keeps alpha.
func darken(c drawing.Color, factor float64) drawing.Color {
	scale := func(v uint8) uint8 {
		f := float64(v) * factor
		switch {
		case f <= 0:
			return 0
		case f >= 255:
			return 255
		default:
			return uint8(f + 0.5)
		}
	}

	return drawing.Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
