package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/arloliu/curvefit/fit"
	"github.com/arloliu/curvefit/internal/options"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Snapshot is the read-only data of one run.
type Snapshot struct {
	Training  []fit.Curve
	Reference []fit.Curve
	Selection *fit.Selection
	Records   []fit.Record
}

// legendItem is one line of the legend drawn onto the image.
type legendItem struct {
	label string
	color drawing.Color
}

// Render writes the chart for snap to w as PNG.
func Render(w io.Writer, snap Snapshot, opts ...Option) error {
	img, err := RenderImage(snap, opts...)
	if err != nil {
		return err
	}

	return png.Encode(w, img)
}

// RenderImage draws the chart for snap.
//
// Returns an error when the snapshot has no selection or no reference curves,
// when an option is invalid, or when the chart cannot be rendered.
func RenderImage(snap Snapshot, opts ...Option) (*image.RGBA, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if snap.Selection == nil {
		return nil, errors.New("plot: snapshot has no selection")
	}
	if len(snap.Reference) == 0 {
		return nil, errors.New("plot: snapshot has no reference curves")
	}

	series, legend := buildSeries(snap, cfg)

	ch := chart.Chart{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 36}},
		XAxis: chart.XAxis{
			Name:           "X",
			Range:          &chart.ContinuousRange{Min: cfg.XMin, Max: cfg.XMax},
			GridMajorStyle: chart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
			GridMinorStyle: chart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
		},
		YAxis: chart.YAxis{
			Name:           "Y",
			Range:          &chart.ContinuousRange{Min: cfg.YMin, Max: cfg.YMax},
			GridMajorStyle: chart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
			GridMinorStyle: chart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("plot: render chart: %w", err)
	}

	src, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("plot: decode chart: %w", err)
	}

	img := image.NewRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)

	drawLegend(img, legend)
	drawCaption(img, cfg.Caption)

	return img, nil
}

func buildSeries(snap Snapshot, cfg *Config) ([]chart.Series, []legendItem) {
	win := rect{xmin: cfg.XMin, xmax: cfg.XMax, ymin: cfg.YMin, ymax: cfg.YMax}

	// An invisible anchor keeps the chart valid when nothing else is visible.
	series := []chart.Series{
		chart.ContinuousSeries{
			XValues: []float64{cfg.XMin, cfg.XMax},
			YValues: []float64{cfg.YMin, cfg.YMax},
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: chart.Disabled},
		},
	}
	var legend []legendItem

	colorOf := make(map[int]drawing.Color, snap.Selection.Len())
	for i, ref := range snap.Selection.ReferenceIDs() {
		if _, ok := colorOf[ref]; !ok {
			colorOf[ref] = paletteColor(i)
		}
	}

	byID := make(map[int]fit.Curve, len(snap.Reference))
	for _, c := range snap.Reference {
		byID[c.ID] = c
		if _, chosen := colorOf[c.ID]; chosen {
			continue
		}
		series = append(series, lineSeries(win, c, chart.Style{StrokeColor: colorUnchosen, StrokeWidth: 1})...)
	}

	for _, e := range snap.Selection.Entries() {
		c, ok := byID[e.ReferenceID]
		if !ok {
			continue
		}
		col := colorOf[e.ReferenceID]

		if e.Tolerance > 0 && !hasNaN(c.Y) {
			bx, by := band(c.X, c.Y, e.Tolerance)
			if poly := win.clipPolygon(bx, by); len(poly) >= 3 {
				series = append(series, polygonSeries{
					Name:   fmt.Sprintf("band %d", e.ReferenceID),
					Style:  chart.Style{FillColor: col.WithAlpha(bandAlpha)},
					Points: poly,
				})
			}
		}
		series = append(series, lineSeries(win, c, chart.Style{StrokeColor: col, StrokeWidth: 2})...)
		legend = append(legend, legendItem{
			label: fmt.Sprintf("Chosen function %d (tolerance %.4g)", e.ReferenceID, e.Tolerance),
			color: col,
		})
	}

	var trainX, trainY []float64
	for _, c := range snap.Training {
		vx, vy := win.visiblePoints(c.X, c.Y)
		trainX = append(trainX, vx...)
		trainY = append(trainY, vy...)
	}
	series = appendDots(series, trainX, trainY, colorTraining, 3)
	legend = append(legend, legendItem{label: "Training data", color: colorGray})

	matchedX := make(map[int][]float64)
	matchedY := make(map[int][]float64)
	var unmatchedX, unmatchedY []float64
	for _, rec := range snap.Records {
		if !win.contains(point{rec.X, rec.Y}) {
			continue
		}
		if _, chosen := colorOf[rec.ReferenceID]; rec.Matched && chosen {
			matchedX[rec.ReferenceID] = append(matchedX[rec.ReferenceID], rec.X)
			matchedY[rec.ReferenceID] = append(matchedY[rec.ReferenceID], rec.Y)
			continue
		}
		unmatchedX = append(unmatchedX, rec.X)
		unmatchedY = append(unmatchedY, rec.Y)
	}

	for _, ref := range snap.Selection.ReferenceIDs() {
		xs, ys := matchedX[ref], matchedY[ref]
		if len(xs) == 0 {
			continue
		}
		series = appendDots(series, xs, ys, darken(colorOf[ref], matchedDarken), 5)
		// a reference chosen by two training curves is drawn once
		delete(matchedX, ref)
	}
	if len(snap.Records) > 0 {
		legend = append(legend, legendItem{label: "Matched test data", color: darken(paletteColor(0), matchedDarken)})
	}
	series = appendDots(series, unmatchedX, unmatchedY, colorGray, 5)
	if len(unmatchedX) > 0 {
		legend = append(legend, legendItem{label: "Unmatched test data", color: colorGray})
	}

	return series, legend
}

// lineSeries returns one series per visible run of c.
func lineSeries(win rect, c fit.Curve, style chart.Style) []chart.Series {
	runs := win.clipPolyline(c.X, c.Y)
	out := make([]chart.Series, 0, len(runs))
	for _, run := range runs {
		xs := make([]float64, len(run))
		ys := make([]float64, len(run))
		for i, p := range run {
			xs[i], ys[i] = p.x, p.y
		}
		out = append(out, chart.ContinuousSeries{XValues: xs, YValues: ys, Style: style})
	}

	return out
}

func appendDots(series []chart.Series, xs, ys []float64, col drawing.Color, width float64) []chart.Series {
	switch len(xs) {
	case 0:
		return series
	case 1:
		// pad single-point sets to two values for go-chart
		xs = []float64{xs[0], xs[0]}
		ys = []float64{ys[0], ys[0]}
	}

	return append(series, chart.ContinuousSeries{
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    width,
			DotColor:    col,
		},
	})
}

func hasNaN(vs []float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}

// drawLegend draws the legend in the top-right corner of img.
func drawLegend(img *image.RGBA, items []legendItem) {
	if len(items) == 0 {
		return
	}

	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.Black), Face: face}

	textWidth := 0
	for _, it := range items {
		textWidth = max(textWidth, dr.MeasureString(it.label).Ceil())
	}

	const (
		pad    = 8
		swatch = 10
		lineH  = 18
	)
	b := img.Bounds()
	boxW := pad + swatch + pad + textWidth + pad
	boxH := pad + len(items)*lineH + pad/2
	x0 := b.Max.X - boxW - 30
	y0 := b.Min.Y + 50

	draw.Draw(img, image.Rect(x0, y0, x0+boxW, y0+boxH),
		image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 230}), image.Point{}, draw.Over)

	for i, it := range items {
		top := y0 + pad + i*lineH
		draw.Draw(img, image.Rect(x0+pad, top, x0+pad+swatch, top+swatch),
			image.NewUniform(it.color), image.Point{}, draw.Over)

		dr.Dot = fixed.Point26_6{X: fixed.I(x0 + pad + swatch + pad), Y: fixed.I(top + swatch)}
		dr.DrawString(it.label)
	}
}

// drawCaption draws text on a dark strip near the bottom-left of img.
func drawCaption(img *image.RGBA, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.White), Face: face}

	const pad = 6
	b := img.Bounds()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	tw := dr.MeasureString(text).Ceil()

	bg := image.NewUniform(color.RGBA{A: 200})
	draw.Draw(img, image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2), bg, image.Point{}, draw.Over)

	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
}
