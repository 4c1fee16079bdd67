package plot

import (
	"errors"

	chart "github.com/wcharczuk/go-chart/v2"
)

// polygonSeries fills a closed polygon given in data coordinates.
type polygonSeries struct {
	Name   string
	Style  chart.Style
	Points []point
}

var (
	_ chart.Series         = polygonSeries{}
	_ chart.ValuesProvider = polygonSeries{}
)

func (ps polygonSeries) GetName() string {
	return ps.Name
}

func (ps polygonSeries) GetYAxis() chart.YAxisType {
	return chart.YAxisPrimary
}

func (ps polygonSeries) GetStyle() chart.Style {
	return ps.Style
}

func (ps polygonSeries) Len() int {
	return len(ps.Points)
}

func (ps polygonSeries) GetValues(index int) (x, y float64) {
	p := ps.Points[index]

	return p.x, p.y
}

func (ps polygonSeries) Validate() error {
	if len(ps.Points) < 3 {
		return errors.New("polygon series: need at least three points")
	}

	return nil
}

func (ps polygonSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	cl, cb := canvasBox.Left, canvasBox.Bottom

	r.SetFillColor(ps.Style.FillColor)
	r.SetStrokeColor(ps.Style.FillColor)
	r.SetStrokeWidth(0)

	first := ps.Points[0]
	r.MoveTo(cl+xrange.Translate(first.x), cb-yrange.Translate(first.y))
	for _, p := range ps.Points[1:] {
		r.LineTo(cl+xrange.Translate(p.x), cb-yrange.Translate(p.y))
	}
	r.Close()
	r.Fill()
	r.ResetStyle()
}
