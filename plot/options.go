package plot

import (
	"errors"

	"github.com/arloliu/curvefit/internal/options"
)

// Defaults for the rendered view.
const (
	DefaultWidth  = 1500
	DefaultHeight = 1000
	DefaultMin    = -20.0
	DefaultMax    = 20.0
)

// Config controls the size, view window and texts of a rendered chart.
type Config struct {
	Width   int
	Height  int
	XMin    float64
	XMax    float64
	YMin    float64
	YMax    float64
	Title   string
	Caption string
}

func defaultConfig() *Config {
	return &Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		XMin:   DefaultMin,
		XMax:   DefaultMax,
		YMin:   DefaultMin,
		YMax:   DefaultMax,
		Title:  "Data Visualization with Deviations",
	}
}

// Option configures Render.
type Option = options.Option[*Config]

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return options.New(func(c *Config) error {
		if width <= 0 || height <= 0 {
			return errors.New("plot: width and height must be positive")
		}
		c.Width, c.Height = width, height

		return nil
	})
}

// WithXRange sets the visible x window.
func WithXRange(minX, maxX float64) Option {
	return options.New(func(c *Config) error {
		if !(minX < maxX) {
			return errors.New("plot: empty x range")
		}
		c.XMin, c.XMax = minX, maxX

		return nil
	})
}

// WithYRange sets the visible y window.
func WithYRange(minY, maxY float64) Option {
	return options.New(func(c *Config) error {
		if !(minY < maxY) {
			return errors.New("plot: empty y range")
		}
		c.YMin, c.YMax = minY, maxY

		return nil
	})
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return options.NoError(func(c *Config) {
		c.Title = title
	})
}

// WithCaption sets a caption line drawn at the bottom-left of the image.
func WithCaption(caption string) Option {
	return options.NoError(func(c *Config) {
		c.Caption = caption
	})
}
