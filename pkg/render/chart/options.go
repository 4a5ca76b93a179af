package chart

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/funnel/pkg/fonts"
	"github.com/matzehuels/funnel/pkg/render/chart/placement"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 500

	// MaxDimension bounds the width and height accepted from configuration
	// and requests; a raster of this size is already 400 MB.
	MaxDimension = 10000
)

// Theme holds the chart colors.
type Theme struct {
	GradientFrom color.Color // fill of the smallest bars
	GradientTo   color.Color // fill of the top bar
	LightText    color.Color
	DarkText     color.Color
	Background   color.Color
}

// DefaultTheme returns a blue theme on white.
func DefaultTheme() Theme {
	return Theme{
		GradientFrom: mustHex("#9ecae1"),
		GradientTo:   mustHex("#08519c"),
		LightText:    mustHex("#ffffff"),
		DarkText:     mustHex("#333333"),
		Background:   mustHex("#ffffff"),
	}
}

// Options configures a draw pass.
type Options struct {
	Width  float64
	Height float64
	// GradientBase is the absolute proportion at or below which bars get
	// Theme.GradientFrom. It must be in [0, 1).
	GradientBase float64
	FontFamily   string
	Style        placement.Style
	Theme        Theme
}

// DefaultOptions returns options for an 800x500 chart.
func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		FontFamily: fonts.FontFamily,
		Style:      placement.DefaultStyle(),
		Theme:      DefaultTheme(),
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
