// Package layout computes funnel bar geometry.
//
// Every row, blank or not, gets one vertical slot. A slot is `spacing` tall
// and its bar fills the top three quarters, leaving a gap below. The spacing
// is chosen so the last bar ends exactly at the bottom of the chart:
//
//	spacing   = height / (n - 0.25)
//	barHeight = 0.75 * spacing
//
// Bar widths are the chart width scaled by the step's absolute proportion,
// centered horizontally.
package layout

import (
	"image/color"
	"math"

	"github.com/matzehuels/funnel/pkg/funnel"
)

// Bar is the rectangle drawn for one annotated step.
type Bar struct {
	Index         int // row index, counting blanks
	X, Y          float64
	Width, Height float64
	Step          funnel.AnnotatedStep
	Fill          color.Color
}

// CenterX returns the horizontal center of the bar.
func (b Bar) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical center of the bar.
func (b Bar) CenterY() float64 { return b.Y + b.Height/2 }

// Right returns the x coordinate of the right edge.
func (b Bar) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Bar) Bottom() float64 { return b.Y + b.Height }

// Options sizes the chart area.
type Options struct {
	Width  float64
	Height float64
}

// Spacing returns the slot height and bar height for n rows in a chart of
// the given height. Both are 0 when n < 1.
func Spacing(n int, height float64) (spacing, barHeight float64) {
	if n < 1 {
		return 0, 0
	}
	spacing = height / (float64(n) - 0.25)
	return spacing, 0.75 * spacing
}

// BarWidth returns the chart width scaled by absolute, clamped to
// [0, chartWidth]. NaN gives 0 and +Inf the full width.
func BarWidth(chartWidth, absolute float64) float64 {
	if math.IsNaN(absolute) || absolute <= 0 {
		return 0
	}
	if absolute >= 1 {
		return chartWidth
	}
	return chartWidth * absolute
}

// Compute lays out one bar per annotated step in rows. Blanks keep their
// slot but produce no bar.
func Compute(rows []funnel.Row, opts Options, g Gradient) []Bar {
	spacing, barHeight := Spacing(len(rows), opts.Height)
	if spacing == 0 {
		return nil
	}

	bars := make([]Bar, 0, len(rows))
	for i, r := range rows {
		step, ok := r.(funnel.AnnotatedStep)
		if !ok {
			continue
		}
		w := BarWidth(opts.Width, step.Absolute)
		y := float64(i) * spacing
		bars = append(bars, Bar{
			Index:  i,
			X:      (opts.Width - w) / 2,
			Y:      y,
			Width:  w,
			Height: fitHeight(y, barHeight, opts.Height),
			Step:   step,
			Fill:   g.At(step.Absolute),
		})
	}
	return bars
}

// Extent returns the bottom edge of the lowest slot for n rows. It equals
// height up to rounding and never exceeds it.
func Extent(n int, height float64) float64 {
	if n < 1 {
		return 0
	}
	spacing, barHeight := Spacing(n, height)
	y := float64(n-1) * spacing
	return y + fitHeight(y, barHeight, height)
}

// fitHeight shrinks h so that a bar starting at y ends at or above limit.
// Only rounding in the spacing arithmetic can push the last bar past it.
func fitHeight(y, h, limit float64) float64 {
	if y+h <= limit {
		return h
	}
	h = math.Max(limit-y, 0)
	for h > 0 && y+h > limit {
		h = math.Nextafter(h, 0)
	}
	return h
}
