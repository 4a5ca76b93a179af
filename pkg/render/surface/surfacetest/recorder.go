// Package surfacetest provides a deterministic Surface for tests.
package surfacetest

import (
	"image/color"
	"unicode/utf8"

	"github.com/matzehuels/funnel/pkg/render/surface"
)

// CharWidth is the advance of every rune, as a fraction of the font size.
const CharWidth = 0.5

// Width returns the width Recorder measures for s at size.
func Width(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * CharWidth
}

// Op is one recorded drawing operation.
type Op struct {
	Kind     string // "rect" or "text"
	X, Y     float64
	W, H     float64 // rect only
	Text     string  // text only
	Fill     color.Color
	Font     surface.Font
	Align    surface.Align
	Baseline surface.Baseline
}

// Recorder is a Surface with fixed-advance metrics that records every fill
// and text draw.
type Recorder struct {
	Ops          []Op
	Measurements int

	fill     color.Color
	font     *surface.Font
	align    surface.Align
	baseline surface.Baseline
}

func (r *Recorder) SetFillColor(c color.Color) { r.fill = c }

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: "rect", X: x, Y: y, W: w, H: h, Fill: r.fill})
}

func (r *Recorder) SetFont(f surface.Font) { r.font = &f }

func (r *Recorder) MeasureText(s string) float64 {
	if r.font == nil {
		panic("surfacetest: MeasureText called before SetFont")
	}
	r.Measurements++
	return Width(s, r.font.Size)
}

func (r *Recorder) SetTextAlign(a surface.Align) { r.align = a }

func (r *Recorder) SetTextBaseline(b surface.Baseline) { r.baseline = b }

func (r *Recorder) FillText(s string, x, y float64) {
	if r.font == nil {
		panic("surfacetest: FillText called before SetFont")
	}
	r.Ops = append(r.Ops, Op{
		Kind: "text", X: x, Y: y, Text: s, Fill: r.fill,
		Font: *r.font, Align: r.align, Baseline: r.baseline,
	})
}

// Texts returns the recorded text strings in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Rects returns the recorded rectangle fills in draw order.
func (r *Recorder) Rects() []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == "rect" {
			out = append(out, op)
		}
	}
	return out
}

var _ surface.Surface = (*Recorder)(nil)
