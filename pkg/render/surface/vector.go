package surface

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/funnel/pkg/fonts"
)

// Vector is a Surface that records drawing operations as SVG.
//
// Text is measured with the same embedded face the SVG declares and embeds
// via @font-face, so viewers lay out labels exactly as measured. SVG
// coordinates are integers; rectangles are snapped edge by edge so adjacent
// shapes do not drift.
type Vector struct {
	buf    bytes.Buffer
	canvas *svg.SVG
	fill   string
	done   bool
	textState
}

// NewVector starts a width×height SVG document with a bg background.
func NewVector(width, height int, bg color.Color) *Vector {
	v := &Vector{fill: "#000000"}
	v.canvas = svg.New(&v.buf)
	v.canvas.Start(width, height)
	v.canvas.Def()
	v.canvas.Style("text/css", fmt.Sprintf(
		"@font-face { font-family: '%s'; font-weight: bold; src: url(data:font/ttf;base64,%s) format('truetype'); }",
		fonts.FontFamily, fonts.BoldTTFBase64()))
	v.canvas.DefEnd()
	v.canvas.Rect(0, 0, width, height, "fill:"+hex(bg))
	return v
}

func (v *Vector) SetFillColor(c color.Color) { v.fill = hex(c) }

func (v *Vector) FillRect(x, y, w, h float64) {
	x0, y0 := round(x), round(y)
	x1, y1 := round(x+w), round(y+h)
	v.canvas.Rect(x0, y0, x1-x0, y1-y0, "fill:"+v.fill)
}

func (v *Vector) SetFont(f Font) { v.setFont(f) }

func (v *Vector) MeasureText(s string) float64 { return v.measure(s) }

func (v *Vector) SetTextAlign(a Align) { v.align = a }

func (v *Vector) SetTextBaseline(b Baseline) { v.baseline = b }

// FillText emits a start-anchored text element at the computed baseline
// origin, so the output does not depend on viewer support for
// text-anchor or dominant-baseline.
func (v *Vector) FillText(s string, x, y float64) {
	x, y = v.origin(s, x, y)
	style := fmt.Sprintf("fill:%s;font-family:%s;font-weight:bold;font-size:%gpx",
		v.fill, fonts.FallbackFontFamily, v.font.Size)
	v.canvas.Text(round(x), round(y), s, style)
}

// Bytes closes the document on first call and returns the SVG.
func (v *Vector) Bytes() []byte {
	if !v.done {
		v.canvas.End()
		v.done = true
	}
	return v.buf.Bytes()
}

func round(f float64) int { return int(math.Round(f)) }

func hex(c color.Color) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}

var _ Surface = (*Vector)(nil)
