package surface

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
)

// Raster is a pixel Surface backed by a gg.Context.
type Raster struct {
	dc *gg.Context
	textState
}

// NewRaster creates a width×height pixel surface cleared to bg.
func NewRaster(width, height int, bg color.Color) *Raster {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Raster{dc: dc}
}

func (r *Raster) SetFillColor(c color.Color) { r.dc.SetColor(c) }

func (r *Raster) FillRect(x, y, w, h float64) {
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

func (r *Raster) SetFont(f Font) {
	r.setFont(f)
	r.dc.SetFontFace(r.face)
}

func (r *Raster) MeasureText(s string) float64 { return r.measure(s) }

func (r *Raster) SetTextAlign(a Align) { r.align = a }

func (r *Raster) SetTextBaseline(b Baseline) { r.baseline = b }

func (r *Raster) FillText(s string, x, y float64) {
	x, y = r.origin(s, x, y)
	r.dc.DrawString(s, x, y)
}

// Image returns the rendered image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the rendered image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// PNG returns the rendered image as PNG bytes.
func (r *Raster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ Surface = (*Raster)(nil)
