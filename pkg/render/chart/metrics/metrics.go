// Package metrics measures label text against a drawing surface.
//
// Every call selects the same bold font declaration on the surface before
// measuring, so widths computed during layout match what is drawn later.
package metrics

import (
	"github.com/matzehuels/funnel/pkg/render/surface"
)

// Metrics measures text in one bold font family on a surface.
type Metrics struct {
	m      surface.Measurer
	family string
}

// New returns a Metrics measuring bold family text on m.
func New(m surface.Measurer, family string) *Metrics {
	return &Metrics{m: m, family: family}
}

// Font returns the declaration used for text at size.
func (mt *Metrics) Font(size float64) surface.Font {
	return surface.Font{Family: mt.family, Bold: true, Size: size}
}

// Width returns the width of a single line of text at size.
func (mt *Metrics) Width(text string, size float64) float64 {
	mt.m.SetFont(mt.Font(size))
	return mt.m.MeasureText(text)
}

// LinesWidth returns the widest of lines at size, or 0 for no lines.
func (mt *Metrics) LinesWidth(lines []string, size float64) float64 {
	var w float64
	for _, l := range lines {
		w = max(w, mt.Width(l, size))
	}
	return w
}

// BlockHeight returns the height of n lines at size separated by spacing:
// n*size + (n-1)*spacing. It is 0 for n <= 0.
func BlockHeight(n int, size, spacing float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*size + float64(n-1)*spacing
}
