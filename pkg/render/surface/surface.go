// Package surface defines the drawing capability the funnel renderer needs
// and provides two implementations of it.
//
// [Surface] is deliberately narrow: fill color, rectangle fill, font
// selection, text measurement, text alignment and baseline, and text drawing.
// The chart code depends on nothing else, so the same draw pass can target
// a pixel canvas ([Raster], PNG output) or a vector recorder ([Vector], SVG
// output) and produce the same layout.
//
// Surfaces are stateful (current color, font, alignment) and not safe for
// concurrent use. Render concurrently onto separate surfaces.
package surface

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font"

	"github.com/matzehuels/funnel/pkg/fonts"
)

// Align is the horizontal anchor of drawn text relative to its x position.
type Align int

const (
	AlignStart  Align = iota // text begins at x
	AlignCenter              // text is centered on x
	AlignEnd                 // text ends at x
)

// Baseline is the vertical anchor of drawn text relative to its y position.
type Baseline int

const (
	BaselineAlphabetic Baseline = iota // y is the alphabetic baseline
	BaselineTop                        // y is the top of the em box
	BaselineMiddle                     // y is the middle of the em box
)

// Font is a font declaration. Only the embedded bold family is available;
// see package fonts.
type Font struct {
	Family string
	Bold   bool
	Size   float64
}

// CSS returns the declaration in CSS shorthand ("bold 14px Go").
func (f Font) CSS() string {
	weight := "normal"
	if f.Bold {
		weight = "bold"
	}
	return fmt.Sprintf("%s %gpx %s", weight, f.Size, f.Family)
}

// Measurer is the measuring half of a Surface.
type Measurer interface {
	// SetFont selects the font for subsequent measuring and drawing.
	SetFont(f Font)
	// MeasureText returns the advance width of s in the current font.
	// Calling it before SetFont is a programming error and panics.
	MeasureText(s string) float64
}

// Surface is a 2D drawing target.
type Surface interface {
	Measurer

	SetFillColor(c color.Color)
	FillRect(x, y, w, h float64)
	SetTextAlign(a Align)
	SetTextBaseline(b Baseline)
	// FillText draws s at (x, y) in the current fill color, font, alignment
	// and baseline.
	FillText(s string, x, y float64)
}

// checkFont panics on declarations no surface can honor.
func checkFont(f Font) {
	if f.Family != fonts.FontFamily || !f.Bold {
		panic(fmt.Sprintf("surface: unsupported font %q (only bold %q is embedded)", f.CSS(), fonts.FontFamily))
	}
}

// textState is the font, alignment and baseline shared by both surfaces.
// Faces are owned by the surface, one per size, so surfaces used on
// different goroutines share no glyph buffers.
type textState struct {
	font     *Font
	face     font.Face
	faces    map[float64]font.Face
	align    Align
	baseline Baseline
}

func (t *textState) setFont(f Font) {
	checkFont(f)
	face, ok := t.faces[f.Size]
	if !ok {
		if t.faces == nil {
			t.faces = make(map[float64]font.Face)
		}
		face = fonts.MustNewFace(f.Size)
		t.faces[f.Size] = face
	}
	t.face = face
	t.font = &f
}

func (t *textState) mustFace() font.Face {
	if t.face == nil {
		panic("surface: MeasureText or FillText called before SetFont")
	}
	return t.face
}

func (t *textState) measure(s string) float64 {
	return float64(font.MeasureString(t.mustFace(), s)) / 64
}

// origin converts an anchored position into the left end of the
// alphabetic baseline.
func (t *textState) origin(s string, x, y float64) (float64, float64) {
	switch t.align {
	case AlignCenter:
		x -= t.measure(s) / 2
	case AlignEnd:
		x -= t.measure(s)
	}

	m := t.mustFace().Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	switch t.baseline {
	case BaselineTop:
		y += ascent
	case BaselineMiddle:
		y += (ascent - descent) / 2
	}
	return x, y
}
