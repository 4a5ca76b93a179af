package layout

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient maps an absolute proportion to a bar fill between two colors.
//
// Proportions at or below Base get From; the top step (proportion 1) gets
// To. Base must be in [0, 1).
type Gradient struct {
	From, To colorful.Color
	Base     float64
}

// NewGradient returns a gradient between two colors.
func NewGradient(from, to color.Color, base float64) Gradient {
	f, _ := colorful.MakeColor(from)
	t, _ := colorful.MakeColor(to)
	return Gradient{From: f, To: t, Base: base}
}

// Position returns the interpolation position for absolute:
// max((absolute-base)/(1-base), 0), clamped to [0, 1]. NaN maps to 0.
func (g Gradient) Position(absolute float64) float64 {
	t := math.Max((absolute-g.Base)/(1-g.Base), 0)
	if math.IsNaN(t) {
		return 0
	}
	return math.Min(t, 1)
}

// At returns the fill for absolute.
func (g Gradient) At(absolute float64) color.Color {
	return g.From.BlendRgb(g.To, g.Position(absolute)).Clamped()
}
