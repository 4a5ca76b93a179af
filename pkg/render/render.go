package render

import (
	"math"

	"github.com/matzehuels/funnel/pkg/funnel"
	"github.com/matzehuels/funnel/pkg/render/chart"
	"github.com/matzehuels/funnel/pkg/render/chart/placement"
	"github.com/matzehuels/funnel/pkg/render/surface"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	opts chart.Options
}

func WithOptions(o chart.Options) Option   { return func(r *renderer) { r.opts = o } }
func WithTheme(t chart.Theme) Option       { return func(r *renderer) { r.opts.Theme = t } }
func WithStyle(s placement.Style) Option   { return func(r *renderer) { r.opts.Style = s } }
func WithGradientBase(base float64) Option { return func(r *renderer) { r.opts.GradientBase = base } }
func WithSize(width, height float64) Option {
	return func(r *renderer) { r.opts.Width, r.opts.Height = width, height }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{opts: chart.DefaultOptions()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r renderer) size() (int, int) {
	return int(math.Ceil(r.opts.Width)), int(math.Ceil(r.opts.Height))
}

// RenderSVG draws points as an SVG document.
func RenderSVG(points []funnel.DataPoint, opts ...Option) []byte {
	r := newRenderer(opts...)
	w, h := r.size()
	s := surface.NewVector(w, h, r.opts.Theme.Background)
	chart.Draw(s, points, r.opts)
	return s.Bytes()
}

// RenderPNG draws points as a PNG image.
func RenderPNG(points []funnel.DataPoint, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	w, h := r.size()
	s := surface.NewRaster(w, h, r.opts.Theme.Background)
	chart.Draw(s, points, r.opts)
	return s.PNG()
}

// RenderPDF draws points as SVG and converts the result to PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(points []funnel.DataPoint, opts ...Option) ([]byte, error) {
	return ToPDF(RenderSVG(points, opts...))
}
