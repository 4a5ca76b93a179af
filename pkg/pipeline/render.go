package pipeline

import (
	"fmt"

	"github.com/matzehuels/funnel/pkg/funnel"
	"github.com/matzehuels/funnel/pkg/render"
)

// RenderFormats renders points in each of opts.Formats without caching.
// A PDF reuses the SVG when both are requested.
func RenderFormats(points []funnel.DataPoint, opts Options) (map[string][]byte, error) {
	ropt := render.WithOptions(opts.ChartOptions())
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svg []byte
	svgBytes := func() []byte {
		if svg == nil {
			svg = render.RenderSVG(points, ropt)
		}
		return svg
	}

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data = svgBytes()
		case FormatPNG:
			data, err = render.RenderPNG(points, ropt)
		case FormatPDF:
			data, err = render.ToPDF(svgBytes())
		default:
			return nil, ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
