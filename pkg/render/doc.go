// Package render turns funnel data into chart artifacts.
//
// # Overview
//
// The drawing itself lives in the [chart] subpackage and targets the
// abstract surface defined in [surface]. This package picks the surface for
// each output format and handles conversion:
//
//   - SVG: drawn on a [surface.Vector]
//   - PNG: drawn on a [surface.Raster]
//   - PDF: the SVG converted with the external rsvg-convert tool (librsvg)
//
//	svg := render.RenderSVG(points, render.WithSize(800, 500))
//	png, err := render.RenderPNG(points)
//	pdf, err := render.RenderPDF(points)
//
// [chart]: github.com/matzehuels/funnel/pkg/render/chart
// [surface]: github.com/matzehuels/funnel/pkg/render/surface
package render
