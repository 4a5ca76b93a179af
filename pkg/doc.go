// Package pkg provides the libraries behind the funnel renderer.
//
// # Overview
//
// Funnel draws a conversion funnel: an ordered list of named steps, each with
// a user count, as centered horizontal bars sized by their share of the first
// step. Every bar is labeled with its count, its name and its percentage of
// the top and previous steps. Labels are placed by measuring text against the
// surface's own font metrics, so the same data lays out identically in SVG and
// PNG.
//
// # Architecture
//
//	JSON / spreadsheet input
//	         ↓
//	    [funnel/input] (parse + validate)
//	         ↓
//	    [funnel] (annotate proportions)
//	         ↓
//	    [render/chart] (bar geometry + label placement + draw)
//	         ↓
//	    [render/surface] (SVG vector or PNG raster)
//	         ↓
//	    SVG/PNG/PDF output
//
// # Quick Start
//
//	points, _ := input.Load("signup.json", "")
//	svg := render.RenderSVG(points, render.WithSize(800, 500))
//
// Or draw onto a surface directly:
//
//	s := surface.NewRaster(800, 500, color.White)
//	chart.Draw(s, points, chart.DefaultOptions())
//	png, _ := s.PNG()
//
// # Main Packages
//
// [funnel] - Data model (Step, Blank, AnnotatedStep), proportion annotation
// and label formatting.
//
// [funnel/input] - JSON and .xlsx readers; validation of names and of
// non-increasing counts.
//
// [render/chart] - The layout engine. Subpackages compute bar geometry
// (layout), wrap text (wrap), measure it (metrics) and choose label slots
// (placement).
//
// [render/surface] - The 2D drawing abstraction with gg and svgo backends.
//
// [render] - Byte-level renderers and SVG to PDF conversion.
//
// ## Infrastructure
//
// [pipeline] - Load → validate → render with caching, shared by the CLI and
// the HTTP service.
//
// [cache] - Artifact cache backends: file (CLI), Redis (server), null.
//
// [config] - TOML configuration for chart size, style and colors.
//
// [observability] - Hooks for load, render, cache and request events.
//
// [errors] - Coded errors shared across packages.
//
// # Testing
//
//	go test ./...
//	FUNNEL_TEST_REDIS_URL=redis://localhost:6379/15 go test ./pkg/cache/...
package pkg
