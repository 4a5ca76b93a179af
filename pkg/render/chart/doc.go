// Package chart draws a funnel chart onto a [surface.Surface].
//
// # Overview
//
// [Draw] is the only entry point that touches the surface. It runs the
// stages in order:
//
//  1. [funnel.Annotate] attaches absolute and relative proportions.
//  2. [layout.Compute] assigns each step a centered bar and a fill color.
//  3. [placement.Place] decides, per bar, which slot each label goes in and
//     how it wraps, by measuring text on the surface itself.
//  4. Each bar is filled, then its labels are drawn in slot order: center,
//     inner-left, inner-right, outer-left, outer-right.
//
// Text over a bar is drawn in [Theme.LightText]; text beside it in
// [Theme.DarkText].
//
// # Usage
//
//	s := surface.NewVector(800, 500, chart.DefaultTheme().Background)
//	chart.Draw(s, points, chart.DefaultOptions())
//	svg := s.Bytes()
//
// The surface should be at least Options.Width by Options.Height.
package chart
