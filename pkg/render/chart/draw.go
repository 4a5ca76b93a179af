package chart

import (
	"github.com/matzehuels/funnel/pkg/funnel"
	"github.com/matzehuels/funnel/pkg/render/chart/layout"
	"github.com/matzehuels/funnel/pkg/render/chart/metrics"
	"github.com/matzehuels/funnel/pkg/render/chart/placement"
	"github.com/matzehuels/funnel/pkg/render/surface"
)

// Draw renders points onto s. Empty input draws nothing.
func Draw(s surface.Surface, points []funnel.DataPoint, opts Options) {
	if len(points) == 0 {
		return
	}
	if opts.FontFamily == "" {
		opts.FontFamily = DefaultOptions().FontFamily
	}

	rows := funnel.Annotate(points)
	gradient := layout.NewGradient(opts.Theme.GradientFrom, opts.Theme.GradientTo, opts.GradientBase)
	bars := layout.Compute(rows, layout.Options{Width: opts.Width, Height: opts.Height}, gradient)

	m := metrics.New(s, opts.FontFamily)
	for _, bar := range bars {
		drawBar(s, m, bar, opts)
	}
}

// Plan returns the label plan for bar without drawing it.
func Plan(m *metrics.Metrics, bar layout.Bar, opts Options) placement.Plan {
	labels := funnel.LabelsFor(bar.Step)
	return placement.Place(m, placement.Input{
		BarWidth:   bar.Width,
		BarHeight:  bar.Height,
		ChartWidth: opts.Width,
		Count:      labels.Count,
		Name:       labels.Name,
		Stats:      labels.Stats,
	}, opts.Style)
}

func drawBar(s surface.Surface, m *metrics.Metrics, bar layout.Bar, opts Options) {
	s.SetFillColor(bar.Fill)
	s.FillRect(bar.X, bar.Y, bar.Width, bar.Height)

	for _, sl := range Plan(m, bar, opts).Labels() {
		drawLabel(s, m, bar, sl, opts)
	}
}

// drawLabel draws the lines of one slot as a block vertically centered on
// the bar.
func drawLabel(s surface.Surface, m *metrics.Metrics, bar layout.Bar, sl placement.SlotLabel, opts Options) {
	st := opts.Style
	x, align := anchor(bar, sl.Slot, st.TextPadding)

	if sl.Slot.Inside() {
		s.SetFillColor(opts.Theme.LightText)
	} else {
		s.SetFillColor(opts.Theme.DarkText)
	}
	s.SetFont(m.Font(sl.Label.FontSize))
	s.SetTextAlign(align)
	s.SetTextBaseline(surface.BaselineTop)

	size := sl.Label.FontSize
	top := bar.CenterY() - metrics.BlockHeight(len(sl.Label.Lines), size, st.LineSpacing)/2
	for i, line := range sl.Label.Lines {
		s.FillText(line, x, top+float64(i)*(size+st.LineSpacing))
	}
}

// anchor returns the x position and alignment of text in slot.
func anchor(bar layout.Bar, slot placement.Slot, pad float64) (float64, surface.Align) {
	switch slot {
	case placement.SlotInnerLeft:
		return bar.X + pad, surface.AlignStart
	case placement.SlotInnerRight:
		return bar.Right() - pad, surface.AlignEnd
	case placement.SlotOuterLeft:
		return bar.X - pad, surface.AlignEnd
	case placement.SlotOuterRight:
		return bar.Right() + pad, surface.AlignStart
	default:
		return bar.CenterX(), surface.AlignCenter
	}
}
