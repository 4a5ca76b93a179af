// Package placement decides where the labels of one funnel bar go.
//
// Each bar carries three label groups: the count (preferably centered in the
// bar), the step name (left of the count) and the percentage stats (right of
// the count). A group on the left or right is placed either inside the bar,
// between the bar edge and the count, or outside it, in the empty strip
// between the bar and the chart edge. The decision is made by wrapping the
// text against both spaces with real font metrics and comparing the results.
//
// Place is a pure function of its input and the measurer.
package placement

import (
	"strings"

	"github.com/matzehuels/funnel/pkg/render/chart/metrics"
	"github.com/matzehuels/funnel/pkg/render/chart/wrap"
)

// Style holds the font sizes and spacing the engine works with, in pixels.
type Style struct {
	CenterFontSize float64 `toml:"center_font_size" json:"center_font_size"`
	LabelFontSize  float64 `toml:"label_font_size" json:"label_font_size"`

	// LineSpacing is the extra space between wrapped lines.
	LineSpacing float64 `toml:"line_spacing" json:"line_spacing"`
	// TextPadding separates text from a bar edge or the chart edge.
	TextPadding float64 `toml:"text_padding" json:"text_padding"`
	// LabelGap separates the count from a side label inside the bar.
	LabelGap float64 `toml:"label_gap" json:"label_gap"`
}

// DefaultStyle returns the sizes used when none are configured.
func DefaultStyle() Style {
	return Style{
		CenterFontSize: 18,
		LabelFontSize:  13,
		LineSpacing:    3,
		TextPadding:    8,
		LabelGap:       12,
	}
}

// Input describes one bar and its label texts.
type Input struct {
	BarWidth   float64
	BarHeight  float64
	ChartWidth float64

	Count string   // formatted user count
	Name  string   // step name
	Stats []string // percentage texts, absolute first
}

// Label is the text assigned to one slot. A Label with no lines is unused.
type Label struct {
	Lines    []string
	FontSize float64
}

// Empty reports whether the slot is unused.
func (l Label) Empty() bool { return len(l.Lines) == 0 }

// Slot names a label position relative to the bar.
type Slot int

const (
	SlotCenter Slot = iota
	SlotInnerLeft
	SlotInnerRight
	SlotOuterLeft
	SlotOuterRight
)

// Inside reports whether text in the slot is drawn over the bar fill.
func (s Slot) Inside() bool {
	return s == SlotCenter || s == SlotInnerLeft || s == SlotInnerRight
}

func (s Slot) String() string {
	switch s {
	case SlotCenter:
		return "center"
	case SlotInnerLeft:
		return "inner-left"
	case SlotInnerRight:
		return "inner-right"
	case SlotOuterLeft:
		return "outer-left"
	case SlotOuterRight:
		return "outer-right"
	}
	return "unknown"
}

// Plan is the label layout of one bar.
type Plan struct {
	OuterLeft  Label
	InnerLeft  Label
	Center     Label
	InnerRight Label
	OuterRight Label
}

// SlotLabel pairs a slot with its label.
type SlotLabel struct {
	Slot  Slot
	Label Label
}

// Labels returns the populated slots in draw order.
func (p Plan) Labels() []SlotLabel {
	all := []SlotLabel{
		{SlotCenter, p.Center},
		{SlotInnerLeft, p.InnerLeft},
		{SlotInnerRight, p.InnerRight},
		{SlotOuterLeft, p.OuterLeft},
		{SlotOuterRight, p.OuterRight},
	}
	out := all[:0]
	for _, sl := range all {
		if !sl.Label.Empty() {
			out = append(out, sl)
		}
	}
	return out
}

// Spaces returns the width available to a side label inside the bar (next to
// a count of countWidth) and outside it (in the strip beside the bar).
// Either may be negative when there is no room at all.
func Spaces(in Input, countWidth float64, st Style) (inside, outside float64) {
	inside = (in.BarWidth-countWidth)/2 - st.LabelGap - st.TextPadding
	outside = (in.ChartWidth-in.BarWidth)/2 - 2*st.TextPadding
	return inside, outside
}

// Place computes the label plan for one bar.
//
// When the count plus padding does not fit in the bar, nothing is drawn
// inside: the name goes outer-left and the count joins the stats outer-right.
// Otherwise the count is centered and the name and stats each go inside
// unless the outside wrapping is better (see preferInside).
func Place(m *metrics.Metrics, in Input, st Style) Plan {
	countWidth := m.Width(in.Count, st.CenterFontSize)
	inside, outside := Spaces(in, countWidth, st)

	if countWidth+2*st.TextPadding > in.BarWidth {
		values := append([]string{in.Count}, in.Stats...)
		return Plan{
			OuterLeft:  nameLabel(m, in.Name, outside, st),
			OuterRight: statsLabel(m, values, wrap.Block(m, values, st.LabelFontSize, outside), outside, in.BarHeight, st),
		}
	}

	plan := Plan{
		Center: Label{Lines: []string{in.Count}, FontSize: st.CenterFontSize},
	}

	if in.Name != "" {
		nameIn := wrap.Wrap(m, in.Name, st.LabelFontSize, inside)
		nameOut := wrap.Wrap(m, in.Name, st.LabelFontSize, outside)
		if preferInside(nameIn, nameOut) {
			plan.InnerLeft = Label{Lines: nameIn.Lines, FontSize: st.LabelFontSize}
		} else {
			plan.OuterLeft = Label{Lines: nameOut.Lines, FontSize: st.LabelFontSize}
		}
	}

	if len(in.Stats) > 0 {
		statsIn := wrap.Block(m, in.Stats, st.LabelFontSize, inside)
		statsOut := wrap.Block(m, in.Stats, st.LabelFontSize, outside)
		if preferInside(statsIn, statsOut) {
			plan.InnerRight = statsLabel(m, in.Stats, statsIn, inside, in.BarHeight, st)
		} else {
			plan.OuterRight = statsLabel(m, in.Stats, statsOut, outside, in.BarHeight, st)
		}
	}
	return plan
}

// preferInside keeps the inside wrapping unless it hard-overflows while the
// outside one does not, or it needs more than two lines and the outside one
// needs fewer.
func preferInside(in, out wrap.Result) bool {
	if in.HasOverflow && !out.HasOverflow {
		return false
	}
	if len(in.Lines) > 2 && len(out.Lines) < len(in.Lines) {
		return false
	}
	return true
}

func nameLabel(m *metrics.Metrics, name string, space float64, st Style) Label {
	if name == "" {
		return Label{}
	}
	return Label{Lines: wrap.Wrap(m, name, st.LabelFontSize, space).Lines, FontSize: st.LabelFontSize}
}

// statsLabel switches a stats block to a single " / "-joined line when the
// wrapped block is taller than the bar and the joined line fits space.
func statsLabel(m *metrics.Metrics, values []string, wrapped wrap.Result, space, barHeight float64, st Style) Label {
	l := Label{Lines: wrapped.Lines, FontSize: st.LabelFontSize}
	if len(values) < 2 {
		return l
	}
	if metrics.BlockHeight(len(wrapped.Lines), st.LabelFontSize, st.LineSpacing) <= barHeight+st.TextPadding {
		return l
	}
	joined := strings.Join(values, " / ")
	if m.Width(joined, st.LabelFontSize) <= space {
		l.Lines = []string{joined}
	}
	return l
}
