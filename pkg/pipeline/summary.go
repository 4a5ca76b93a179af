package pipeline

import (
	"math"

	"github.com/matzehuels/funnel/pkg/funnel"
)

// RowSummary is the display form of one input row, as shown by the validate
// command and returned by the HTTP API. Proportions that are not finite are
// nil; their labels still carry "NaN%" or "Infinity%".
type RowSummary struct {
	Index    int      `json:"index"`
	Blank    bool     `json:"blank,omitempty"`
	Name     string   `json:"name,omitempty"`
	Count    int64    `json:"count,omitempty"`
	Absolute *float64 `json:"absolute_proportion,omitempty"`
	Relative *float64 `json:"relative_proportion,omitempty"`

	CountLabel    string `json:"count_label,omitempty"`
	AbsoluteLabel string `json:"absolute_label,omitempty"`
	RelativeLabel string `json:"relative_label,omitempty"`
}

// Summarize annotates points and formats every row.
func Summarize(points []funnel.DataPoint) []RowSummary {
	rows := funnel.Annotate(points)
	out := make([]RowSummary, len(rows))
	for i, r := range rows {
		s, ok := r.(funnel.AnnotatedStep)
		if !ok {
			out[i] = RowSummary{Index: i, Blank: true}
			continue
		}
		labels := funnel.LabelsFor(s)
		sum := RowSummary{
			Index:         i,
			Name:          s.Name,
			Count:         s.Count,
			Absolute:      finite(s.Absolute),
			CountLabel:    labels.Count,
			AbsoluteLabel: labels.Stats[0],
		}
		if s.Relative != nil {
			sum.Relative = finite(*s.Relative)
			sum.RelativeLabel = labels.Stats[1]
		}
		out[i] = sum
	}
	return out
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
