package funnel

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

// Labels holds the display strings for one annotated step.
type Labels struct {
	Name  string   // step name, drawn on the left
	Count string   // user count, drawn centered
	Stats []string // percentage of top, then percentage of previous if any
}

// LabelsFor formats the display strings for s.
func LabelsFor(s AnnotatedStep) Labels {
	l := Labels{
		Name:  s.Name,
		Count: FormatCount(s.Count),
		Stats: []string{FormatPercent(s.Absolute) + " of top"},
	}
	if s.Relative != nil {
		l.Stats = append(l.Stats, FormatPercent(*s.Relative)+" of previous")
	}
	return l
}

// FormatCount renders a count with thousands separators ("12,345").
func FormatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}

// FormatPercent renders a proportion as a percentage with at most one
// decimal ("80%", "66.7%"). Non-finite values render as "Infinity%",
// "-Infinity%" and "NaN%".
func FormatPercent(p float64) string {
	switch {
	case math.IsNaN(p):
		return "NaN%"
	case math.IsInf(p, 1):
		return "Infinity%"
	case math.IsInf(p, -1):
		return "-Infinity%"
	}
	v := math.Round(p*1000) / 10
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
