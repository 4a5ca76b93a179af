package funnel

// DataPoint is one row of chart input: a [Step] or a [Blank].
// The interface is sealed; no other types implement it.
type DataPoint interface {
	isDataPoint()
}

// Row is one row of annotated output: an [AnnotatedStep] or a [Blank].
type Row interface {
	isRow()
}

// Step is a funnel stage with a display name and a user count.
type Step struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Blank is a spacer row. It takes a vertical slot but draws nothing.
type Blank struct{}

// AnnotatedStep is a Step with its proportions attached.
type AnnotatedStep struct {
	Step

	// Absolute is Count divided by the first step's count (1 for the first step).
	Absolute float64 `json:"absolute_proportion"`

	// Relative is Count divided by the nearest preceding step's count,
	// skipping blanks. Nil for the first step.
	Relative *float64 `json:"relative_proportion"`
}

func (Step) isDataPoint()  {}
func (Blank) isDataPoint() {}

func (Blank) isRow()         {}
func (AnnotatedStep) isRow() {}

// IsBlank reports whether p is a spacer row.
func IsBlank(p DataPoint) bool {
	_, ok := p.(Blank)
	return ok
}

// Steps returns the non-blank points of pts in order.
func Steps(pts []DataPoint) []Step {
	steps := make([]Step, 0, len(pts))
	for _, p := range pts {
		if s, ok := p.(Step); ok {
			steps = append(steps, s)
		}
	}
	return steps
}
