// Package funnel defines the funnel chart data model and the proportion
// annotator.
//
// A chart input is an ordered sequence of [DataPoint] values, each either a
// [Step] (a named stage with a user count) or a [Blank] spacer row. Order is
// significant: it is the top-to-bottom order of the drawn bars.
//
// [Annotate] turns the input into [Row] values, attaching to every step its
// proportion of the first step's count and of the nearest preceding step's
// count. Blanks pass through untouched and never affect the running counts:
//
//	rows := funnel.Annotate([]funnel.DataPoint{
//	    funnel.Step{Name: "visited", Count: 100},
//	    funnel.Step{Name: "signed up", Count: 80},
//	    funnel.Blank{},
//	    funnel.Step{Name: "paid", Count: 60},
//	})
//	// rows[3].(funnel.AnnotatedStep).Absolute == 0.6
//	// *rows[3].(funnel.AnnotatedStep).Relative == 0.75
//
// Input validation (non-empty names, non-increasing counts) belongs to the
// [input] subpackage; this package accepts whatever it is given and lets
// degenerate ratios (a zero first count) propagate as NaN or Inf.
//
// [input]: github.com/matzehuels/funnel/pkg/funnel/input
package funnel
