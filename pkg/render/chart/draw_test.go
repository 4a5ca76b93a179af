package chart

import (
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/funnel/pkg/funnel"
	"github.com/matzehuels/funnel/pkg/render/chart/placement"
	"github.com/matzehuels/funnel/pkg/render/surface"
	"github.com/matzehuels/funnel/pkg/render/surface/surfacetest"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Width, opts.Height = 400, 375
	opts.Style = placement.Style{
		CenterFontSize: 20,
		LabelFontSize:  10,
		LineSpacing:    2,
		TextPadding:    8,
		LabelGap:       10,
	}
	return opts
}

func hexOf(t *testing.T, c color.Color) string {
	t.Helper()
	cc, ok := colorful.MakeColor(c)
	require.True(t, ok)
	return cc.Hex()
}

func TestDrawEmpty(t *testing.T) {
	var r surfacetest.Recorder
	Draw(&r, nil, testOptions())
	require.Empty(t, r.Ops)
	require.Zero(t, r.Measurements)
}

func TestDraw(t *testing.T) {
	points := []funnel.DataPoint{
		funnel.Step{Name: "a", Count: 100},
		funnel.Step{Name: "b", Count: 80},
		funnel.Blank{},
		funnel.Step{Name: "c", Count: 60},
	}
	opts := testOptions()

	var r surfacetest.Recorder
	Draw(&r, points, opts)

	rects := r.Rects()
	require.Len(t, rects, 3, "blanks draw nothing")
	require.Equal(t, "#08519c", hexOf(t, rects[0].Fill), "top bar gets the gradient end")
	require.InDelta(t, 300, rects[2].Y, 1e-9, "blank keeps its slot")

	require.Equal(t, []string{
		"100", "a", "100% of top",
		"80", "b", "80% of top", "80% of previous",
		"60", "c", "60% of top", "75% of previous",
	}, r.Texts())

	// Bar first, then center, inner-left, inner-right.
	ops := r.Ops[:4]
	require.Equal(t, "rect", ops[0].Kind)

	center := ops[1]
	require.Equal(t, surface.AlignCenter, center.Align)
	require.Equal(t, surface.BaselineTop, center.Baseline)
	require.InDelta(t, 200, center.X, 1e-9)
	require.InDelta(t, 27.5, center.Y, 1e-9)
	require.Equal(t, 20.0, center.Font.Size)
	require.True(t, center.Font.Bold)
	require.Equal(t, opts.Theme.LightText, center.Fill)

	name := ops[2]
	require.Equal(t, surface.AlignStart, name.Align)
	require.InDelta(t, 8, name.X, 1e-9)
	require.Equal(t, 10.0, name.Font.Size)

	stats := ops[3]
	require.Equal(t, surface.AlignEnd, stats.Align)
	require.InDelta(t, 392, stats.X, 1e-9)
}

func TestDrawStackedLines(t *testing.T) {
	points := []funnel.DataPoint{
		funnel.Step{Name: "a", Count: 100},
		funnel.Step{Name: "b", Count: 80},
	}
	opts := testOptions()
	opts.Height = 175 // spacing 100, bar height 75

	var r surfacetest.Recorder
	Draw(&r, points, opts)

	var ys []float64
	for _, op := range r.Ops {
		if op.Kind == "text" && (op.Text == "80% of top" || op.Text == "80% of previous") {
			ys = append(ys, op.Y)
		}
	}
	require.Len(t, ys, 2)
	require.InDelta(t, 126.5, ys[0], 1e-9)
	require.InDelta(t, 138.5, ys[1], 1e-9)
}

func TestDrawNarrowBarFallback(t *testing.T) {
	points := []funnel.DataPoint{
		funnel.Step{Name: "Top", Count: 1000},
		funnel.Step{Name: "Tiny", Count: 1},
	}
	opts := testOptions()

	var r surfacetest.Recorder
	Draw(&r, points, opts)

	rects := r.Rects()
	require.Len(t, rects, 2)
	tiny := rects[1]

	var got []surfacetest.Op
	for _, op := range r.Ops {
		if op.Kind == "text" && op.Y > tiny.Y {
			got = append(got, op)
		}
	}
	require.Len(t, got, 4)

	require.Equal(t, "Tiny", got[0].Text)
	require.Equal(t, surface.AlignEnd, got[0].Align)
	require.InDelta(t, tiny.X-8, got[0].X, 1e-9)

	for i, want := range []string{"1", "0.1% of top", "0.1% of previous"} {
		op := got[i+1]
		require.Equal(t, want, op.Text)
		require.Equal(t, surface.AlignStart, op.Align)
		require.InDelta(t, tiny.X+tiny.W+8, op.X, 1e-9)
		require.Equal(t, 10.0, op.Font.Size, "merged count uses the label font")
	}
	for _, op := range got {
		require.Equal(t, opts.Theme.DarkText, op.Fill)
	}
}

func TestDrawZeroTopCount(t *testing.T) {
	points := []funnel.DataPoint{
		funnel.Step{Name: "a", Count: 0},
		funnel.Step{Name: "b", Count: 0},
	}
	var r surfacetest.Recorder
	require.NotPanics(t, func() { Draw(&r, points, testOptions()) })

	rects := r.Rects()
	require.Len(t, rects, 2)
	for _, rect := range rects {
		require.Zero(t, rect.W)
	}
	require.Contains(t, r.Texts(), "NaN% of top")
}
