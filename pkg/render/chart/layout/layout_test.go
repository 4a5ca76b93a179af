package layout

import (
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/matzehuels/funnel/pkg/funnel"
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
	grey  = Gradient{From: white, To: black, Base: 0}
)

func step(name string, count int64, abs float64) funnel.AnnotatedStep {
	return funnel.AnnotatedStep{Step: funnel.Step{Name: name, Count: count}, Absolute: abs}
}

func TestSpacing(t *testing.T) {
	tests := []struct {
		n           int
		height      float64
		wantSpacing float64
		wantBar     float64
	}{
		{n: 0, height: 100, wantSpacing: 0, wantBar: 0},
		{n: 1, height: 75, wantSpacing: 100, wantBar: 75},
		{n: 4, height: 375, wantSpacing: 100, wantBar: 75},
	}
	for _, tt := range tests {
		s, b := Spacing(tt.n, tt.height)
		if s != tt.wantSpacing || b != tt.wantBar {
			t.Errorf("Spacing(%d, %v) = %v, %v, want %v, %v", tt.n, tt.height, s, b, tt.wantSpacing, tt.wantBar)
		}
	}
}

func TestBarWidth(t *testing.T) {
	tests := []struct {
		name     string
		absolute float64
		want     float64
	}{
		{"full", 1, 400},
		{"half", 0.5, 200},
		{"zero", 0, 0},
		{"negative", -0.5, 0},
		{"above one", 1.5, 400},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BarWidth(400, tt.absolute); got != tt.want {
				t.Errorf("BarWidth(400, %v) = %v, want %v", tt.absolute, got, tt.want)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	rows := []funnel.Row{
		step("a", 100, 1),
		step("b", 80, 0.8),
		funnel.Blank{},
		step("c", 60, 0.6),
	}
	bars := Compute(rows, Options{Width: 400, Height: 375}, grey)
	require.Len(t, bars, 3)

	wantIndex := []int{0, 1, 3}
	wantY := []float64{0, 100, 300}
	wantWidth := []float64{400, 320, 240}
	for i, b := range bars {
		require.Equal(t, wantIndex[i], b.Index, "bar %d index", i)
		require.InDelta(t, wantY[i], b.Y, 1e-9, "bar %d y", i)
		require.InDelta(t, wantWidth[i], b.Width, 1e-9, "bar %d width", i)
		require.InDelta(t, 75, b.Height, 1e-9, "bar %d height", i)
		require.InDelta(t, 200, b.CenterX(), 1e-9, "bar %d centered", i)
	}
	require.Equal(t, "c", bars[2].Step.Name)
}

func TestComputeEmpty(t *testing.T) {
	require.Nil(t, Compute(nil, Options{Width: 400, Height: 300}, grey))
	require.Empty(t, Compute([]funnel.Row{funnel.Blank{}}, Options{Width: 400, Height: 300}, grey))
}

func TestComputeFitsHeight(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 200).Draw(t, "n")
		height := rapid.Float64Range(1, 5000).Draw(t, "height")

		rows := make([]funnel.Row, n)
		for i := range rows {
			rows[i] = step("s", 1, 1)
		}
		bars := Compute(rows, Options{Width: 100, Height: height}, grey)
		last := bars[len(bars)-1]
		if last.Bottom() > height {
			t.Fatalf("last bar ends at %v, beyond height %v", last.Bottom(), height)
		}
		if math.Abs(last.Bottom()-height) > 1e-9*height {
			t.Fatalf("last bar ends at %v, want %v", last.Bottom(), height)
		}
		ext := Extent(n, height)
		if ext > height || math.Abs(ext-height) > 1e-9*height {
			t.Fatalf("Extent(%d, %v) = %v", n, height, ext)
		}
	})
}

func TestGradientPosition(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		absolute float64
		want     float64
	}{
		{"top", 0, 1, 1},
		{"bottom", 0, 0, 0},
		{"half", 0, 0.5, 0.5},
		{"below base", 0.5, 0.25, 0},
		{"at base", 0.5, 0.5, 0},
		{"above base", 0.5, 0.75, 0.5},
		{"above one", 0, 2, 1},
		{"nan", 0, math.NaN(), 0},
		{"inf", 0, math.Inf(1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Gradient{From: white, To: black, Base: tt.base}
			if got := g.Position(tt.absolute); got != tt.want {
				t.Errorf("Position(%v) = %v, want %v", tt.absolute, got, tt.want)
			}
		})
	}
}

func TestGradientAt(t *testing.T) {
	g := NewGradient(color.White, color.Black, 0)

	r, gg, b, _ := g.At(1).RGBA()
	require.Zero(t, r+gg+b, "top step gets the end color")

	r, _, _, _ = g.At(0).RGBA()
	require.Equal(t, uint32(0xffff), r, "empty step gets the start color")

	mid, _ := colorful.MakeColor(g.At(0.5))
	require.InDelta(t, 0.5, mid.R, 0.01)
}

func TestFitHeight(t *testing.T) {
	require.Equal(t, 10.0, fitHeight(0, 10, 20))
	require.Equal(t, 5.0, fitHeight(15, 10, 20))
	require.Equal(t, 0.0, fitHeight(25, 10, 20))

	// 0.1 + 0.2 rounds above 0.3.
	h := fitHeight(0.1, 0.2, 0.3)
	require.LessOrEqual(t, 0.1+h, 0.3)
	require.InDelta(t, 0.2, h, 1e-15)
}
