package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/funnel/pkg/cache"
	"github.com/matzehuels/funnel/pkg/config"
	"github.com/matzehuels/funnel/pkg/errors"
	"github.com/matzehuels/funnel/pkg/funnel"
	"github.com/matzehuels/funnel/pkg/render"
	"github.com/matzehuels/funnel/pkg/render/chart"
)

var points = []funnel.DataPoint{
	funnel.Step{Name: "Visited", Count: 1000},
	funnel.Step{Name: "Signed up", Count: 400},
	funnel.Blank{},
	funnel.Step{Name: "Paid", Count: 50},
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"svg", []string{"svg"}},
		{"svg, PNG ,pdf", []string{"svg", "png", "pdf"}},
		{"svg,,svg", []string{"svg"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParseFormats(tt.in)
		require.Equal(t, tt.want, got, "ParseFormats(%q)", tt.in)
	}
}

func TestOptionsDefaultsAndValidate(t *testing.T) {
	var o Options
	o.SetDefaults()
	require.NoError(t, o.Validate())
	require.Equal(t, float64(chart.DefaultWidth), o.Width)

	o.Width, o.Height = chart.MaxDimension, chart.MaxDimension
	require.NoError(t, o.Validate())
	o.Width, o.Height = chart.DefaultWidth, chart.DefaultHeight
	require.Equal(t, []string{FormatSVG}, o.Formats)
	require.NotNil(t, o.Theme.GradientFrom)

	tests := []struct {
		name   string
		mutate func(*Options)
		code   errors.Code
	}{
		{"negative width", func(o *Options) { o.Width = -1 }, errors.ErrCodeInvalidInput},
		{"huge width", func(o *Options) { o.Width = 1e300 }, errors.ErrCodeInvalidInput},
		{"height over limit", func(o *Options) { o.Height = chart.MaxDimension + 1 }, errors.ErrCodeInvalidInput},
		{"base of one", func(o *Options) { o.GradientBase = 1 }, errors.ErrCodeInvalidInput},
		{"negative base", func(o *Options) { o.GradientBase = -0.5 }, errors.ErrCodeInvalidInput},
		{"bad format", func(o *Options) { o.Formats = []string{"gif"} }, errors.ErrCodeInvalidFormat},
		{"zero font", func(o *Options) { o.Style.LabelFontSize = 0 }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Options
			o.SetDefaults()
			tt.mutate(&o)
			if err := o.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Chart.Width = 640
	cfg.Chart.GradientBase = 0.3

	o, err := FromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, 640.0, o.Width)
	require.Equal(t, 0.3, o.GradientBase)
	require.Equal(t, cfg.Style.Style, o.Style)

	cfg.Style.DarkText = "nope"
	_, err = FromConfig(cfg)
	require.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestArtifactKeyOptsTracksTheme(t *testing.T) {
	var a, b Options
	a.SetDefaults()
	b.SetDefaults()
	require.Equal(t, a.ArtifactKeyOpts("svg"), b.ArtifactKeyOpts("svg"))

	b.Theme.Background = chart.DefaultTheme().DarkText
	require.NotEqual(t, a.ArtifactKeyOpts("svg").StyleHash, b.ArtifactKeyOpts("svg").StyleHash)
}

func TestRenderFormats(t *testing.T) {
	o := Options{Formats: []string{FormatSVG, FormatPNG}}
	o.SetDefaults()

	arts, err := RenderFormats(points, o)
	require.NoError(t, err)
	require.Contains(t, string(arts[FormatSVG]), "</svg>")
	require.True(t, bytes.HasPrefix(arts[FormatPNG], []byte("\x89PNG")))
}

func TestRunnerRenderCaches(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())

	opts := Options{Formats: []string{FormatSVG, FormatPNG}}
	first, err := r.Render(ctx, points, opts)
	require.NoError(t, err)
	require.Empty(t, first.CacheInfo.Hits)
	require.Equal(t, 3, first.Stats.Steps)
	require.Equal(t, 1, first.Stats.Blanks)
	require.Equal(t, 2, c.sets)

	second, err := r.Render(ctx, points, opts)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{FormatSVG, FormatPNG}, second.CacheInfo.Hits)
	require.Equal(t, first.Artifacts[FormatSVG], second.Artifacts[FormatSVG])
	require.Equal(t, first.InputHash, second.InputHash)

	opts.Refresh = true
	third, err := r.Render(ctx, points, opts)
	require.NoError(t, err)
	require.Empty(t, third.CacheInfo.Hits)
	require.Equal(t, 4, c.sets, "refresh still writes")
}

func TestRunnerRenderKeyChangesWithOptions(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, cache.NewScopedKeyer(nil, "test:"), quietLogger())

	_, err := r.Render(ctx, points, Options{})
	require.NoError(t, err)
	res, err := r.Render(ctx, points, Options{GradientBase: 0.5})
	require.NoError(t, err)
	require.Empty(t, res.CacheInfo.Hits)
	for k := range c.data {
		require.True(t, strings.HasPrefix(k, "test:artifact:svg:"), "key %q", k)
	}
}

func TestRunnerRenderRejectsBadInput(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	_, err := r.Render(context.Background(), []funnel.DataPoint{
		funnel.Step{Name: "a", Count: 10},
		funnel.Step{Name: "b", Count: 20},
	}, Options{})
	require.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	require.Contains(t, err.Error(), "step 1")

	_, err = r.Render(context.Background(), points, Options{Formats: []string{"gif"}})
	require.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestRunnerRenderPDF(t *testing.T) {
	if !render.PDFAvailable() {
		t.Skip("rsvg-convert not installed")
	}
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Render(context.Background(), points, Options{Formats: []string{FormatPDF}})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(res.Artifacts[FormatPDF], []byte("%PDF")))
}

func TestDecode(t *testing.T) {
	pts, err := Decode(context.Background(), strings.NewReader(`[{"name":"a","count":2},{"blank":true},{"name":"b","count":1}]`))
	require.NoError(t, err)
	require.Len(t, pts, 3)

	_, err = Decode(context.Background(), strings.NewReader(`[{"name":"a","count":1},{"name":"b","count":2}]`))
	require.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestSummarize(t *testing.T) {
	points := []funnel.DataPoint{
		funnel.Step{Name: "Visit", Count: 1200},
		funnel.Blank{},
		funnel.Step{Name: "Signup", Count: 300},
	}
	rows := Summarize(points)
	require.Len(t, rows, 3)

	require.Equal(t, "Visit", rows[0].Name)
	require.Equal(t, "1,200", rows[0].CountLabel)
	require.NotNil(t, rows[0].Absolute)
	require.Equal(t, 1.0, *rows[0].Absolute)
	require.Nil(t, rows[0].Relative)
	require.Empty(t, rows[0].RelativeLabel)

	require.True(t, rows[1].Blank)
	require.Equal(t, 1, rows[1].Index)

	require.Equal(t, "25% of top", rows[2].AbsoluteLabel)
	require.Equal(t, "25% of previous", rows[2].RelativeLabel)
	require.Equal(t, 0.25, *rows[2].Relative)
}

func TestSummarizeNonFinite(t *testing.T) {
	rows := Summarize([]funnel.DataPoint{
		funnel.Step{Name: "A", Count: 0},
		funnel.Step{Name: "B", Count: 0},
	})
	require.Nil(t, rows[1].Absolute)
	require.Nil(t, rows[1].Relative)
	require.Equal(t, "NaN% of top", rows[1].AbsoluteLabel)

	_, err := json.Marshal(rows)
	require.NoError(t, err)
}

func TestLoadExample(t *testing.T) {
	pts, err := Load(context.Background(), "../../examples/signup.json", "")
	require.NoError(t, err)
	require.Len(t, pts, 7)
	require.True(t, funnel.IsBlank(pts[3]))
	require.Equal(t, funnel.Step{Name: "Upgraded", Count: 212}, pts[6])
}
