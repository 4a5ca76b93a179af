// Package pipeline runs the load → validate → render flow shared by the CLI
// and the HTTP service.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	points, err := pipeline.Load(ctx, "signup.xlsx", "")
//	result, err := runner.Render(ctx, points, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// Artifacts are cached per format under a key derived from the input points
// and every option that changes the output.
package pipeline

import (
	"encoding/json"
	"image/color"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/funnel/pkg/cache"
	"github.com/matzehuels/funnel/pkg/config"
	"github.com/matzehuels/funnel/pkg/errors"
	"github.com/matzehuels/funnel/pkg/fonts"
	"github.com/matzehuels/funnel/pkg/render/chart"
	"github.com/matzehuels/funnel/pkg/render/chart/placement"
)

// Format names.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG: "image/svg+xml",
	FormatPNG: "image/png",
	FormatPDF: "application/pdf",
}

// Options configures a render.
type Options struct {
	Width        float64  `json:"width,omitempty"`
	Height       float64  `json:"height,omitempty"`
	GradientBase float64  `json:"gradient_base,omitempty"`
	Formats      []string `json:"formats,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Style and Theme default to placement.DefaultStyle and
	// chart.DefaultTheme when left zero.
	Style placement.Style `json:"style,omitempty"`
	Theme chart.Theme     `json:"-"`

	Logger *log.Logger `json:"-"`
}

// Result is the output of Runner.Render.
type Result struct {
	// Artifacts maps format to bytes.
	Artifacts map[string][]byte

	// InputHash identifies the input points.
	InputHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats describes the input and timing of a render.
type Stats struct {
	Steps      int
	Blanks     int
	RenderTime time.Duration
}

// CacheInfo records which formats came from the cache.
type CacheInfo struct {
	Hits []string
}

// FromConfig returns options initialized from cfg.
func FromConfig(cfg config.Config) (Options, error) {
	theme, err := cfg.Theme()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Width:        cfg.Chart.Width,
		Height:       cfg.Chart.Height,
		GradientBase: cfg.Chart.GradientBase,
		Style:        cfg.Style.Style,
		Theme:        theme,
	}, nil
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = chart.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = chart.DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == (placement.Style{}) {
		o.Style = placement.DefaultStyle()
	}
	if o.Theme.GradientFrom == nil {
		o.Theme = chart.DefaultTheme()
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Validate checks sizes, the gradient base, formats and the style.
func (o *Options) Validate() error {
	if !positive(o.Width) || !positive(o.Height) {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must be positive, got %gx%g", o.Width, o.Height)
	}
	if o.Width > chart.MaxDimension || o.Height > chart.MaxDimension {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must be at most %d, got %gx%g", chart.MaxDimension, o.Width, o.Height)
	}
	if math.IsNaN(o.GradientBase) || o.GradientBase < 0 || o.GradientBase >= 1 {
		return errors.New(errors.ErrCodeInvalidInput, "gradient base must be in [0, 1), got %g", o.GradientBase)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if !positive(o.Style.CenterFontSize) || !positive(o.Style.LabelFontSize) {
		return errors.New(errors.ErrCodeInvalidInput, "font sizes must be positive")
	}
	return nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}

// ChartOptions returns the draw options.
func (o *Options) ChartOptions() chart.Options {
	return chart.Options{
		Width:        o.Width,
		Height:       o.Height,
		GradientBase: o.GradientBase,
		FontFamily:   fonts.FontFamily,
		Style:        o.Style,
		Theme:        o.Theme,
	}
}

// ArtifactKeyOpts returns the cache key options for format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		Width:        o.Width,
		Height:       o.Height,
		GradientBase: o.GradientBase,
		StyleHash:    o.styleHash(),
	}
}

func (o *Options) styleHash() string {
	t := o.Theme
	data, _ := json.Marshal(struct {
		Style  placement.Style
		Colors []string
	}{
		Style:  o.Style,
		Colors: []string{hexOf(t.GradientFrom), hexOf(t.GradientTo), hexOf(t.LightText), hexOf(t.DarkText), hexOf(t.Background)},
	})
	return cache.Hash(data)
}

func hexOf(c color.Color) string {
	if c == nil {
		return ""
	}
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}
