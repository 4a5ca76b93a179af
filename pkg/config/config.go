// Package config loads funnel settings from a TOML file.
//
// A config file sets chart defaults, the visual style and server options.
// Every key is optional; missing keys keep the value from [Default].
//
//	[chart]
//	width = 1000
//	height = 600
//	gradient_base = 0.2
//
//	[style]
//	center_font_size = 20
//	gradient_from = "#c6dbef"
//	gradient_to = "#08306b"
//
//	[server]
//	addr = ":8080"
//	redis_url = "redis://localhost:6379/0"
//
// Command-line flags override file values.
package config

import (
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/funnel/pkg/errors"
	"github.com/matzehuels/funnel/pkg/fonts"
	"github.com/matzehuels/funnel/pkg/render/chart"
	"github.com/matzehuels/funnel/pkg/render/chart/placement"
)

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// Config is the contents of a config file.
type Config struct {
	Chart  Chart  `toml:"chart"`
	Style  Style  `toml:"style"`
	Server Server `toml:"server"`
}

// Chart holds the chart size and gradient base.
type Chart struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	GradientBase float64 `toml:"gradient_base"`
}

// Style holds font sizes, spacing and colors. Colors are "#rrggbb".
type Style struct {
	placement.Style

	GradientFrom string `toml:"gradient_from"`
	GradientTo   string `toml:"gradient_to"`
	LightText    string `toml:"light_text"`
	DarkText     string `toml:"dark_text"`
	Background   string `toml:"background"`
}

// Server holds HTTP service settings.
type Server struct {
	Addr     string `toml:"addr"`
	RedisURL string `toml:"redis_url"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Chart: Chart{
			Width:  chart.DefaultWidth,
			Height: chart.DefaultHeight,
		},
		Style: Style{
			Style:        placement.DefaultStyle(),
			GradientFrom: "#9ecae1",
			GradientTo:   "#08519c",
			LightText:    "#ffffff",
			DarkText:     "#333333",
			Background:   "#ffffff",
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/funnel/config.toml, falling back to
// the platform user config directory.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "funnel", FileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "funnel", FileName), nil
}

// Load reads path over the defaults and validates the result. Unknown keys
// are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads path if given, else the default path if that file
// exists, else returns Default.
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	def, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(def); err != nil {
		return Default(), nil
	}
	return Load(def)
}

// Validate checks sizes, the gradient base and colors.
func (c Config) Validate() error {
	if !(c.Chart.Width > 0) || !(c.Chart.Height > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "chart size must be positive, got %gx%g", c.Chart.Width, c.Chart.Height)
	}
	if c.Chart.Width > chart.MaxDimension || c.Chart.Height > chart.MaxDimension {
		return errors.New(errors.ErrCodeInvalidConfig, "chart size must be at most %d, got %gx%g", chart.MaxDimension, c.Chart.Width, c.Chart.Height)
	}
	if c.Chart.GradientBase < 0 || c.Chart.GradientBase >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "gradient_base must be in [0, 1), got %g", c.Chart.GradientBase)
	}
	st := c.Style.Style
	if st.CenterFontSize <= 0 || st.LabelFontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "font sizes must be positive")
	}
	if st.LineSpacing < 0 || st.TextPadding < 0 || st.LabelGap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "line_spacing, text_padding and label_gap must not be negative")
	}
	_, err := c.Theme()
	return err
}

// Theme parses the style colors.
func (c Config) Theme() (chart.Theme, error) {
	var t chart.Theme
	fields := []struct {
		key string
		val string
		dst *color.Color
	}{
		{"gradient_from", c.Style.GradientFrom, &t.GradientFrom},
		{"gradient_to", c.Style.GradientTo, &t.GradientTo},
		{"light_text", c.Style.LightText, &t.LightText},
		{"dark_text", c.Style.DarkText, &t.DarkText},
		{"background", c.Style.Background, &t.Background},
	}
	for _, f := range fields {
		col, err := colorful.Hex(f.val)
		if err != nil {
			return chart.Theme{}, errors.New(errors.ErrCodeInvalidConfig, "%s: invalid color %q", f.key, f.val)
		}
		*f.dst = col
	}
	return t, nil
}

// ChartOptions converts the config into draw options.
func (c Config) ChartOptions() (chart.Options, error) {
	theme, err := c.Theme()
	if err != nil {
		return chart.Options{}, err
	}
	return chart.Options{
		Width:        c.Chart.Width,
		Height:       c.Chart.Height,
		GradientBase: c.Chart.GradientBase,
		FontFamily:   fonts.FontFamily,
		Style:        c.Style.Style,
		Theme:        theme,
	}, nil
}
