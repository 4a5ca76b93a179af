package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/funnel/pkg/errors"
	"github.com/matzehuels/funnel/pkg/pipeline"
)

// renderOpts holds the render command's flags.
type renderOpts struct {
	output       string
	formats      string
	width        float64
	height       float64
	gradientBase float64
	sheet        string
	noCache      bool
	refresh      bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <input.json|input.xlsx>",
		Short: "Render a funnel chart to SVG, PNG or PDF",
		Long: `Render a funnel chart from a JSON or spreadsheet input.

Output files are named after the input unless -o is given. With a single
format, -o names the file exactly and "-" writes to stdout.`,
		Example: `  funnel render signup.json
  funnel render signup.xlsx --sheet Q3 -f svg,png
  funnel render signup.json -f png --width 1200 --height 700 -o chart.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "output formats: svg, png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "chart width in pixels (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "chart height in pixels (default from config)")
	cmd.Flags().Float64Var(&opts.gradientBase, "gradient-base", 0, "proportion mapped to the lightest fill, in [0, 1)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "spreadsheet sheet name (default: first sheet)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, ro renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts, err := pipeline.FromConfig(cfg)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		opts.Width = ro.width
	}
	if flags.Changed("height") {
		opts.Height = ro.height
	}
	if flags.Changed("gradient-base") {
		opts.GradientBase = ro.gradientBase
	}
	opts.Formats = pipeline.ParseFormats(ro.formats)
	opts.Refresh = ro.refresh
	opts.Logger = logger
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}

	paths, err := outputPaths(input, ro.output, opts.Formats)
	if err != nil {
		return err
	}

	points, err := pipeline.Load(ctx, input, ro.sheet)
	if err != nil {
		return err
	}
	logger.Debug("loaded input", "path", input, "points", len(points))

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	toStdout := ro.output == "-"
	var spinner *Spinner
	if !toStdout {
		spinner = newSpinnerWithContext(ctx, "Rendering funnel...")
		spinner.Start()
	}
	result, err := runner.Render(ctx, points, opts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	if toStdout {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	written, err := writeArtifacts(result.Artifacts, paths)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", plural(len(written), "file"))
	for _, p := range written {
		printFile(p)
	}
	printStats(result.Stats.Steps, result.Stats.Blanks, len(result.CacheInfo.Hits) == len(opts.Formats))
	return nil
}

// outputPaths maps each format to the file it is written to. Without an
// output the input path supplies the base name; with one format the output
// is used as-is.
func outputPaths(input, output string, formats []string) (map[string]string, error) {
	if output == "-" {
		if len(formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidPath, "stdout output needs exactly one format, got %d", len(formats))
		}
		return nil, nil
	}
	if output != "" && len(formats) == 1 {
		return map[string]string{formats[0]: output}, nil
	}

	base := output
	if base == "" {
		base = input
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths, nil
}

// writeArtifacts writes each artifact to its path and returns the written
// paths in sorted order.
func writeArtifacts(artifacts map[string][]byte, paths map[string]string) ([]string, error) {
	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	written := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return written, fmt.Errorf("no %s artifact rendered", f)
		}
		path := paths[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
