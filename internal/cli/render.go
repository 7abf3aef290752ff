package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcslider/pkg/pipeline"
	"github.com/matzehuels/arcslider/pkg/slider"
)

// renderOptions holds the flags of the render command.
type renderOptions struct {
	formats string
	output  string
	scale   float64
	title   string
	noCache bool
	refresh bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOptions{formats: pipeline.FormatSVG, output: "widget"}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the configured widget to files",
		Long: `Render the widget described by --config (or the default single slider)
in its initial state. Each format is written to <output>.<format>; with
--output - a single format is written to stdout.`,
		Example: `  arcslider render -c knobs.toml -f svg,png -o build/knobs
  arcslider render -f json -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output formats (svg, png, json, html), comma-separated")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output path without extension, or - for stdout")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().StringVar(&opts.title, "title", "", "HTML page title")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	formats, err := pipeline.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	if opts.output == "-" && len(formats) != 1 {
		return fmt.Errorf("--output - needs exactly one format, got %d", len(formats))
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg.Cache, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Widget:   cfg.Widget,
		Style:    cfg.Style,
		Formats:  formats,
		Scale:    opts.scale,
		Title:    opts.title,
		Refresh:  opts.refresh,
		CacheTTL: cfg.Cache.TTL,
	})
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := cmd.OutOrStdout().Write(result.Artifacts[formats[0]])
		return err
	}

	paths, err := writeArtifacts(opts.output, formats, result.Artifacts)
	if err != nil {
		return err
	}
	prog.done("rendered widget", "formats", strings.Join(formats, ","), "hash", result.WidgetHash[:12])

	printSuccess("Rendered %d file(s)", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Sliders, result.Stats.Bytes, result.CacheInfo.AllHit())
	fmt.Println(sliderTable(slider.NewController(cfg.Widget)))
	printNextStep("Try it interactively", "arcslider serve"+configFlag(c.configPath))
	return nil
}

// writeArtifacts writes one file per format next to base and returns the paths.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + f
		if err := os.WriteFile(path, artifacts[f], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func configFlag(path string) string {
	if path == "" {
		return ""
	}
	return " -c " + path
}
