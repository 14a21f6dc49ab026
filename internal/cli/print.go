package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelkit/pkg/pipeline"
)

// printOpts holds the command-line flags for the print command.
type printOpts struct {
	formats     []string // output formats: "png", "pdf", "svg", "json"
	output      string   // output file (single format) or base path
	script      string
	scale       float64 // PNG pixels per label pixel
	fontMetrics bool
	noCache     bool
	refresh     bool
}

// printCommand creates the print command, which renders print artifacts.
func (c *CLI) printCommand() *cobra.Command {
	var formatsStr string
	opts := printOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "print [data.json]",
		Short: "Render a label to PNG, PDF or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runPrint(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), pdf, svg, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "action script to replay")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale (1 = 100 DPI)")
	cmd.Flags().BoolVar(&opts.fontMetrics, "font-metrics", false, "measure text with the print fonts")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runPrint(ctx context.Context, input string, opts printOpts) error {
	cfg, data, state, err := c.loadInputs(input)
	if err != nil {
		return err
	}
	script, err := readScript(opts.script)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+strings.Join(opts.formats, ", ")+"...")
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Data:        data,
		State:       state,
		Script:      script,
		ScriptName:  opts.script,
		FontMetrics: opts.fontMetrics,
		Formats:     opts.formats,
		Scale:       opts.scale,
		Refresh:     opts.refresh,
		TTL:         cfg.Cache.TTL,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.StopWithSuccess("Rendered label")
	printStats(result.Stats.Elements, result.Stats.Statements, result.CacheInfo.RenderHit)

	paths := outputPaths(input, opts.output, result.Artifacts)
	for _, format := range slices.Sorted(maps.Keys(paths)) {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// outputPaths maps each artifact format to a file. A single format writes
// to output as given; several formats treat output as a base path.
func outputPaths(input, output string, artifacts map[string][]byte) map[string]string {
	paths := make(map[string]string, len(artifacts))
	if len(artifacts) == 1 && output != "" {
		for format := range artifacts {
			paths[format] = output
		}
		return paths
	}
	base := basePath(output, input)
	for format := range artifacts {
		if format == pipeline.FormatJSON && output == "" {
			// never overwrite the input data file
			paths[format] = defaultOutput(input, "label.json")
			continue
		}
		paths[format] = base + "." + format
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.png, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.IsFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
