package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelkit/pkg/editor"
	"github.com/matzehuels/labelkit/pkg/render/tree"
	"github.com/matzehuels/labelkit/pkg/scene"
	"github.com/matzehuels/labelkit/pkg/script"
)

const (
	sceneFormatDOT = "dot"
	sceneFormatSVG = "svg"
)

// sceneCommand creates the scene command, which prints the scene tree of a
// label for debugging layouts.
func (c *CLI) sceneCommand() *cobra.Command {
	var (
		format     string
		output     string
		scriptPath string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "scene [data.json]",
		Short: "Describe the label's scene tree as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != sceneFormatDOT && format != sceneFormatSVG {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", format)
			}
			return c.runScene(cmd.Context(), args[0], scriptPath, format, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", sceneFormatDOT, "output format: dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "action script to replay first")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include offsets and sizes in node labels")

	return cmd
}

func (c *CLI) runScene(ctx context.Context, input, scriptPath, format, output string, detailed bool) error {
	logger := loggerFromContext(ctx)

	_, data, state, err := c.loadInputs(input)
	if err != nil {
		return err
	}
	e, err := editor.New(state, data, editor.WithLogger(logger))
	if err != nil {
		return err
	}
	if src, err := readScript(scriptPath); err != nil {
		return err
	} else if src != "" {
		s, err := script.Parse(scriptPath, strings.NewReader(src))
		if err != nil {
			return err
		}
		if err := s.Run(e); err != nil {
			return err
		}
	}

	var out []byte
	switch format {
	case sceneFormatSVG:
		out, err = tree.RenderScene(ctx, e.Scene(), detailed)
		if err != nil {
			return err
		}
	default:
		out = []byte(scene.ToDOT(e.Scene(), scene.DOTOptions{Detailed: detailed}))
	}
	logger.Debug("described scene", "nodes", e.Scene().Count(), "format", format)

	if output == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return err
	}
	printSuccess("Wrote scene tree")
	printFile(output)
	return nil
}
