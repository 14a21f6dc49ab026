package cli

import (
	"context"
	"net"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelkit/pkg/export"
	"github.com/matzehuels/labelkit/pkg/pipeline"
	"github.com/matzehuels/labelkit/pkg/preview"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	script      string // action script replayed before export
	output      string // fallback / output JSON path
	view        bool   // open the label in the preview server
	fontMetrics bool   // measure text with the print fonts
	noCache     bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [data.json]",
		Short: "Export a label as a JSON document",
		Long: `Export builds the label from a data file, replays an optional action
script and writes the flattened export document.

With --view the document is opened in the preview server instead; when
the server cannot be started the document is written to the output file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "action script to replay")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <data>.label.json)")
	cmd.Flags().BoolVar(&opts.view, "view", false, "open the label in the preview server")
	cmd.Flags().BoolVar(&opts.fontMetrics, "font-metrics", false, "measure text with the print fonts")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, opts exportOpts) error {
	logger := loggerFromContext(ctx)

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

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Data:        data,
		State:       state,
		Script:      script,
		ScriptName:  opts.script,
		FontMetrics: opts.fontMetrics,
		Formats:     []string{pipeline.FormatJSON},
	})
	if err != nil {
		return err
	}
	prog.done("Built label")
	printStats(result.Stats.Elements, result.Stats.Statements, result.CacheInfo.BuildHit)

	output := opts.output
	if output == "" {
		output = defaultOutput(input, "label.json")
	}

	var opener export.Opener
	var stop context.CancelFunc = func() {}
	var done <-chan error
	if opts.view {
		srv, serveErr, cancel := startPreview(ctx, cfg.Preview.Addr, runner, c)
		opener, stop, done = srv, cancel, serveErr
	}

	d, err := export.Deliver(ctx, result.Document, opener, output)
	if err != nil {
		stop()
		return err
	}
	switch d.Method {
	case export.DeliveredView:
		printSuccess("Opened label")
		printFile(d.Location)
		printDetail("Press Ctrl+C to stop the preview server")
		<-ctx.Done()
		stop()
		if done != nil {
			return <-done
		}
		return nil
	default:
		stop()
		if d.Blocked != nil {
			printWarning("Preview unavailable: %v", d.Blocked)
		}
		printSuccess("Exported label")
		printFile(d.Location)
	}
	return nil
}

// startPreview starts a preview server in the background. When addr cannot
// be bound the server is returned unstarted, so opening fails and delivery
// falls back to a file.
func startPreview(ctx context.Context, addr string, runner *pipeline.Runner, c *CLI) (*preview.Server, <-chan error, context.CancelFunc) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		c.Logger.Debug("preview listen failed", "addr", addr, "err", err)
		return preview.New(preview.WithLogger(c.Logger), preview.WithRunner(runner)), nil, func() {}
	}
	srv := preview.New(
		preview.WithLogger(c.Logger),
		preview.WithRunner(runner),
		preview.WithBaseURL("http://"+ln.Addr().String()),
	)
	serveCtx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(serveCtx, ln) }()
	return srv, errCh, cancel
}

// defaultOutput derives an output path from the input file name.
func defaultOutput(input, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), base+"."+suffix)
}
