package cli

import (
	"context"
	"net"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelkit/pkg/pipeline"
	"github.com/matzehuels/labelkit/pkg/preview"
)

// serveCommand creates the serve command, which runs the preview server
// with the given label loaded.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		scriptPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve [data.json]",
		Short: "Serve a label over HTTP for previewing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr, scriptPath, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+preview.DefaultAddr+")")
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "action script to replay")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input, addr, scriptPath string, noCache bool) error {
	cfg, data, state, err := c.loadInputs(input)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Preview.Addr
	}
	src, err := readScript(scriptPath)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Data:       data,
		State:      state,
		Script:     src,
		ScriptName: scriptPath,
		TTL:        cfg.Cache.TTL,
	})
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := preview.New(preview.WithLogger(c.Logger), preview.WithRunner(runner))
	entry := srv.Add(result.Document)

	printSuccess("Serving label")
	printFile("http://" + ln.Addr().String() + "/labels/" + entry.ID)
	printDetail("Press Ctrl+C to stop")

	return srv.Serve(ctx, ln)
}
