package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/chromatic/pkg/io"
	"github.com/matzehuels/chromatic/pkg/pipeline"
	"github.com/matzehuels/chromatic/pkg/render"
)

// colorOpts holds the command-line flags for the color command.
type colorOpts struct {
	output       string // solution JSON path
	renderPath   string // drawing path; the extension picks the format
	detailed     bool   // label vertices with their color
	usageForcing bool   // add x[i][k] <= w[k] rows
	timeout      time.Duration
	noCache      bool
	refresh      bool
	quiet        bool // suppress the result summary
}

// colorCommand creates the color command.
func (c *CLI) colorCommand() *cobra.Command {
	var opts colorOpts

	cmd := &cobra.Command{
		Use:   "color <file>",
		Short: "Compute a minimum coloring of a graph",
		Long: `Compute a minimum vertex coloring by solving a 0/1 integer program.

The input format follows the file extension: .json, .toml, .yaml, or .col/.dimacs
(DIMACS edge format). The solution is printed and optionally written as JSON
with -o; --render draws the colored graph as DOT, SVG or PNG.`,
		Example: `  chromatic color petersen.json
  chromatic color myciel4.col -o myciel4.solution.json --render myciel4.svg
  chromatic color big.json --timeout 10s --usage-forcing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("usage-forcing") {
				opts.usageForcing = c.Config.UsageForcing
			}
			if !cmd.Flags().Changed("timeout") {
				opts.timeout = c.Config.Timeout.Duration
			}
			return c.runColor(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the solution as JSON to this file")
	cmd.Flags().StringVar(&opts.renderPath, "render", "", "draw the coloring to this file (.dot, .svg or .png)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label vertices with index and color in drawings")
	cmd.Flags().BoolVar(&opts.usageForcing, "usage-forcing", false, "force w[k] on whenever color k is assigned")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", pipeline.DefaultTimeout, "solver timeout (e.g. 500ms, 10s, 2m)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the solution cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached solutions and solve again")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the coloring")

	return cmd
}

func (c *CLI) runColor(ctx context.Context, path string, opts colorOpts) error {
	logger := loggerFromContext(ctx)

	g, err := graphio.Import(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded graph", "path", path, "vertices", g.N(), "edges", g.EdgeCount())

	pipeOpts := pipeline.Options{
		UsageForcing: opts.usageForcing,
		Timeout:      opts.timeout,
		MaxVertices:  c.Config.MaxVertices,
		Refresh:      opts.refresh,
		Detailed:     opts.detailed,
		Logger:       logger,
	}
	if opts.renderPath != "" {
		f, err := render.FormatFromPath(opts.renderPath)
		if err != nil {
			return err
		}
		pipeOpts.Formats = []render.Format{f}
	}

	runner, err := c.newRunner(ctx, opts.noCache, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if !c.verbose && !opts.quiet && isTerminal(os.Stderr) {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Coloring %d vertices...", g.N()))
		spinner.Start()
	}
	res, err := runner.Execute(ctx, g, pipeOpts)
	if spinner != nil {
		switch {
		case spinner.Cancelled():
			spinner.Stop()
			return ctx.Err()
		case err != nil:
			spinner.StopWithError("Coloring failed")
		default:
			spinner.StopWithSuccess(fmt.Sprintf("Colored %s", g))
		}
	}
	if err != nil {
		return err
	}

	if !opts.quiet {
		printResult(res)
	}
	if opts.output != "" {
		if err := graphio.ExportSolution(res.Solution, opts.output); err != nil {
			return err
		}
		if !opts.quiet {
			printFile(opts.output)
		}
	}
	if opts.renderPath != "" {
		if err := os.WriteFile(opts.renderPath, res.Artifacts[pipeOpts.Formats[0]], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.renderPath, err)
		}
		if !opts.quiet {
			printFile(opts.renderPath)
		}
	}
	return nil
}
