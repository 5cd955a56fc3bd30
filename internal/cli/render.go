package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/pipeline"
	"github.com/matzehuels/netdraw/pkg/source"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file, or base path for several formats
	formats    string // comma-separated output formats
	sheet      string // workbook sheet to read
	noFrames   bool   // skip VLAN frames
	noCache    bool   // disable the artifact cache
	refresh    bool   // re-render even when cached
	detailed   bool   // IPs and notes in DOT labels
	iterations int    // frame resolution budget
	name       string // diagram page name
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <input>",
		Short: "Render a network inventory to a draw.io diagram",
		Long: `Render a network inventory to a draw.io diagram.

The input is a .xlsx workbook, .csv, .yaml or .json file. Without -o the
diagram is written as network.drawio next to the input. Several formats may
be requested at once; each gets its own extension:

  netdraw render inventory.xlsx
  netdraw render inventory.csv -o site-a -f drawio,svg,json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: network.drawio next to the input)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): drawio (default), json, dot, svg, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "workbook sheet to read (default: first, or ask)")
	cmd.Flags().BoolVar(&opts.noFrames, "no-frames", false, "do not draw VLAN frames")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show IPs and notes in DOT and SVG output")
	cmd.Flags().IntVar(&opts.iterations, "iterations", 0, "frame collision resolution rounds (default from config)")
	cmd.Flags().StringVar(&opts.name, "name", "", "diagram page name")

	registerInputCompletions(cmd)
	return cmd
}

// pipelineOptions merges explicitly set flags over the configured options.
func (c *CLI) pipelineOptions(cmd *cobra.Command, opts renderOpts) (pipeline.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return pipeline.Options{}, err
	}
	p := cfg.PipelineOptions()
	if formats := parseFormats(opts.formats); len(formats) > 0 {
		p.Formats = formats
	}
	if cmd.Flags().Changed("iterations") {
		p.Frame.MaxIterations = opts.iterations
	}
	if opts.name != "" {
		p.Diagram.DiagramName = opts.name
	}
	p.SkipFrames = opts.noFrames
	p.Refresh = opts.refresh
	if opts.detailed {
		p.Detailed = true
	}
	p.Logger = c.Logger
	return p, nil
}

// sourceOptions builds reader options, offering the sheet picker on a
// terminal.
func (c *CLI) sourceOptions(sheet string) (source.Options, error) {
	opts := source.Options{Sheet: sheet, Logger: c.Logger}
	if sheet != "" {
		if err := errs.ValidateSheetName(sheet); err != nil {
			return opts, err
		}
	} else if interactive() {
		opts.PickSheet = pickSheet
	}
	return opts, nil
}

// runRender loads the inventory, runs the pipeline, and writes every artifact.
func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, input string, opts renderOpts) error {
	popts, err := c.pipelineOptions(cmd, opts)
	if err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(popts.Formats); err != nil {
		return err
	}

	sopts, err := c.sourceOptions(opts.sheet)
	if err != nil {
		return err
	}

	ctx = withLogger(ctx, c.Logger)
	prog := newProgress(c.Logger)
	set, err := pipeline.Load(ctx, input, sopts)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	prog.counted("Loaded", set.Len(), "node")

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Drawing network...")
	spinner.Start()

	result, err := runner.Execute(ctx, set, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(ctx, input, opts.output, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Diagram complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheHit)
	printReport(result)
	printNewline()
	printNextStep("Inspect", appName+" inspect "+input)

	return nil
}

// writeArtifacts writes artifacts in display order and returns the paths.
func writeArtifacts(ctx context.Context, input, output string, artifacts map[string][]byte) ([]string, error) {
	logger := loggerFromContext(ctx)
	multi := len(artifacts) > 1
	var paths []string
	for _, format := range pipeline.FormatNames {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := pipeline.OutputPath(input, output, format, multi)
		if err := pipeline.WriteArtifact(path, data); err != nil {
			return paths, err
		}
		logger.Debug("wrote artifact", "format", format, "path", path, "bytes", len(data))
		paths = append(paths, path)
	}
	return paths, nil
}
