package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/helmward/helmboard/pkg/layout"
	"github.com/helmward/helmboard/pkg/pipeline"
	"github.com/helmward/helmboard/pkg/render"
	"github.com/helmward/helmboard/pkg/store"
	"github.com/helmward/helmboard/pkg/view"
)

// Output formats for the render command.
const (
	formatSVG      = "svg"      // native layered SVG at the computed coordinates
	formatDOT      = "dot"      // graphviz DOT source
	formatGraphviz = "graphviz" // SVG produced by graphviz from the DOT source
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file path; derived from input when empty
	format  string  // svg, dot, or graphviz
	width   float64 // canvas width in pixels
	height  float64 // canvas height in pixels
	noCache bool    // bypass the view cache
}

// renderCommand creates the render command. The input is either a records
// file (the pipeline runs first) or a precomputed view file from the
// compute command; the two are distinguished by the .view.json suffix.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format: formatSVG,
		width:  layout.DefaultCanvasWidth,
		height: layout.DefaultCanvasHeight,
	}

	cmd := &cobra.Command{
		Use:   "render [records.json|view.json]",
		Short: "Render a dashboard view as SVG or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(withLogger(cmd.Context(), c.Logger), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, graphviz")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the view cache")

	return cmd
}

// validateFormat checks that the format is one of svg, dot, or graphviz.
func validateFormat(f string) error {
	switch f {
	case formatSVG, formatDOT, formatGraphviz:
		return nil
	}
	return fmt.Errorf("invalid format: %s (must be 'svg', 'dot', or 'graphviz')", f)
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	v, err := c.loadView(ctx, input, opts)
	if err != nil {
		return err
	}

	var data []byte
	switch opts.format {
	case formatSVG:
		data = render.ToSVG(v)
	case formatDOT:
		data = []byte(render.ToDOT(v))
	case formatGraphviz:
		data, err = render.RenderDOTSVG(ctx, render.ToDOT(v))
		if err != nil {
			return fmt.Errorf("graphviz render: %w", err)
		}
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	outputPath := opts.output
	if outputPath == "" {
		outputPath = outputFor(input, opts.format)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return err
	}

	printSuccess("Rendered %d subsystems", len(v.Nodes))
	printFile(outputPath)
	return nil
}

// loadView reads a precomputed view or runs the pipeline over a records file.
func (c *CLI) loadView(ctx context.Context, input string, opts *renderOpts) (*view.View, error) {
	if strings.HasSuffix(input, ".view.json") {
		loggerFromContext(ctx).Debugf("Loading precomputed view from %s", input)
		return view.ReadViewFile(input)
	}

	st, err := store.LoadFile(input)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	snap, err := st.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return nil, err
	}
	return runner.Compute(ctx, snap, pipeline.Options{
		CanvasWidth:  opts.width,
		CanvasHeight: opts.height,
		NoCache:      opts.noCache,
	})
}

// outputFor derives the output path from the input path and format.
// The graphviz format still writes an .svg file.
func outputFor(input, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	base = strings.TrimSuffix(base, ".view")
	ext := format
	if format == formatGraphviz {
		ext = "svg"
	}
	return base + "." + ext
}
