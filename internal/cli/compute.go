package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/helmward/helmboard/pkg/layout"
	"github.com/helmward/helmboard/pkg/observability"
	"github.com/helmward/helmboard/pkg/pipeline"
	"github.com/helmward/helmboard/pkg/store"
	"github.com/helmward/helmboard/pkg/view"
)

// computeOpts holds the command-line flags for the compute command.
type computeOpts struct {
	output  string  // output file path; derived from input when empty
	width   float64 // canvas width in pixels
	height  float64 // canvas height in pixels
	padding float64 // canvas padding; 0 means the standard fraction
	noCache bool    // bypass the view cache
}

// computeCommand creates the compute command. It runs the full pipeline
// over a subsystem records file and writes the computed view as JSON.
func (c *CLI) computeCommand() *cobra.Command {
	opts := computeOpts{
		width:  layout.DefaultCanvasWidth,
		height: layout.DefaultCanvasHeight,
	}

	cmd := &cobra.Command{
		Use:   "compute [records.json]",
		Short: "Compute the dashboard view for a subsystem records file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompute(withLogger(cmd.Context(), c.Logger), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "canvas padding (default: 5% of the smaller dimension)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the view cache")

	return cmd
}

// hitRecorder observes whether the pass was served from the cache.
type hitRecorder struct {
	observability.NoopCacheHooks
	hits atomic.Int64
}

func (h *hitRecorder) OnCacheHit(ctx context.Context, keyType string) {
	h.hits.Add(1)
}

func (c *CLI) runCompute(ctx context.Context, input string, opts *computeOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	st, err := store.LoadFile(input)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	snap, err := st.Snapshot(ctx)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %d records from %s", len(snap.Records), input)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	rec := &hitRecorder{}
	observability.SetCacheHooks(rec)
	defer observability.Reset()

	v, err := runner.Compute(ctx, snap, pipeline.Options{
		CanvasWidth:  opts.width,
		CanvasHeight: opts.height,
		Padding:      opts.padding,
		NoCache:      opts.noCache,
	})
	if err != nil {
		printError("Computation failed: %s", err)
		return err
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".view.json"
	}
	if err := view.WriteViewFile(v, outputPath); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Computed view for %d subsystems", len(v.Nodes)))
	printSuccess("Wrote %s", outputPath)
	printStats(len(v.Nodes), len(v.Edges), countCapped(v), rec.hits.Load() > 0)
	return nil
}

// countCapped counts the nodes whose effective status differs from their own.
func countCapped(v *view.View) int {
	n := 0
	for i := range v.Nodes {
		if v.Nodes[i].Capped {
			n++
		}
	}
	return n
}
