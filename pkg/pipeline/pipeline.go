// Package pipeline provides the core computation pipeline for Helmboard.
//
// This package implements the complete snapshot → graph → cascade → layout →
// view pass that is shared by the CLI, the API server, and the watch TUI. By
// centralizing this logic, we ensure every entry point derives exactly the
// same view from the same snapshot.
//
// # Architecture
//
// One pass consists of four stages:
//
//  1. Build: validate the snapshot's records into a dependency graph
//  2. Cascade: derive each node's effective status and capped flag
//  3. Layout: assign ranks and canvas coordinates
//  4. Assemble: combine everything into the serializable view
//
// The pass is pure and synchronous - no suspension points, no shared
// mutable state between runs. For small graphs (tens of subsystems) a full
// O(V+E) recomputation per refresh is cheaper and far less error-prone than
// incremental maintenance, so no incremental path exists.
//
// # Caching
//
// Computed views are cached keyed by the snapshot's content hash plus the
// layout options. The key is derived from the records themselves, never
// from snapshot identity, so an unchanged record set hits the cache even
// across process restarts while any edit changes the key. Data-integrity
// failures (unknown dependency, cycle) are never cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	v, err := runner.Compute(ctx, snapshot, pipeline.Options{})
//	if err != nil {
//	    // surface the error; never substitute a stale or partial view
//	}
package pipeline

import (
	"time"

	"github.com/helmward/helmboard/pkg/layout"
)

// DefaultCacheTTL bounds view cache growth. Snapshot-content keys make
// stale hits impossible, so the TTL is purely a housekeeping knob.
const DefaultCacheTTL = 24 * time.Hour

// Options configures one computation pass.
type Options struct {
	// Canvas geometry passed through to the layout engine.
	CanvasWidth  float64
	CanvasHeight float64
	Padding      float64

	// NoCache disables the view cache for this pass.
	NoCache bool
}

// SetDefaults fills unset fields with the standard defaults.
func (o *Options) SetDefaults() {
	lo := o.layoutOptions()
	lo.SetDefaults()
	o.CanvasWidth = lo.CanvasWidth
	o.CanvasHeight = lo.CanvasHeight
	o.Padding = lo.Padding
}

func (o *Options) layoutOptions() layout.Options {
	return layout.Options{
		CanvasWidth:  o.CanvasWidth,
		CanvasHeight: o.CanvasHeight,
		Padding:      o.Padding,
	}
}
