package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/helmward/helmboard/pkg/cache"
	"github.com/helmward/helmboard/pkg/cascade"
	"github.com/helmward/helmboard/pkg/graph"
	"github.com/helmward/helmboard/pkg/layout"
	"github.com/helmward/helmboard/pkg/observability"
	"github.com/helmward/helmboard/pkg/status"
	"github.com/helmward/helmboard/pkg/store"
	"github.com/helmward/helmboard/pkg/view"
)

// Runner encapsulates pipeline execution with caching.
// CLI, server and TUI all share this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different snapshots.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Compute runs one full pass over a snapshot and returns the derived view.
//
// Every record in the snapshot must validate: a dangling or self dependency
// fails the whole pass with the typed error from [graph.Build], and a cycle
// fails it with [*graph.CycleDetectedError]. No partial view is ever
// produced or cached for a bad snapshot - a silently-wrong graph is worse
// than an explicit failure state.
func (r *Runner) Compute(ctx context.Context, snap *store.Snapshot, opts Options) (*view.View, error) {
	opts.SetDefaults()
	start := time.Now()
	observability.Engine().OnPassStart(ctx, snap.ID, len(snap.Records))

	if err := validateStatuses(snap.Records); err != nil {
		observability.Engine().OnPassComplete(ctx, snap.ID, time.Since(start), err)
		return nil, err
	}

	key, err := r.viewKey(snap, opts)
	if err == nil && !opts.NoCache {
		if v, ok := r.cachedView(ctx, key); ok {
			r.Logger.Debug("view cache hit", "snapshot", snap.ID)
			observability.Engine().OnPassComplete(ctx, snap.ID, time.Since(start), nil)
			return v, nil
		}
	}

	v, err := r.compute(ctx, snap, opts)
	observability.Engine().OnPassComplete(ctx, snap.ID, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("computed view",
		"snapshot", snap.ID,
		"nodes", len(v.Nodes),
		"edges", len(v.Edges),
		"duration", time.Since(start).Round(time.Millisecond))

	if !opts.NoCache && key != "" {
		r.storeView(ctx, key, v)
	}
	return v, nil
}

// compute runs the uncached build -> cascade -> layout -> assemble pass.
func (r *Runner) compute(ctx context.Context, snap *store.Snapshot, opts Options) (*view.View, error) {
	g, err := graph.Build(snap.Records)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	results, err := cascade.Compute(g)
	observability.Engine().OnCascadeComplete(ctx, snap.ID, countCapped(results), err)
	if err != nil {
		return nil, fmt.Errorf("cascade: %w", err)
	}

	l, err := layout.Compute(g, opts.layoutOptions())
	if err != nil {
		observability.Engine().OnLayoutComplete(ctx, snap.ID, 0, err)
		return nil, fmt.Errorf("layout: %w", err)
	}
	observability.Engine().OnLayoutComplete(ctx, snap.ID, len(l.Layers), nil)

	v := view.Assemble(g, results, l)
	v.SnapshotID = snap.ID
	v.ComputedAt = snap.TakenAt
	return v, nil
}

// viewKey derives the cache key from the snapshot's record content and the
// layout options - never from the snapshot's identity, so equal record sets
// share a key and any edit changes it.
func (r *Runner) viewKey(snap *store.Snapshot, opts Options) (string, error) {
	data, err := json.Marshal(snap.Records)
	if err != nil {
		return "", err
	}
	return r.Keyer.ViewKey(cache.Hash(data), cache.ViewKeyOpts{
		CanvasWidth:  opts.CanvasWidth,
		CanvasHeight: opts.CanvasHeight,
		Padding:      opts.Padding,
	}), nil
}

func (r *Runner) cachedView(ctx context.Context, key string) (*view.View, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("view cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "view")
		return nil, false
	}
	v, err := view.UnmarshalView(data)
	if err != nil {
		// Corrupt entry - treat as miss.
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "view")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "view")
	return v, true
}

func (r *Runner) storeView(ctx context.Context, key string, v *view.View) {
	data, err := view.MarshalView(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
		r.Logger.Warn("view cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "view", len(data))
}

// validateStatuses rejects snapshots carrying labels outside the status
// scale before they can reach Ordinal and panic mid-pass.
func validateStatuses(records []graph.Record) error {
	for _, rec := range records {
		if !status.Valid(rec.OwnStatus) {
			return fmt.Errorf("subsystem %q: unknown status %q", rec.ID, rec.OwnStatus)
		}
	}
	return nil
}

func countCapped(results map[string]cascade.Result) int {
	n := 0
	for _, res := range results {
		if res.Capped {
			n++
		}
	}
	return n
}
