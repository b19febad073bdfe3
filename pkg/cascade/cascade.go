// Package cascade derives the effective health status of every subsystem by
// propagating the worst status found anywhere upstream in its dependency
// chain.
//
// A subsystem's effective status can never be better than its own declared
// status: cascading only ever drags a node down the scale. Nodes whose
// effective status differs from their declared one are flagged as capped,
// which the rendering layer uses to show that a subsystem is being held back
// by something it depends on.
package cascade

import (
	"github.com/helmward/helmboard/pkg/graph"
	"github.com/helmward/helmboard/pkg/status"
)

// Result is the derived status for one subsystem.
type Result struct {
	// Effective is the worst status found along any dependency path
	// reachable from the node, including the node itself.
	Effective status.Status

	// Capped is true when Effective is worse than the node's own declared
	// status, i.e. a dependency is dragging it down.
	Capped bool
}

// Compute derives the effective status of every node in the graph.
//
// Nodes are processed in topological order (dependencies first), so each
// node's effective status is the ordinal minimum of its own status and the
// already-final effective statuses of its direct dependencies. Every node is
// computed exactly once; the whole pass is O(V+E).
//
// A cyclic graph has no well-defined cascade: Compute fails with the
// [*graph.CycleDetectedError] from [graph.TopoOrder] and returns no partial
// results, so a plausible-looking but wrong answer can never reach an
// operator.
func Compute(g *graph.Graph) (map[string]Result, error) {
	order, err := graph.TopoOrder(g)
	if err != nil {
		return nil, err
	}

	results := make(map[string]Result, g.NodeCount())
	for _, id := range order {
		rec, _ := g.Record(id)
		effective := rec.OwnStatus
		for _, dep := range g.Dependencies(id) {
			effective = status.Worst(effective, results[dep].Effective)
		}
		results[id] = Result{
			Effective: effective,
			Capped:    effective != rec.OwnStatus,
		}
	}
	return results, nil
}
