// Package graph builds the subsystem dependency graph and guards its
// traversals against cycles.
//
// A snapshot of subsystem records becomes an immutable [Graph] via [Build],
// which validates every depends-on reference up front: dangling references
// and self-references are reported as typed errors instead of being pruned,
// because a silently-repaired graph would cascade wrong answers downstream.
//
// # Traversal
//
// [TopoOrder] produces a deterministic dependencies-first ordering using
// Kahn's algorithm and is the single cycle gate for the whole engine: the
// cascade and layout engines both refuse to run on a graph TopoOrder cannot
// fully order. [Traverse] offers a depth-first walk that tracks the active
// recursion path, so it can tell a genuine cycle apart from a node merely
// finished on an earlier branch.
//
// # Errors
//
// Cycles surface as [*CycleDetectedError] carrying the full witness path
// (first and last IDs equal). These are data-integrity failures of the
// snapshot, not transient conditions: callers must fail the computation
// pass and surface the path to whoever edits dependency data.
package graph
