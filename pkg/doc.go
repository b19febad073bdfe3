// Package pkg provides the core libraries for Helmboard subsystem health
// dashboards.
//
// # Overview
//
// Helmboard tracks the operational status of subsystems aboard a simulated
// vessel. Subsystems depend on other subsystems, and damage cascades along
// those edges: a subsystem can never be healthier than the things it depends
// on. The pkg directory is organized around that pipeline:
//
//  1. [status] - The seven-step health scale and its total order
//  2. [graph] - Dependency graph construction, validation, cycle detection
//  3. [cascade] - Effective-status computation along the graph
//  4. [layout] - Layered layout and connector geometry for the dashboard
//  5. [view] - The serialized view model the front end renders
//  6. [pipeline] - Orchestration shared by CLI and server, with caching
//
// # Architecture
//
// The typical data flow through Helmboard:
//
//	Subsystem Records (store snapshot)
//	         ↓
//	    [graph] package (build + validate + topological order)
//	         ↓
//	    [cascade] package (effective statuses, capped flags)
//	         ↓
//	    [layout] package (ranks, coordinates, connector curves)
//	         ↓
//	    [view] package (assembled view model)
//	         ↓
//	    JSON / SVG / DOT output
//
// # Quick Start
//
// Compute a dashboard view from a set of records:
//
//	import (
//	    "github.com/helmward/helmboard/pkg/cascade"
//	    "github.com/helmward/helmboard/pkg/graph"
//	    "github.com/helmward/helmboard/pkg/layout"
//	    "github.com/helmward/helmboard/pkg/view"
//	)
//
//	g, _ := graph.Build(records)
//	results, _ := cascade.Compute(g)
//	l, _ := layout.Compute(g, layout.Options{})
//	v := view.Assemble(g, results, l)
//
// # Supporting Packages
//
// [store] - Snapshot access to the subsystem record store (memory and
// MongoDB backends). Every computation pass runs over exactly one snapshot.
//
// [cache] - Content-keyed view caching (file, Redis, null backends).
//
// [render] - SVG and Graphviz DOT rendering of computed views.
//
// [errors] - Structured errors with machine-readable codes for the CLI and
// API boundaries.
//
// [observability] - Hook interfaces for instrumenting pipeline stages, store
// fetches, and cache operations without hard backend dependencies.
//
// [buildinfo] - Build-time version information set via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/cascade/...  # Specific package
//
// [status]: https://pkg.go.dev/github.com/helmward/helmboard/pkg/status
// [graph]: https://pkg.go.dev/github.com/helmward/helmboard/pkg/graph
// [cascade]: https://pkg.go.dev/github.com/helmward/helmboard/pkg/cascade
// [layout]: https://pkg.go.dev/github.com/helmward/helmboard/pkg/layout
// [view]: https://pkg.go.dev/github.com/helmward/helmboard/pkg/view
// [pipeline]: https://pkg.go.dev/github.com/helmward/helmboard/pkg/pipeline
// [store]: https://pkg.go.dev/github.com/helmward/helmboard/pkg/store
// [cache]: https://pkg.go.dev/github.com/helmward/helmboard/pkg/cache
// [render]: https://pkg.go.dev/github.com/helmward/helmboard/pkg/render
// [errors]: https://pkg.go.dev/github.com/helmward/helmboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/helmward/helmboard/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/helmward/helmboard/pkg/buildinfo
package pkg
