package graph

import "github.com/helmward/helmboard/pkg/status"

// Record is one subsystem as delivered by the data store.
//
// OwnStatus is the subsystem's directly declared status, independent of its
// dependencies. DependsOn lists the IDs of subsystems this one requires.
// Category, Value, MaxValue and Unit are pass-through fields the engine
// ignores but re-exposes to the rendering layer.
type Record struct {
	ID        string        `json:"id" bson:"id"`
	Name      string        `json:"name" bson:"name"`
	OwnStatus status.Status `json:"own_status" bson:"own_status"`
	DependsOn []string      `json:"depends_on,omitempty" bson:"depends_on,omitempty"`

	Category string  `json:"category,omitempty" bson:"category,omitempty"`
	Value    float64 `json:"value,omitempty" bson:"value,omitempty"`
	MaxValue float64 `json:"max_value,omitempty" bson:"max_value,omitempty"`
	Unit     string  `json:"unit,omitempty" bson:"unit,omitempty"`
}

// Graph is an in-memory dependency graph over one snapshot of subsystem
// records. It is built once per snapshot via [Build] and is read-only for
// the lifetime of the computation pass - no mutation methods exist.
//
// Alongside the forward depends-on edges, Build precomputes the reverse
// adjacency (dependents of each node) in O(V+E) so both directions are
// cheap to walk.
type Graph struct {
	records    map[string]*Record
	order      []string            // node IDs in stable input order
	dependents map[string][]string // id -> IDs that declare a dependency on it
}

// Build constructs a Graph from a flat snapshot of subsystem records.
//
// It fails with ErrInvalidNodeID or ErrDuplicateNodeID for malformed IDs,
// with [*SelfDependencyError] when a record lists itself, and with
// [*UnknownDependencyError] when a DependsOn entry references an ID absent
// from the snapshot. Dangling references are reported, never dropped:
// silently pruning an edge would change cascade results invisibly.
//
// Build does not check for cycles - that is [TopoOrder]'s job, which keeps
// cycle detection a first-class, separately testable step.
func Build(records []Record) (*Graph, error) {
	g := &Graph{
		records:    make(map[string]*Record, len(records)),
		order:      make([]string, 0, len(records)),
		dependents: make(map[string][]string, len(records)),
	}

	for i := range records {
		r := records[i]
		if r.ID == "" {
			return nil, ErrInvalidNodeID
		}
		if _, exists := g.records[r.ID]; exists {
			return nil, ErrDuplicateNodeID
		}
		g.records[r.ID] = &r
		g.order = append(g.order, r.ID)
	}

	for _, id := range g.order {
		for _, dep := range g.records[id].DependsOn {
			if dep == id {
				return nil, &SelfDependencyError{NodeID: id}
			}
			if _, ok := g.records[dep]; !ok {
				return nil, &UnknownDependencyError{NodeID: id, MissingID: dep}
			}
			g.dependents[dep] = append(g.dependents[dep], id)
		}
	}

	return g, nil
}

// IDs returns all node IDs in stable input order.
// The returned slice is a copy and can be modified freely.
func (g *Graph) IDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Record returns the record for id, or nil and false if not found.
// The returned pointer refers to graph-owned data and must not be mutated.
func (g *Graph) Record(id string) (*Record, bool) {
	r, ok := g.records[id]
	return r, ok
}

// Dependencies returns the IDs this node directly depends on, in declaration
// order. Returns nil for roots or unknown IDs. Read-only view.
func (g *Graph) Dependencies(id string) []string {
	if r, ok := g.records[id]; ok {
		return r.DependsOn
	}
	return nil
}

// Dependents returns the IDs that directly depend on this node (reverse
// edges, precomputed at build time). The order follows the input order of
// the declaring records. Read-only view.
func (g *Graph) Dependents(id string) []string {
	return g.dependents[id]
}

// Roots returns the IDs of nodes with no dependencies, in input order.
// These form rank 0 of the layered layout.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.order {
		if len(g.records[id].DependsOn) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.records) }

// EdgeCount returns the number of depends-on edges in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, id := range g.order {
		n += len(g.records[id].DependsOn)
	}
	return n
}
