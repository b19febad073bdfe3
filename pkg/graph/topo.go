package graph

import "errors"

// TopoOrder returns a topological ordering of the graph's node IDs with
// every dependency placed before its dependents (roots first).
//
// The ordering is computed with Kahn's algorithm over a FIFO queue seeded in
// input order, so the result is deterministic for a fixed snapshot. When the
// graph contains a cycle, not every node can be ordered; in that case a
// deterministic depth-first search extracts one witness cycle and TopoOrder
// fails with [*CycleDetectedError] carrying the full cyclic path. It never
// returns a partial ordering.
//
// Runs in O(V+E) time.
func TopoOrder(g *Graph) ([]string, error) {
	remaining := make(map[string]int, g.NodeCount())
	queue := make([]string, 0, g.NodeCount())

	for _, id := range g.order {
		deps := len(g.records[id].DependsOn)
		remaining[id] = deps
		if deps == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, g.NodeCount())
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)

		for _, dep := range g.dependents[curr] {
			remaining[dep]--
			if remaining[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) < g.NodeCount() {
		return nil, &CycleDetectedError{Path: findCycle(g)}
	}
	return order, nil
}

// Traverse walks the depends-on edges depth-first from startID, calling
// visit once per reachable node in pre-order. Unlike a plain visited-set
// walk, Traverse tracks the active recursion path, so reaching a node that
// is already on the current path is distinguishable from re-reaching a node
// finished on an earlier branch: the former fails with
// [*CycleDetectedError] carrying the cyclic path, the latter is skipped.
//
// A non-nil error from visit aborts the traversal and is returned as-is.
func Traverse(g *Graph, startID string, visit func(id string) error) error {
	state := newWalkState(g.NodeCount())
	return state.walk(g, startID, visit)
}

// walkState carries DFS coloring shared across walk calls.
type walkState struct {
	color  map[string]int
	parent map[string]string
}

const (
	colorWhite = iota // unvisited
	colorGray         // on the active recursion path
	colorBlack        // finished
)

func newWalkState(size int) *walkState {
	return &walkState{
		color:  make(map[string]int, size),
		parent: make(map[string]string, size),
	}
}

func (w *walkState) walk(g *Graph, id string, visit func(string) error) error {
	w.color[id] = colorGray
	if visit != nil {
		if err := visit(id); err != nil {
			return err
		}
	}
	for _, dep := range g.Dependencies(id) {
		switch w.color[dep] {
		case colorWhite:
			w.parent[dep] = id
			if err := w.walk(g, dep, visit); err != nil {
				return err
			}
		case colorGray:
			return &CycleDetectedError{Path: w.cyclePath(id, dep)}
		}
	}
	w.color[id] = colorBlack
	return nil
}

// cyclePath reconstructs the witness cycle closed by the back edge from->to.
// Walking parent links from `from` back up the active path reaches `to`;
// reversing that chain and closing the loop yields a path along depends-on
// edges that starts and ends with the same ID: to -> ... -> from -> to.
func (w *walkState) cyclePath(from, to string) []string {
	var chain []string
	for cur := from; ; cur = w.parent[cur] {
		chain = append(chain, cur)
		if cur == to {
			break
		}
	}
	path := make([]string, len(chain)+1)
	for i, id := range chain {
		path[len(chain)-1-i] = id
	}
	path[len(chain)] = to
	return path
}

// findCycle locates one cycle in a graph already known to be cyclic.
// Nodes are tried in input order, so the witness is deterministic.
func findCycle(g *Graph) []string {
	state := newWalkState(g.NodeCount())
	for _, id := range g.order {
		if state.color[id] != colorWhite {
			continue
		}
		if err := state.walk(g, id, nil); err != nil {
			var cyc *CycleDetectedError
			if errors.As(err, &cyc) {
				return cyc.Path
			}
		}
	}
	return nil
}
