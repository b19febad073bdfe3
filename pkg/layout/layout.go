// Package layout places the dependency graph on a 2D canvas as ranked
// horizontal layers.
//
// Every node gets a rank - the longest dependency-path length from any
// dependency-free root - and each rank becomes one horizontal layer. Nodes
// within a layer are ordered by name, then ID, and spread evenly across the
// canvas width. The whole computation is a pure function of the graph and
// options: identical snapshots produce byte-identical coordinates, with no
// dependence on map iteration order and no randomness.
package layout

import (
	"sort"

	"github.com/helmward/helmboard/pkg/graph"
)

// Default canvas dimensions, shared by CLI, API and pipeline.
const (
	DefaultCanvasWidth  = 800.0
	DefaultCanvasHeight = 600.0

	// defaultPaddingFrac sizes the default padding as a fraction of the
	// smaller canvas dimension.
	defaultPaddingFrac = 0.05
)

// Options configures the canvas geometry. These are the only recognized
// tunables; everything else about the layout is fixed by the algorithm.
type Options struct {
	CanvasWidth  float64
	CanvasHeight float64
	Padding      float64
}

// SetDefaults fills unset (non-positive) fields with the package defaults.
func (o *Options) SetDefaults() {
	if o.CanvasWidth <= 0 {
		o.CanvasWidth = DefaultCanvasWidth
	}
	if o.CanvasHeight <= 0 {
		o.CanvasHeight = DefaultCanvasHeight
	}
	if o.Padding <= 0 {
		o.Padding = defaultPaddingFrac * min(o.CanvasWidth, o.CanvasHeight)
	}
}

// Placement is the computed position of one node.
type Placement struct {
	Rank int     // layer index, 0 = dependency-free roots
	X    float64 // canvas coordinates
	Y    float64
}

// Layout is the result of one layout pass: canvas dimensions, per-node
// placements, and the layer membership indexed by rank. It is derived,
// ephemeral data - rebuilt wholesale on every snapshot, never mutated.
type Layout struct {
	Width      float64
	Height     float64
	Placements map[string]Placement
	Layers     [][]string // Layers[rank] lists node IDs in layer order
}

// Ranks assigns every node its layer: 0 for nodes with no dependencies,
// otherwise one more than the deepest direct dependency ("longest path from
// any root"). Nodes are processed in the dependencies-first order from
// [graph.TopoOrder], so each rank is computed exactly once.
//
// A cyclic graph has no well-defined ranks; Ranks fails with the
// [*graph.CycleDetectedError] from the ordering step, exactly like the
// cascade engine. It never falls back to rank 0 for an unorderable node.
func Ranks(g *graph.Graph) (map[string]int, error) {
	order, err := graph.TopoOrder(g)
	if err != nil {
		return nil, err
	}

	ranks := make(map[string]int, g.NodeCount())
	for _, id := range order {
		rank := 0
		for _, dep := range g.Dependencies(id) {
			if r := ranks[dep] + 1; r > rank {
				rank = r
			}
		}
		ranks[id] = rank
	}
	return ranks, nil
}

// Compute lays the graph out on the canvas described by opts.
//
// Layers stack top to bottom by increasing rank, with the vertical spacing
// dividing the padded canvas height evenly across ranks. Within a layer,
// nodes are ordered by record name (case-sensitive), with ID as tie-break,
// and centered in equal horizontal slots.
func Compute(g *graph.Graph, opts Options) (*Layout, error) {
	opts.SetDefaults()

	ranks, err := Ranks(g)
	if err != nil {
		return nil, err
	}

	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}

	// Longest-path ranking leaves no empty layers: a node at rank r has a
	// dependency at rank r-1.
	layers := make([][]string, maxRank+1)
	for _, id := range g.IDs() {
		r := ranks[id]
		layers[r] = append(layers[r], id)
	}
	for _, layer := range layers {
		sort.Slice(layer, func(i, j int) bool {
			a, _ := g.Record(layer[i])
			b, _ := g.Record(layer[j])
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		})
	}

	levelSpacing := (opts.CanvasHeight - 2*opts.Padding) / float64(max(maxRank, 1))
	usableWidth := opts.CanvasWidth - 2*opts.Padding

	placements := make(map[string]Placement, g.NodeCount())
	for rank, layer := range layers {
		y := opts.Padding + float64(rank)*levelSpacing
		slot := usableWidth / float64(len(layer))
		for i, id := range layer {
			placements[id] = Placement{
				Rank: rank,
				X:    opts.Padding + (float64(i)+0.5)*slot,
				Y:    y,
			}
		}
	}

	return &Layout{
		Width:      opts.CanvasWidth,
		Height:     opts.CanvasHeight,
		Placements: placements,
		Layers:     layers,
	}, nil
}
