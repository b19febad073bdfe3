// Package view defines the serialization format handed to the rendering
// layer (the dashboard front end).
//
// A View is the complete derived output of one computation pass: canvas
// dimensions, one node per subsystem with its effective status and layout
// position, one edge per depends-on entry, and the layer membership. It is
// transient data - rebuilt wholesale for every snapshot and never persisted
// by the engine. The format is JSON- and BSON-tagged for API responses and
// result caching, and marshaling is deterministic: nodes sort by ID, edges
// follow input order.
package view

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/helmward/helmboard/pkg/cascade"
	"github.com/helmward/helmboard/pkg/graph"
	"github.com/helmward/helmboard/pkg/layout"
	"github.com/helmward/helmboard/pkg/status"
)

// Node is one subsystem with its derived status and position.
// The Category/Value/MaxValue/Unit fields pass through from the store
// untouched; the engine ignores them but must not drop them.
type Node struct {
	ID       string  `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Category string  `json:"category,omitempty" bson:"category,omitempty"`
	Value    float64 `json:"value,omitempty" bson:"value,omitempty"`
	MaxValue float64 `json:"max_value,omitempty" bson:"max_value,omitempty"`
	Unit     string  `json:"unit,omitempty" bson:"unit,omitempty"`

	OwnStatus       status.Status `json:"own_status" bson:"own_status"`
	EffectiveStatus status.Status `json:"effective_status" bson:"effective_status"`
	Capped          bool          `json:"capped,omitempty" bson:"capped,omitempty"`

	Rank int     `json:"rank" bson:"rank"`
	X    float64 `json:"x" bson:"x"`
	Y    float64 `json:"y" bson:"y"`
}

// Edge is one depends-on relation, oriented from the dependency (lower
// rank) to the dependent. Capped mirrors the dependent's capped flag and
// exists purely for edge styling.
type Edge struct {
	From   string `json:"from" bson:"from"`
	To     string `json:"to" bson:"to"`
	Capped bool   `json:"capped,omitempty" bson:"capped,omitempty"`
}

// View is the full derived output of one computation pass.
type View struct {
	SnapshotID string    `json:"snapshot_id,omitempty" bson:"snapshot_id,omitempty"`
	ComputedAt time.Time `json:"computed_at,omitempty" bson:"computed_at,omitempty"`

	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Nodes  []Node           `json:"nodes" bson:"nodes"`
	Edges  []Edge           `json:"edges" bson:"edges"`
	Layers map[int][]string `json:"layers,omitempty" bson:"layers,omitempty"`
}

// Assemble combines the outputs of the cascade and layout engines into a
// View. Nodes are sorted by ID and edges follow the snapshot's input order,
// so assembly is deterministic for a fixed snapshot.
func Assemble(g *graph.Graph, results map[string]cascade.Result, l *layout.Layout) *View {
	v := &View{
		Width:  l.Width,
		Height: l.Height,
		Nodes:  make([]Node, 0, g.NodeCount()),
		Edges:  make([]Edge, 0, g.EdgeCount()),
		Layers: make(map[int][]string, len(l.Layers)),
	}

	for _, id := range g.IDs() {
		rec, _ := g.Record(id)
		res := results[id]
		place := l.Placements[id]
		v.Nodes = append(v.Nodes, Node{
			ID:              rec.ID,
			Name:            rec.Name,
			Category:        rec.Category,
			Value:           rec.Value,
			MaxValue:        rec.MaxValue,
			Unit:            rec.Unit,
			OwnStatus:       rec.OwnStatus,
			EffectiveStatus: res.Effective,
			Capped:          res.Capped,
			Rank:            place.Rank,
			X:               place.X,
			Y:               place.Y,
		})

		for _, dep := range g.Dependencies(id) {
			v.Edges = append(v.Edges, Edge{From: dep, To: id, Capped: res.Capped})
		}
	}

	sort.Slice(v.Nodes, func(i, j int) bool { return v.Nodes[i].ID < v.Nodes[j].ID })

	for rank, layer := range l.Layers {
		v.Layers[rank] = append([]string(nil), layer...)
	}

	return v
}

// Node returns the node with the given ID, or nil if absent.
func (v *View) Node(id string) *Node {
	i := sort.Search(len(v.Nodes), func(i int) bool { return v.Nodes[i].ID >= id })
	if i < len(v.Nodes) && v.Nodes[i].ID == id {
		return &v.Nodes[i]
	}
	return nil
}

// Connector derives the drawable curve for an edge from the laid-out
// positions of its endpoints. Returns false if either endpoint is missing
// from the view.
func (v *View) Connector(e Edge) (layout.Path, bool) {
	from := v.Node(e.From)
	to := v.Node(e.To)
	if from == nil || to == nil {
		return layout.Path{}, false
	}
	return layout.Curve(
		layout.Point{X: from.X, Y: from.Y},
		layout.Point{X: to.X, Y: to.Y},
	), true
}

// MarshalView serializes a View to pretty-printed JSON bytes.
func MarshalView(v *View) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// UnmarshalView deserializes JSON bytes into a View.
func UnmarshalView(data []byte) (*View, error) {
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal view: %w", err)
	}
	return &v, nil
}

// WriteViewFile writes a View to a JSON file.
func WriteViewFile(v *View, path string) error {
	data, err := MarshalView(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadViewFile reads a View from a JSON file.
func ReadViewFile(path string) (*View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalView(data)
}
