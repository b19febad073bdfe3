package layout

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/helmward/helmboard/pkg/graph"
	"github.com/helmward/helmboard/pkg/status"
)

func mustBuild(t *testing.T, records []graph.Record) *graph.Graph {
	t.Helper()
	g, err := graph.Build(records)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return g
}

func TestRanksLongestPath(t *testing.T) {
	g := mustBuild(t, []graph.Record{
		{ID: "A", Name: "A", OwnStatus: status.Operational},
		{ID: "B", Name: "B", OwnStatus: status.Operational, DependsOn: []string{"A"}},
		{ID: "C", Name: "C", OwnStatus: status.Operational, DependsOn: []string{"B"}},
		// D depends on both a rank-0 and a rank-1 node; longest path wins.
		{ID: "D", Name: "D", OwnStatus: status.Operational, DependsOn: []string{"A", "B"}},
	})

	ranks, err := Ranks(g)
	if err != nil {
		t.Fatalf("Ranks error: %v", err)
	}
	want := map[string]int{"A": 0, "B": 1, "C": 2, "D": 2}
	if !reflect.DeepEqual(ranks, want) {
		t.Errorf("Ranks = %v, want %v", ranks, want)
	}

	// Every depends-on edge points at a strictly lower rank.
	for _, id := range g.IDs() {
		for _, dep := range g.Dependencies(id) {
			if ranks[id] <= ranks[dep] {
				t.Errorf("rank(%s)=%d not above rank(%s)=%d", id, ranks[id], dep, ranks[dep])
			}
		}
	}
}

func TestRanksFailOnCycle(t *testing.T) {
	g := mustBuild(t, []graph.Record{
		{ID: "a", OwnStatus: status.Operational, DependsOn: []string{"b"}},
		{ID: "b", OwnStatus: status.Operational, DependsOn: []string{"a"}},
	})
	_, err := Ranks(g)
	var cyc *graph.CycleDetectedError
	if !errors.As(err, &cyc) {
		t.Fatalf("expected CycleDetectedError, got %v", err)
	}
}

func TestComputeCoordinates(t *testing.T) {
	g := mustBuild(t, []graph.Record{
		{ID: "root", Name: "Root", OwnStatus: status.Operational},
		{ID: "l1", Name: "Alpha", OwnStatus: status.Operational, DependsOn: []string{"root"}},
		{ID: "l2", Name: "Beta", OwnStatus: status.Operational, DependsOn: []string{"root"}},
	})

	opts := Options{CanvasWidth: 1000, CanvasHeight: 500, Padding: 50}
	l, err := Compute(g, opts)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	if l.Width != 1000 || l.Height != 500 {
		t.Errorf("canvas = %gx%g", l.Width, l.Height)
	}

	// maxRank = 1: levelSpacing = (500-100)/1 = 400.
	root := l.Placements["root"]
	if root.Rank != 0 || root.Y != 50 {
		t.Errorf("root placement = %+v", root)
	}
	// Single node in layer 0 centers at padding + 0.5*900 = 500.
	if root.X != 500 {
		t.Errorf("root.X = %g, want 500", root.X)
	}

	// Layer 1 ordered by name: Alpha before Beta.
	if !reflect.DeepEqual(l.Layers[1], []string{"l1", "l2"}) {
		t.Errorf("layer 1 = %v", l.Layers[1])
	}
	alpha, beta := l.Placements["l1"], l.Placements["l2"]
	if alpha.Y != 450 || beta.Y != 450 {
		t.Errorf("layer 1 y = %g, %g, want 450", alpha.Y, beta.Y)
	}
	// Two slots of 450 each: centers at 50+225=275 and 50+675=725.
	if alpha.X != 275 || beta.X != 725 {
		t.Errorf("layer 1 x = %g, %g, want 275, 725", alpha.X, beta.X)
	}
}

func TestComputeOrdersByNameThenID(t *testing.T) {
	g := mustBuild(t, []graph.Record{
		{ID: "z", Name: "Pump", OwnStatus: status.Operational},
		{ID: "a", Name: "Pump", OwnStatus: status.Operational},
		{ID: "m", Name: "Filter", OwnStatus: status.Operational},
	})

	l, err := Compute(g, Options{})
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	// Name sorts first (case-sensitive); equal names fall back to ID.
	if !reflect.DeepEqual(l.Layers[0], []string{"m", "a", "z"}) {
		t.Errorf("layer 0 = %v, want [m a z]", l.Layers[0])
	}
}

func TestComputeDeterministic(t *testing.T) {
	records := []graph.Record{
		{ID: "r1", Name: "Reactor", OwnStatus: status.Operational},
		{ID: "r2", Name: "Backup Reactor", OwnStatus: status.Degraded},
		{ID: "e", Name: "Engines", OwnStatus: status.Operational, DependsOn: []string{"r1", "r2"}},
		{ID: "h", Name: "Helm", OwnStatus: status.Operational, DependsOn: []string{"e"}},
		{ID: "s", Name: "Sensors", OwnStatus: status.Operational, DependsOn: []string{"r1"}},
	}

	first, err := Compute(mustBuild(t, records), Options{})
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	second, err := Compute(mustBuild(t, records), Options{})
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical snapshots must produce identical layouts")
	}
}

func TestComputeSingleRankUsesFullSpacingDivisor(t *testing.T) {
	// maxRank 0 must not divide by zero: spacing uses max(maxRank, 1).
	g := mustBuild(t, []graph.Record{
		{ID: "only", Name: "Only", OwnStatus: status.Operational},
	})
	l, err := Compute(g, Options{CanvasWidth: 100, CanvasHeight: 100, Padding: 10})
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	p := l.Placements["only"]
	if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
		t.Fatalf("Y = %v", p.Y)
	}
	if p.Y != 10 {
		t.Errorf("single layer sits at top padding, got %g", p.Y)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o.CanvasWidth != DefaultCanvasWidth || o.CanvasHeight != DefaultCanvasHeight {
		t.Errorf("defaults = %gx%g", o.CanvasWidth, o.CanvasHeight)
	}
	if o.Padding != 0.05*DefaultCanvasHeight {
		t.Errorf("default padding = %g, want 5%% of min dimension", o.Padding)
	}
}

func TestCurveVerticalTangents(t *testing.T) {
	from := Point{X: 100, Y: 50}
	to := Point{X: 400, Y: 450}
	p := Curve(from, to)

	if p.Start != from || p.End != to {
		t.Errorf("endpoints moved: %+v", p)
	}
	// Vertical departure/arrival: control points keep their endpoint's x.
	if p.Ctrl1.X != from.X || p.Ctrl2.X != to.X {
		t.Errorf("control x = %g, %g", p.Ctrl1.X, p.Ctrl2.X)
	}
	if p.Ctrl1.Y != 250 || p.Ctrl2.Y != 250 {
		t.Errorf("control y = %g, %g, want midpoint 250", p.Ctrl1.Y, p.Ctrl2.Y)
	}
}

func TestCurveSVG(t *testing.T) {
	p := Curve(Point{X: 1, Y: 2}, Point{X: 3, Y: 4})
	want := "M 1 2 C 1 3, 3 3, 3 4"
	if got := p.SVG(); got != want {
		t.Errorf("SVG = %q, want %q", got, want)
	}
}
