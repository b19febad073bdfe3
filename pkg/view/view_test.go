package view

import (
	"reflect"
	"testing"

	"github.com/helmward/helmboard/pkg/cascade"
	"github.com/helmward/helmboard/pkg/graph"
	"github.com/helmward/helmboard/pkg/layout"
	"github.com/helmward/helmboard/pkg/status"
)

func assembleFixture(t *testing.T) *View {
	t.Helper()
	g, err := graph.Build([]graph.Record{
		{ID: "reactor", Name: "Reactor", OwnStatus: status.Critical, Category: "power", Value: 12, MaxValue: 100, Unit: "MW"},
		{ID: "engines", Name: "Engines", OwnStatus: status.Operational, DependsOn: []string{"reactor"}},
	})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	results, err := cascade.Compute(g)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	l, err := layout.Compute(g, layout.Options{})
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	return Assemble(g, results, l)
}

func TestAssemble(t *testing.T) {
	v := assembleFixture(t)

	if len(v.Nodes) != 2 || len(v.Edges) != 1 {
		t.Fatalf("nodes=%d edges=%d", len(v.Nodes), len(v.Edges))
	}

	engines := v.Node("engines")
	if engines == nil {
		t.Fatal("engines missing from view")
	}
	if engines.EffectiveStatus != status.Critical || !engines.Capped {
		t.Errorf("engines derived = %s capped=%v", engines.EffectiveStatus, engines.Capped)
	}
	if engines.Rank != 1 {
		t.Errorf("engines rank = %d, want 1", engines.Rank)
	}

	reactor := v.Node("reactor")
	if reactor.Capped {
		t.Error("reactor is the cause, not capped")
	}
	// Pass-through fields survive.
	if reactor.Category != "power" || reactor.Value != 12 || reactor.MaxValue != 100 || reactor.Unit != "MW" {
		t.Errorf("pass-through fields dropped: %+v", reactor)
	}

	// Edge oriented dependency -> dependent, carrying the child's flag.
	e := v.Edges[0]
	if e.From != "reactor" || e.To != "engines" || !e.Capped {
		t.Errorf("edge = %+v", e)
	}

	if !reflect.DeepEqual(v.Layers[0], []string{"reactor"}) || !reflect.DeepEqual(v.Layers[1], []string{"engines"}) {
		t.Errorf("layers = %v", v.Layers)
	}
}

func TestConnector(t *testing.T) {
	v := assembleFixture(t)
	p, ok := v.Connector(v.Edges[0])
	if !ok {
		t.Fatal("Connector should resolve both endpoints")
	}
	reactor, engines := v.Node("reactor"), v.Node("engines")
	if p.Start.X != reactor.X || p.Start.Y != reactor.Y {
		t.Errorf("curve start %+v != reactor position", p.Start)
	}
	if p.End.X != engines.X || p.End.Y != engines.Y {
		t.Errorf("curve end %+v != engines position", p.End)
	}

	if _, ok := v.Connector(Edge{From: "reactor", To: "ghost"}); ok {
		t.Error("Connector should fail on a missing endpoint")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	v := assembleFixture(t)
	data, err := MarshalView(v)
	if err != nil {
		t.Fatalf("MarshalView error: %v", err)
	}
	back, err := UnmarshalView(data)
	if err != nil {
		t.Fatalf("UnmarshalView error: %v", err)
	}
	if !reflect.DeepEqual(v, back) {
		t.Error("round trip changed the view")
	}

	// Deterministic bytes for identical passes.
	again, err := MarshalView(assembleFixture(t))
	if err != nil {
		t.Fatalf("MarshalView error: %v", err)
	}
	if string(data) != string(again) {
		t.Error("identical snapshots must marshal to identical bytes")
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalView([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
