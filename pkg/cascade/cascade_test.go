package cascade

import (
	"errors"
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

func TestComputeChainCascade(t *testing.T) {
	// A destroyed root drags its whole dependent chain down.
	g := mustBuild(t, []graph.Record{
		{ID: "A", OwnStatus: status.Destroyed},
		{ID: "B", OwnStatus: status.Operational, DependsOn: []string{"A"}},
		{ID: "C", OwnStatus: status.Operational, DependsOn: []string{"B"}},
	})

	results, err := Compute(g)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	tests := []struct {
		id     string
		want   status.Status
		capped bool
	}{
		{"A", status.Destroyed, false},
		{"B", status.Destroyed, true},
		{"C", status.Destroyed, true},
	}
	for _, tt := range tests {
		got := results[tt.id]
		if got.Effective != tt.want {
			t.Errorf("effective(%s) = %s, want %s", tt.id, got.Effective, tt.want)
		}
		if got.Capped != tt.capped {
			t.Errorf("capped(%s) = %v, want %v", tt.id, got.Capped, tt.capped)
		}
	}
}

func TestComputeWorstOfSeveralDependencies(t *testing.T) {
	g := mustBuild(t, []graph.Record{
		{ID: "A", OwnStatus: status.Degraded},
		{ID: "B", OwnStatus: status.Critical},
		{ID: "D", OwnStatus: status.Operational, DependsOn: []string{"A", "B"}},
	})

	results, err := Compute(g)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if got := results["D"].Effective; got != status.Critical {
		t.Errorf("effective(D) = %s, want critical (worst of degraded, critical)", got)
	}
	if !results["D"].Capped {
		t.Error("D should be capped")
	}
}

func TestComputeNeverImproves(t *testing.T) {
	// A healthy dependency must not lift a sick dependent.
	g := mustBuild(t, []graph.Record{
		{ID: "core", OwnStatus: status.FullyOperational},
		{ID: "hull", OwnStatus: status.Compromised, DependsOn: []string{"core"}},
	})

	results, err := Compute(g)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if got := results["hull"].Effective; got != status.Compromised {
		t.Errorf("effective(hull) = %s, want compromised", got)
	}
	if results["hull"].Capped {
		t.Error("hull keeps its own status and must not be capped")
	}
}

func TestComputeEffectiveNeverAboveOwn(t *testing.T) {
	g := mustBuild(t, []graph.Record{
		{ID: "a", OwnStatus: status.Offline},
		{ID: "b", OwnStatus: status.Degraded, DependsOn: []string{"a"}},
		{ID: "c", OwnStatus: status.Destroyed, DependsOn: []string{"b"}},
		{ID: "d", OwnStatus: status.Operational, DependsOn: []string{"c", "a"}},
	})

	results, err := Compute(g)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	for _, id := range g.IDs() {
		rec, _ := g.Record(id)
		res := results[id]
		if status.Worse(rec.OwnStatus, res.Effective) {
			t.Errorf("effective(%s)=%s is better than own %s", id, res.Effective, rec.OwnStatus)
		}
		if res.Capped != (res.Effective != rec.OwnStatus) {
			t.Errorf("capped(%s) inconsistent with effective/own", id)
		}
	}
}

func TestComputeMonotonicity(t *testing.T) {
	build := func(root status.Status) map[string]Result {
		g := mustBuild(t, []graph.Record{
			{ID: "root", OwnStatus: root},
			{ID: "mid", OwnStatus: status.Operational, DependsOn: []string{"root"}},
			{ID: "leaf", OwnStatus: status.Degraded, DependsOn: []string{"mid"}},
		})
		results, err := Compute(g)
		if err != nil {
			t.Fatalf("Compute error: %v", err)
		}
		return results
	}

	healthy := build(status.Operational)
	sick := build(status.Critical)

	// Worsening an ancestor may only keep descendants equal or worsen them.
	for _, id := range []string{"mid", "leaf"} {
		if status.Worse(healthy[id].Effective, sick[id].Effective) {
			t.Errorf("worsening the root improved %s: %s -> %s",
				id, healthy[id].Effective, sick[id].Effective)
		}
	}

	// And improving it back may only keep them equal or improve them.
	recovered := build(status.FullyOperational)
	for _, id := range []string{"mid", "leaf"} {
		if status.Worse(recovered[id].Effective, healthy[id].Effective) {
			t.Errorf("improving the root worsened %s", id)
		}
	}
}

func TestComputeEdgeRemovalNeverWorsens(t *testing.T) {
	withEdge := mustBuild(t, []graph.Record{
		{ID: "bad", OwnStatus: status.Critical},
		{ID: "node", OwnStatus: status.Operational, DependsOn: []string{"bad"}},
	})
	withoutEdge := mustBuild(t, []graph.Record{
		{ID: "bad", OwnStatus: status.Critical},
		{ID: "node", OwnStatus: status.Operational},
	})

	before, err := Compute(withEdge)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	after, err := Compute(withoutEdge)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if status.Worse(after["node"].Effective, before["node"].Effective) {
		t.Errorf("removing an edge worsened node: %s -> %s",
			before["node"].Effective, after["node"].Effective)
	}
}

func TestComputeFailsOnCycle(t *testing.T) {
	g := mustBuild(t, []graph.Record{
		{ID: "a", OwnStatus: status.Operational, DependsOn: []string{"b"}},
		{ID: "b", OwnStatus: status.Operational, DependsOn: []string{"a"}},
	})

	results, err := Compute(g)
	var cyc *graph.CycleDetectedError
	if !errors.As(err, &cyc) {
		t.Fatalf("expected CycleDetectedError, got %v", err)
	}
	if results != nil {
		t.Error("Compute must not return partial results for a cyclic graph")
	}
}
