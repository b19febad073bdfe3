package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/helmward/helmboard/pkg/status"
	"github.com/helmward/helmboard/pkg/view"
)

const fixtureJSON = `[
  {"id": "reactor", "name": "Reactor", "own_status": "critical"},
  {"id": "engines", "name": "Main Engines", "own_status": "operational", "depends_on": ["reactor"]},
  {"id": "helm", "name": "Helm Control", "own_status": "operational", "depends_on": ["engines"]}
]`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subsystems.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func testCLI() *CLI {
	return New(io.Discard, log.InfoLevel)
}

func TestRunCompute(t *testing.T) {
	c := testCLI()
	input := writeFixture(t, fixtureJSON)
	output := filepath.Join(filepath.Dir(input), "out.view.json")

	opts := &computeOpts{output: output, noCache: true}
	if err := c.runCompute(context.Background(), input, opts); err != nil {
		t.Fatalf("runCompute() error = %v", err)
	}

	v, err := view.ReadViewFile(output)
	if err != nil {
		t.Fatalf("ReadViewFile() error = %v", err)
	}
	if len(v.Nodes) != 3 {
		t.Errorf("len(Nodes) = %d, want 3", len(v.Nodes))
	}
	helm := v.Node("helm")
	if helm == nil || helm.EffectiveStatus != status.Critical || !helm.Capped {
		t.Errorf("helm = %+v, want capped critical", helm)
	}
}

func TestRunComputeDefaultOutput(t *testing.T) {
	c := testCLI()
	input := writeFixture(t, fixtureJSON)

	opts := &computeOpts{noCache: true}
	if err := c.runCompute(context.Background(), input, opts); err != nil {
		t.Fatalf("runCompute() error = %v", err)
	}

	expected := strings.TrimSuffix(input, ".json") + ".view.json"
	if _, err := os.Stat(expected); err != nil {
		t.Errorf("derived output %s not written: %v", expected, err)
	}
}

func TestRunComputeCycleFails(t *testing.T) {
	c := testCLI()
	input := writeFixture(t, `[
  {"id": "a", "name": "A", "own_status": "operational", "depends_on": ["b"]},
  {"id": "b", "name": "B", "own_status": "operational", "depends_on": ["a"]}
]`)

	opts := &computeOpts{noCache: true}
	err := c.runCompute(context.Background(), input, opts)
	if err == nil {
		t.Fatal("runCompute() should fail on a cyclic records file")
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Errorf("error = %v, want cycle mention", err)
	}
}

func TestRunRenderFormats(t *testing.T) {
	tests := []struct {
		format   string
		wantExt  string
		contains string
	}{
		{formatSVG, ".svg", "<svg"},
		{formatDOT, ".dot", "digraph"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			c := testCLI()
			input := writeFixture(t, fixtureJSON)
			output := filepath.Join(filepath.Dir(input), "out"+tt.wantExt)

			opts := &renderOpts{format: tt.format, output: output, noCache: true}
			if err := c.runRender(context.Background(), input, opts); err != nil {
				t.Fatalf("runRender() error = %v", err)
			}

			data, err := os.ReadFile(output)
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			if !strings.Contains(string(data), tt.contains) {
				t.Errorf("output does not contain %q", tt.contains)
			}
		})
	}
}

func TestRunRenderPrecomputedView(t *testing.T) {
	c := testCLI()
	input := writeFixture(t, fixtureJSON)
	viewPath := strings.TrimSuffix(input, ".json") + ".view.json"

	if err := c.runCompute(context.Background(), input, &computeOpts{noCache: true}); err != nil {
		t.Fatalf("runCompute() error = %v", err)
	}

	output := filepath.Join(filepath.Dir(input), "from_view.svg")
	opts := &renderOpts{format: formatSVG, output: output, noCache: true}
	if err := c.runRender(context.Background(), viewPath, opts); err != nil {
		t.Fatalf("runRender() from view error = %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{formatSVG, formatDOT, formatGraphviz} {
		if err := validateFormat(f); err != nil {
			t.Errorf("validateFormat(%q) = %v", f, err)
		}
	}
	if err := validateFormat("png"); err == nil {
		t.Error("validateFormat(png) should fail")
	}
}

func TestOutputFor(t *testing.T) {
	tests := []struct {
		input, format, want string
	}{
		{"deck.json", formatSVG, "deck.svg"},
		{"deck.json", formatDOT, "deck.dot"},
		{"deck.json", formatGraphviz, "deck.svg"},
		{"deck.view.json", formatSVG, "deck.svg"},
	}
	for _, tt := range tests {
		if got := outputFor(tt.input, tt.format); got != tt.want {
			t.Errorf("outputFor(%q, %q) = %q, want %q", tt.input, tt.format, got, tt.want)
		}
	}
}

func TestRootCommand(t *testing.T) {
	c := testCLI()
	root := c.RootCommand()

	if root.Use != "helmboard" {
		t.Errorf("Use = %q, want helmboard", root.Use)
	}

	want := []string{"compute", "render", "serve", "watch", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if strings.HasPrefix(sub.Use, name) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestWatchModelAppliesFreshestPass(t *testing.T) {
	c := testCLI()
	runner, err := c.newRunner(true)
	if err != nil {
		t.Fatalf("newRunner() error = %v", err)
	}
	m := newWatchModel("subsystems.json", runner, time.Second)

	input := writeFixture(t, fixtureJSON)
	m.path = input

	msg := m.refresh()()
	pass, ok := msg.(passMsg)
	if !ok {
		t.Fatalf("refresh() returned %T, want passMsg", msg)
	}
	if pass.err != nil {
		t.Fatalf("pass error = %v", pass.err)
	}

	updated, _ := m.Update(pass)
	wm := updated.(watchModel)
	if wm.view == nil || len(wm.view.Nodes) != 3 {
		t.Fatalf("view not applied: %+v", wm.view)
	}

	// A stale pass (older snapshot) must not overwrite the applied view.
	stale := pass
	stale.snap.TakenAt = stale.snap.TakenAt.Add(-time.Minute)
	stale.view = nil
	updated, _ = wm.Update(stale)
	wm = updated.(watchModel)
	if wm.view == nil {
		t.Error("stale pass overwrote the applied view")
	}
}
