// Package render turns a computed view into drawable artifacts.
//
// Two output paths exist: a native SVG renderer that places nodes at their
// computed canvas coordinates and joins them with the engine's Bezier
// connectors (what the dashboard front end draws), and a Graphviz DOT
// export for tooling that prefers node-link diagrams.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/helmward/helmboard/pkg/status"
	"github.com/helmward/helmboard/pkg/view"
)

// statusFills maps each status to its fill color, worst to best.
// The palette is shared by the DOT and SVG renderers so both outputs agree.
var statusFills = map[status.Status]string{
	status.Destroyed:        "#7f1d1d",
	status.Critical:         "#dc2626",
	status.Compromised:      "#ea580c",
	status.Degraded:         "#f59e0b",
	status.Offline:          "#6b7280",
	status.Operational:      "#16a34a",
	status.FullyOperational: "#15803d",
}

// FillColor returns the render color for a status.
// Unknown statuses fall back to the offline gray.
func FillColor(s status.Status) string {
	if c, ok := statusFills[s]; ok {
		return c
	}
	return statusFills[status.Offline]
}

// ToDOT converts a computed view to Graphviz DOT format.
//
// Nodes are filled with their effective-status color; capped nodes get a
// dashed outline and a label naming both statuses. Edges whose child is
// capped are drawn bold in the child's effective color, so the chain that
// drags a subsystem down is visible at a glance.
func ToDOT(v *view.View) string {
	var buf bytes.Buffer
	buf.WriteString("digraph subsystems {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range v.Nodes {
		n := &v.Nodes[i]
		attrs := []string{
			fmt.Sprintf("label=%q", nodeLabel(n)),
			fmt.Sprintf("fillcolor=%q", FillColor(n.EffectiveStatus)),
		}
		if n.Capped {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range v.Edges {
		if e.Capped {
			if child := v.Node(e.To); child != nil {
				fmt.Fprintf(&buf, "  %q -> %q [penwidth=2, color=%q];\n",
					e.From, e.To, FillColor(child.EffectiveStatus))
				continue
			}
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n *view.Node) string {
	if n.Capped {
		return fmt.Sprintf("%s\n%s (own: %s)", n.Name, n.EffectiveStatus, n.OwnStatus)
	}
	return fmt.Sprintf("%s\n%s", n.Name, n.EffectiveStatus)
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
