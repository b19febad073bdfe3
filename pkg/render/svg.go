package render

import (
	"bytes"
	"fmt"

	"github.com/helmward/helmboard/pkg/view"
)

// Node circle radius in canvas units.
const nodeRadius = 16.0

// ToSVG renders the view at its computed canvas coordinates.
//
// Edges are drawn first (under the nodes) using the view's Bezier
// connectors, then each node as a filled circle in its effective-status
// color with the subsystem name beneath. Output is deterministic: it follows
// the view's node and edge order, which is fixed for a given snapshot.
func ToSVG(v *view.View) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%g" height="%g">`,
		v.Width, v.Height, v.Width, v.Height)
	buf.WriteByte('\n')

	for _, e := range v.Edges {
		path, ok := v.Connector(e)
		if !ok {
			continue
		}
		stroke, width, dash := "#9ca3af", 1.5, ""
		if e.Capped {
			if child := v.Node(e.To); child != nil {
				stroke = FillColor(child.EffectiveStatus)
			}
			width = 2.5
			dash = ` stroke-dasharray="6 3"`
		}
		fmt.Fprintf(&buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="%g"%s/>`,
			path.SVG(), stroke, width, dash)
		buf.WriteByte('\n')
	}

	for i := range v.Nodes {
		n := &v.Nodes[i]
		fmt.Fprintf(&buf, `  <circle cx="%g" cy="%g" r="%g" fill="%s"/>`,
			n.X, n.Y, nodeRadius, FillColor(n.EffectiveStatus))
		buf.WriteByte('\n')
		fmt.Fprintf(&buf, `  <text x="%g" y="%g" text-anchor="middle" font-size="12">%s</text>`,
			n.X, n.Y+nodeRadius+14, escapeText(n.Name))
		buf.WriteByte('\n')
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
