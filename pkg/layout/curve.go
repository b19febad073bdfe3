package layout

import "fmt"

// Point is a position on the layout canvas.
type Point struct {
	X float64
	Y float64
}

// Path is a cubic Bezier curve between two laid-out node positions.
// Start and End are the node coordinates; Ctrl1 and Ctrl2 are the control
// points that make the curve leave Start vertically and arrive at End
// vertically.
type Path struct {
	Start Point
	Ctrl1 Point
	Ctrl2 Point
	End   Point
}

// Curve derives the connector curve between a parent and child placement.
//
// Both control points sit at the midpoint of the two y-coordinates, each
// keeping its endpoint's x-coordinate, so the tangents at both ends are
// vertical. Purely geometric and deterministic given the two points - it
// carries no state and no invariant beyond that.
func Curve(from, to Point) Path {
	midY := (from.Y + to.Y) / 2
	return Path{
		Start: from,
		Ctrl1: Point{X: from.X, Y: midY},
		Ctrl2: Point{X: to.X, Y: midY},
		End:   to,
	}
}

// SVG renders the path as an SVG path-data string ("M ... C ...").
func (p Path) SVG() string {
	return fmt.Sprintf("M %g %g C %g %g, %g %g, %g %g",
		p.Start.X, p.Start.Y,
		p.Ctrl1.X, p.Ctrl1.Y,
		p.Ctrl2.X, p.Ctrl2.Y,
		p.End.X, p.End.Y)
}
