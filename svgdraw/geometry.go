package svgdraw

import (
	"github.com/benoitkugler/svgcanvas/svgdoc"
)

// This file implements the transformation from
// primitives to the points consumed by the surfaces and the code generator.

// Coords is an ordered list of points. For rectangles and ellipses,
// it holds the two corners of the bounding box.
type Coords []svgdoc.Point

// Truncated returns a copy with each coordinate truncated to an integer.
func (c Coords) Truncated() Coords {
	out := make(Coords, len(c))
	for i, p := range c {
		out[i] = svgdoc.Point{X: float64(int(p.X)), Y: float64(int(p.Y))}
	}
	return out
}

// RectCoords returns the top-left and bottom-right corners of `r`,
// or false if its width or height is missing or zero.
func RectCoords(r *svgdoc.Rect) (Coords, bool) {
	if !r.Width.Truthy() || !r.Height.Truthy() {
		return nil, false
	}
	x, y := r.X.Or(0), r.Y.Or(0)
	return Coords{{X: x, Y: y}, {X: x + r.Width.Value, Y: y + r.Height.Value}}, true
}

// EllipseCoords returns the bounding box of `e`, or false
// if one of its center coordinates or radii is missing or zero.
func EllipseCoords(e *svgdoc.Ellipse) (Coords, bool) {
	if !e.Cx.Truthy() || !e.Cy.Truthy() || !e.Rx.Truthy() || !e.Ry.Truthy() {
		return nil, false
	}
	cx, cy, rx, ry := e.Cx.Value, e.Cy.Value, e.Rx.Value, e.Ry.Value
	return Coords{{X: cx - rx, Y: cy - ry}, {X: cx + rx, Y: cy + ry}}, true
}

// PathCoords returns the points visited by the line and close segments of `p`,
// in order. The start point of the first usable segment seeds the list,
// then the end point of every segment is appended.
// Other segment kinds are ignored.
func PathCoords(p *svgdoc.Path) Coords {
	var out Coords
	for _, seg := range p.Segments {
		if seg.Kind != svgdoc.LineSegment && seg.Kind != svgdoc.CloseSegment {
			continue
		}
		if seg.Start == nil && seg.End == nil {
			continue
		}
		if len(out) == 0 && seg.Start != nil {
			out = append(out, *seg.Start)
		}
		if seg.End != nil {
			out = append(out, *seg.End)
		}
	}
	return out
}
