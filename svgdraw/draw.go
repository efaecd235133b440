// Given a parsed SVG document, implements how to
// draw it on screen.
// This requires a Surface implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.
// The geometry and style resolution defined here are shared
// with the code generator of svgcanvas/svgcode.
package svgdraw

import "github.com/benoitkugler/svgcanvas/svgdoc"

// DefaultWidth is the outline width used by the surfaces
// when a style has no width.
const DefaultWidth = 1.

// Surface knows how to do the actual draw operations
// but doesn't need any SVG knowledge.
// Empty colors must not be painted.
type Surface interface {
	// DrawOval draws the ellipse inscribed in the
	// bounding box given by its two corners.
	DrawOval(bbox Coords, style Style)

	// DrawRectangle draws the rectangle given by two opposite corners.
	DrawRectangle(bbox Coords, style Style)

	// DrawPolygon draws the polygon through `points`, closing it
	// back to the first point.
	DrawPolygon(points Coords, style Style)

	// DrawLine draws the segment from `a` to `b`, using the
	// Outline color and the Width of `style`. Fill is ignored.
	DrawLine(a, b svgdoc.Point, style Style)
}
