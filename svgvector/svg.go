// Package svgvector writes the draw operations of a document
// back as flat SVG, using github.com/ajstarks/svgo.
// Groups are flattened and coordinates rounded to integers.
package svgvector

import (
	"io"
	"math"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo"
	"github.com/benoitkugler/svgcanvas/svgdoc"
	"github.com/benoitkugler/svgcanvas/svgdraw"
)

var _ svgdraw.Surface = (*Canvas)(nil) // assert interface conformance

// Canvas is a Surface writing SVG elements.
type Canvas struct {
	svg *svgo.SVG
}

// New writes the SVG header to `w` and returns a canvas
// which must be terminated by End.
func New(w io.Writer, width, height int) *Canvas {
	c := &Canvas{svg: svgo.New(w)}
	c.svg.Start(width, height)
	return c
}

// End closes the SVG document.
func (c *Canvas) End() { c.svg.End() }

// Render writes `doc` as a complete SVG document.
func Render(doc *svgdoc.Group, w io.Writer, width, height int) {
	c := New(w, width, height)
	svgdraw.Render(doc, c)
	c.End()
}

func round(f float64) int { return int(math.Round(f)) }

// css returns the style attribute; with `fill` false,
// only the outline is written
func css(style svgdraw.Style, fill bool) string {
	var chunks []string
	if fill {
		if style.Fill.IsSet() {
			chunks = append(chunks, "fill:"+string(style.Fill))
		} else {
			chunks = append(chunks, "fill:none")
		}
	}
	if style.Outline.IsSet() {
		chunks = append(chunks, "stroke:"+string(style.Outline))
		if style.Width != 0 {
			chunks = append(chunks, "stroke-width:"+strconv.FormatFloat(style.Width, 'g', -1, 64))
		}
	}
	return strings.Join(chunks, ";")
}

func (c *Canvas) DrawOval(bbox svgdraw.Coords, style svgdraw.Style) {
	x0, y0, x1, y1 := bbox[0].X, bbox[0].Y, bbox[1].X, bbox[1].Y
	c.svg.Ellipse(round((x0+x1)/2), round((y0+y1)/2), round((x1-x0)/2), round((y1-y0)/2), css(style, true))
}

func (c *Canvas) DrawRectangle(bbox svgdraw.Coords, style svgdraw.Style) {
	x0, y0 := round(bbox[0].X), round(bbox[0].Y)
	c.svg.Rect(x0, y0, round(bbox[1].X)-x0, round(bbox[1].Y)-y0, css(style, true))
}

// DrawPolygon omits a last point equal to the first one,
// since <polygon> is implicitly closed.
func (c *Canvas) DrawPolygon(points svgdraw.Coords, style svgdraw.Style) {
	if n := len(points); n > 1 && points[0] == points[n-1] {
		points = points[:n-1]
	}
	xs, ys := make([]int, len(points)), make([]int, len(points))
	for i, p := range points {
		xs[i], ys[i] = round(p.X), round(p.Y)
	}
	c.svg.Polygon(xs, ys, css(style, true))
}

func (c *Canvas) DrawLine(from, to svgdoc.Point, style svgdraw.Style) {
	c.svg.Line(round(from.X), round(from.Y), round(to.X), round(to.Y), css(style, false))
}
