// Package svggg draws SVG documents with github.com/fogleman/gg,
// the library targeted by the programs of package svgcode.
package svggg

import (
	"image"
	"image/color"
	"io"

	"github.com/benoitkugler/svgcanvas/svgdoc"
	"github.com/benoitkugler/svgcanvas/svgdraw"
	"github.com/fogleman/gg"
)

var _ svgdraw.Surface = (*Canvas)(nil) // assert interface conformance

// Canvas is a Surface backed by a gg context.
type Canvas struct {
	dc *gg.Context
}

// NewCanvas returns a white canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return &Canvas{dc: dc}
}

// Context exposes the underlying gg context.
func (c *Canvas) Context() *gg.Context { return c.dc }

func (c *Canvas) Image() image.Image { return c.dc.Image() }

func (c *Canvas) WritePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

func (c *Canvas) SavePNG(filename string) error { return c.dc.SavePNG(filename) }

func setColor(dc *gg.Context, col svgdoc.Color) bool {
	rgba, ok := col.RGBA()
	if ok {
		dc.SetColor(color.NRGBA(rgba))
	}
	return ok
}

// paint fills, then strokes, the current path
func (c *Canvas) paint(style svgdraw.Style) {
	if setColor(c.dc, style.Fill) {
		c.dc.FillPreserve()
	}
	if setColor(c.dc, style.Outline) {
		c.dc.SetLineWidth(style.WidthOr(svgdraw.DefaultWidth))
		c.dc.StrokePreserve()
	}
	c.dc.ClearPath()
}

func (c *Canvas) DrawOval(bbox svgdraw.Coords, style svgdraw.Style) {
	x0, y0, x1, y1 := bbox[0].X, bbox[0].Y, bbox[1].X, bbox[1].Y
	c.dc.DrawEllipse((x0+x1)/2, (y0+y1)/2, (x1-x0)/2, (y1-y0)/2)
	c.paint(style)
}

func (c *Canvas) DrawRectangle(bbox svgdraw.Coords, style svgdraw.Style) {
	x0, y0 := bbox[0].X, bbox[0].Y
	c.dc.DrawRectangle(x0, y0, bbox[1].X-x0, bbox[1].Y-y0)
	c.paint(style)
}

func (c *Canvas) DrawPolygon(points svgdraw.Coords, style svgdraw.Style) {
	for _, p := range points {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.paint(style)
}

func (c *Canvas) DrawLine(from, to svgdoc.Point, style svgdraw.Style) {
	style.Fill = ""
	c.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	c.paint(style)
}
