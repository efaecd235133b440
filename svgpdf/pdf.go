// Implements a PDF backend to render SVG documents,
// by wrapping github.com/benoitkugler/pdf.
package svgpdf

import (
	"image/color"

	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"github.com/benoitkugler/svgcanvas/svgdoc"
	"github.com/benoitkugler/svgcanvas/svgdraw"
)

var _ svgdraw.Surface = (*Renderer)(nil) // assert interface conformance

// kappa is the distance of the control points, relative to the radius,
// used to approximate a quarter of ellipse by a cubic Bezier curve.
const kappa = 0.5522847498

type Renderer struct {
	pdf                 *contentstream.Appearance
	fillOpacityStates   map[float64]*model.GraphicState
	strokeOpacityStates map[float64]*model.GraphicState
}

// NewRenderer returns a renderer drawing on a page of
// the given size. The y axis is flipped, so that the origin
// is the top left corner, as in SVG.
func NewRenderer(width, height float64) *Renderer {
	pdf := contentstream.NewAppearance(width, height)
	pdf.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, height}},
	)
	return &Renderer{
		pdf:                 &pdf,
		fillOpacityStates:   make(map[float64]*model.GraphicState),
		strokeOpacityStates: make(map[float64]*model.GraphicState),
	}
}

// Page terminates the drawing and returns it as a PDF page.
// The renderer must not be used afterwards.
func (r *Renderer) Page() *model.PageObject {
	r.pdf.Ops(contentstream.OpRestore{})
	return r.pdf.ToPageObject(true)
}

// WriteFile terminates the drawing and saves it as a one page PDF file.
func (r *Renderer) WriteFile(filename string) error {
	var doc model.Document
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, r.Page())
	return doc.WriteFile(filename, nil)
}

// RenderToPDF draws `doc` and saves it to the named file.
func RenderToPDF(doc *svgdoc.Group, width, height float64, filename string) error {
	r := NewRenderer(width, height)
	svgdraw.Render(doc, r)
	return r.WriteFile(filename)
}

// opacityState returns the cached graphic state for `opacity`
func opacityState(cache map[float64]*model.GraphicState, opacity float64, stroke bool) *model.GraphicState {
	gs, ok := cache[opacity]
	if !ok {
		gs = &model.GraphicState{BM: []model.Name{"Normal"}}
		if stroke {
			gs.CA = model.ObjFloat(opacity)
		} else {
			gs.Ca = model.ObjFloat(opacity)
		}
		cache[opacity] = gs
	}
	return gs
}

func (r *Renderer) setFill(c color.RGBA) {
	r.pdf.SetColorFill(color.NRGBA(c))
	name := r.pdf.AddExtGState(opacityState(r.fillOpacityStates, float64(c.A)/255, false))
	r.pdf.Ops(contentstream.OpSetExtGState{Dict: name})
}

func (r *Renderer) setStroke(c color.RGBA, width float64) {
	r.pdf.SetColorStroke(color.NRGBA(c))
	name := r.pdf.AddExtGState(opacityState(r.strokeOpacityStates, float64(c.A)/255, true))
	r.pdf.Ops(contentstream.OpSetExtGState{Dict: name}, contentstream.OpSetLineWidth{W: width})
}

// draw writes the path once for the fill, and once
// again for the outline
func (r *Renderer) draw(style svgdraw.Style, path []contentstream.Operation) {
	if c, ok := style.Fill.RGBA(); ok {
		r.setFill(c)
		r.pdf.Ops(path...)
		r.pdf.Ops(contentstream.OpFill{})
	}
	if c, ok := style.Outline.RGBA(); ok {
		r.setStroke(c, style.WidthOr(svgdraw.DefaultWidth))
		r.pdf.Ops(path...)
		r.pdf.Ops(contentstream.OpStroke{})
	}
}

func ellipsePath(bbox svgdraw.Coords) []contentstream.Operation {
	x0, y0, x1, y1 := bbox[0].X, bbox[0].Y, bbox[1].X, bbox[1].Y
	cx, cy, rx, ry := (x0+x1)/2, (y0+y1)/2, (x1-x0)/2, (y1-y0)/2
	ox, oy := rx*kappa, ry*kappa
	return []contentstream.Operation{
		contentstream.OpMoveTo{X: cx + rx, Y: cy},
		contentstream.OpCubicTo{X1: cx + rx, Y1: cy + oy, X2: cx + ox, Y2: cy + ry, X3: cx, Y3: cy + ry},
		contentstream.OpCubicTo{X1: cx - ox, Y1: cy + ry, X2: cx - rx, Y2: cy + oy, X3: cx - rx, Y3: cy},
		contentstream.OpCubicTo{X1: cx - rx, Y1: cy - oy, X2: cx - ox, Y2: cy - ry, X3: cx, Y3: cy - ry},
		contentstream.OpCubicTo{X1: cx + ox, Y1: cy - ry, X2: cx + rx, Y2: cy - oy, X3: cx + rx, Y3: cy},
		contentstream.OpClosePath{},
	}
}

func polylinePath(points svgdraw.Coords, closed bool) []contentstream.Operation {
	if len(points) == 0 {
		return nil
	}
	out := []contentstream.Operation{contentstream.OpMoveTo{X: points[0].X, Y: points[0].Y}}
	for _, p := range points[1:] {
		out = append(out, contentstream.OpLineTo{X: p.X, Y: p.Y})
	}
	if closed {
		out = append(out, contentstream.OpClosePath{})
	}
	return out
}

func (r *Renderer) DrawOval(bbox svgdraw.Coords, style svgdraw.Style) {
	r.draw(style, ellipsePath(bbox))
}

func (r *Renderer) DrawRectangle(bbox svgdraw.Coords, style svgdraw.Style) {
	x0, y0, x1, y1 := bbox[0].X, bbox[0].Y, bbox[1].X, bbox[1].Y
	r.draw(style, polylinePath(svgdraw.Coords{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}, true))
}

func (r *Renderer) DrawPolygon(points svgdraw.Coords, style svgdraw.Style) {
	if len(points) == 0 {
		return
	}
	r.draw(style, polylinePath(points, true))
}

func (r *Renderer) DrawLine(from, to svgdoc.Point, style svgdraw.Style) {
	style.Fill = ""
	r.draw(style, polylinePath(svgdraw.Coords{from, to}, false))
}
