package svgdraw

import (
	"github.com/benoitkugler/svgcanvas/svgdoc"
	"github.com/sirupsen/logrus"
)

var _ Handler = (*Renderer)(nil) // assert interface conformance

// Renderer issues the draw operations of each primitive
// directly to a Surface.
type Renderer struct {
	surface Surface
}

// NewRenderer returns a renderer drawing on `s`.
func NewRenderer(s Surface) *Renderer {
	return &Renderer{surface: s}
}

// Render draws the whole document on `s`.
func Render(doc *svgdoc.Group, s Surface) {
	Walk(doc, NewRenderer(s))
}

// LogSkipped reports a primitive without geometry.
// This is expected input, so it is only visible at debug level.
func LogSkipped(kind, id string) {
	logrus.WithFields(logrus.Fields{"element": kind, "id": id}).Debug("skipping element without geometry")
}

func (r *Renderer) Rect(rect *svgdoc.Rect) {
	bbox, ok := RectCoords(rect)
	if !ok {
		LogSkipped("rect", rect.ID)
		return
	}
	r.surface.DrawRectangle(bbox, ResolveClosed(rect.Style))
}

func (r *Renderer) Ellipse(e *svgdoc.Ellipse) {
	bbox, ok := EllipseCoords(e)
	if !ok {
		LogSkipped("ellipse", e.ID)
		return
	}
	r.surface.DrawOval(bbox, ResolveClosed(e.Style))
}

// Path draws a closed path as one polygon. An open path is drawn
// as one line per pair of consecutive points, followed by
// the polygon of its fill.
func (r *Renderer) Path(p *svgdoc.Path) {
	points := PathCoords(p)
	if len(points) == 0 {
		LogSkipped("path", p.ID)
		return
	}
	if p.Closed() {
		r.surface.DrawPolygon(points, ResolveClosed(p.Style))
		return
	}
	line := ResolveOpenLine(p.Style)
	for i := 1; i < len(points); i++ {
		r.surface.DrawLine(points[i-1], points[i], line)
	}
	r.surface.DrawPolygon(points, ResolveOpenFill(p.Style))
}

func (r *Renderer) EnterGroup(*svgdoc.Group) {}

func (r *Renderer) LeaveGroup(*svgdoc.Group) {}
