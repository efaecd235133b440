package svgdraw

import "github.com/benoitkugler/svgcanvas/svgdoc"

// Handler receives the nodes of a document, in document order.
type Handler interface {
	Path(p *svgdoc.Path)
	Rect(r *svgdoc.Rect)
	Ellipse(e *svgdoc.Ellipse)

	// EnterGroup is called before the children of `g`,
	// and LeaveGroup once all of them have been handled.
	EnterGroup(g *svgdoc.Group)
	LeaveGroup(g *svgdoc.Group)
}

// Walk visits `g` depth-first, dispatching each node to `h`.
// Empty groups are still entered and left.
func Walk(g *svgdoc.Group, h Handler) {
	h.EnterGroup(g)
	for _, child := range g.Children {
		switch child := child.(type) {
		case *svgdoc.Group:
			Walk(child, h)
		case *svgdoc.Path:
			h.Path(child)
		case *svgdoc.Rect:
			h.Rect(child)
		case *svgdoc.Ellipse:
			h.Ellipse(child)
		}
	}
	h.LeaveGroup(g)
}
