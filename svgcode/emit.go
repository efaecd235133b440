// Package svgcode compiles an SVG document into the source of
// a standalone Go program, which draws the document with
// github.com/fogleman/gg and saves the result as a PNG image.
//
// Each group becomes a closure, defined then invoked right away,
// so that the nesting of the document is visible in the program.
package svgcode

import (
	"fmt"
	"go/token"
	"go/types"
	"strconv"
	"strings"
	"unicode"

	"github.com/benoitkugler/svgcanvas/svgdoc"
	"github.com/benoitkugler/svgcanvas/svgdraw"
)

var _ svgdraw.Handler = (*Emitter)(nil) // assert interface conformance

// Emitter writes one helper call per draw operation,
// in document order.
type Emitter struct {
	opts Options
	p    printer

	groups    map[*svgdoc.Group]string // identifier of each entered group
	used      map[string]bool
	emptyBody bool // no statement yet in the current group
}

// NewEmitter returns an emitter which has already written
// the beginning of the program.
func NewEmitter(opts Options) *Emitter {
	opts = opts.withDefaults()
	e := &Emitter{
		opts:   opts,
		groups: make(map[*svgdoc.Group]string),
		used:   make(map[string]bool),
	}
	e.p.indent = strings.Repeat(opts.Indent, opts.IndentSize)
	e.p.block(fmt.Sprintf(header, opts.Width, opts.Height))
	e.p.depth = 1
	return e
}

// Bytes terminates the program and returns its source.
// The emitter must not be used afterwards.
func (e *Emitter) Bytes() []byte {
	e.p.depth = 0
	e.p.block(trailer)
	return e.p.buf.Bytes()
}

// Compile returns the source of a program drawing `doc`.
func Compile(doc *svgdoc.Group, opts Options) []byte {
	e := NewEmitter(opts)
	svgdraw.Walk(doc, e)
	return e.Bytes()
}

// identifier returns a valid, unused Go identifier for `id`.
func (e *Emitter) identifier(id string) string {
	name := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, id)
	if name == "" {
		name = "group"
	} else if unicode.IsDigit([]rune(name)[0]) {
		name = "g" + name
	}
	candidate := name
	for i := 2; e.taken(candidate); i++ {
		candidate = name + strconv.Itoa(i)
	}
	e.used[candidate] = true
	return candidate
}

// taken returns true if `name` may not be declared by a group:
// keywords, predeclared identifiers such as nil or len, and the
// names of the generated library are excluded.
func (e *Emitter) taken(name string) bool {
	return e.used[name] || reserved[name] || token.IsKeyword(name) || types.Universe.Lookup(name) != nil
}

func (e *Emitter) EnterGroup(g *svgdoc.Group) {
	name := e.identifier(g.ID)
	e.groups[g] = name
	e.p.line(name + " := func() {")
	e.p.depth++
	e.emptyBody = true
}

func (e *Emitter) LeaveGroup(g *svgdoc.Group) {
	if e.emptyBody {
		e.p.line("return")
	}
	e.p.depth--
	e.p.line("}")
	e.p.line(e.groups[g] + "()")
	e.emptyBody = false
}

func (e *Emitter) Rect(r *svgdoc.Rect) {
	bbox, ok := svgdraw.RectCoords(r)
	if !ok {
		svgdraw.LogSkipped("rect", r.ID)
		return
	}
	e.call(svgdraw.RectangleOp, bbox, svgdraw.ResolveClosed(r.Style))
}

func (e *Emitter) Ellipse(el *svgdoc.Ellipse) {
	bbox, ok := svgdraw.EllipseCoords(el)
	if !ok {
		svgdraw.LogSkipped("ellipse", el.ID)
		return
	}
	e.call(svgdraw.OvalOp, bbox, svgdraw.ResolveClosed(el.Style))
}

func (e *Emitter) Path(p *svgdoc.Path) {
	points := svgdraw.PathCoords(p)
	if len(points) == 0 {
		svgdraw.LogSkipped("path", p.ID)
		return
	}
	if p.Closed() {
		e.call(svgdraw.PolygonOp, points, svgdraw.ResolveClosed(p.Style))
		return
	}
	line := svgdraw.ResolveOpenLine(p.Style)
	for i := 1; i < len(points); i++ {
		e.call(svgdraw.LineOp, points[i-1:i+1], line)
	}
	e.call(svgdraw.PolygonOp, points, svgdraw.ResolveOpenFill(p.Style))
}

func (e *Emitter) call(kind svgdraw.OpKind, points svgdraw.Coords, style svgdraw.Style) {
	if e.opts.IntCoords {
		points = points.Truncated()
	}
	args := []string{formatPoints(points)}
	style = style.Emitted()
	if style.Fill.IsSet() {
		args = append(args, "fill("+strconv.Quote(string(style.Fill))+")")
	}
	if style.Outline.IsSet() {
		args = append(args, "outline("+strconv.Quote(string(style.Outline))+")")
	}
	if style.Width != 0 {
		args = append(args, "width("+formatFloat(style.Width)+")")
	}

	var split bool
	switch e.opts.Layout {
	case LayoutSplit:
		split = len(args) > 1
	case LayoutInline:
	default:
		split = len(args) >= 3
	}
	e.p.call(kind.String(), args, split)
	e.emptyBody = false
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// formatPoints returns a pts literal
func formatPoints(points svgdraw.Coords) string {
	var b strings.Builder
	b.WriteString("pts{")
	for i, p := range points {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "{%s, %s}", formatFloat(p.X), formatFloat(p.Y))
	}
	b.WriteString("}")
	return b.String()
}
