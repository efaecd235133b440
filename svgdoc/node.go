// Provides parsing of SVG documents into a tree
// of shape primitives (paths, rectangles, ellipses and groups),
// which can then be consumed by the drawing pipeline.
// See for example svgcanvas/svgdraw or svgcanvas/svgcode .
package svgdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is one element of the document tree:
// one of *Path, *Rect, *Ellipse or *Group.
type Node interface {
	isNode()
}

func (*Path) isNode()    {}
func (*Rect) isNode()    {}
func (*Ellipse) isNode() {}
func (*Group) isNode()   {}

// Point is an immutable pair of coordinates.
type Point struct{ X, Y float64 }

// Float is an optional number: Valid is false
// when the attribute was absent from the document.
type Float struct {
	Value float64
	Valid bool
}

// Num returns a present Float.
func Num(v float64) Float { return Float{Value: v, Valid: true} }

// Truthy is true for a present, non zero value.
func (f Float) Truthy() bool { return f.Valid && f.Value != 0 }

// Or returns the value, or `def` if it is absent.
func (f Float) Or(def float64) float64 {
	if !f.Valid {
		return def
	}
	return f.Value
}

func (f Float) String() string {
	if !f.Valid {
		return "<none>"
	}
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}

// Style holds the paint attributes of a primitive.
// Zero values mean absent.
type Style struct {
	Fill, Stroke Color
	StrokeWidth  Float
}

// SegmentKind identifies the command of a path segment.
type SegmentKind uint8

const (
	MoveSegment SegmentKind = iota
	LineSegment
	CloseSegment
	CurveSegment // cubic, quadratic or arc; only its end point is kept
)

func (k SegmentKind) String() string {
	switch k {
	case MoveSegment:
		return "Move"
	case LineSegment:
		return "Line"
	case CloseSegment:
		return "Close"
	case CurveSegment:
		return "Curve"
	default:
		return "<unknown SegmentKind>"
	}
}

// Segment is one command of a path. Start and End
// may be nil for degenerate input.
type Segment struct {
	Kind       SegmentKind
	Start, End *Point
}

// Path is a sequence of segments.
type Path struct {
	ID       string
	Segments []Segment
	Style    Style
}

// Closed returns true if the last segment closes the shape.
func (p *Path) Closed() bool {
	return len(p.Segments) != 0 && p.Segments[len(p.Segments)-1].Kind == CloseSegment
}

// String returns the path in SVG path data syntax.
func (p *Path) String() string {
	chunks := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		var cmd string
		switch seg.Kind {
		case MoveSegment:
			cmd = "M"
		case LineSegment:
			cmd = "L"
		case CurveSegment:
			cmd = "C"
		case CloseSegment:
			chunks = append(chunks, "Z")
			continue
		}
		if seg.End == nil {
			continue
		}
		chunks = append(chunks, fmt.Sprintf("%s%4.3f,%4.3f", cmd, seg.End.X, seg.End.Y))
	}
	return strings.Join(chunks, " ")
}

// Rect is a `rect` element. Rounded corners are not supported.
type Rect struct {
	ID                  string
	X, Y, Width, Height Float
	Style               Style
}

// Ellipse is an `ellipse` or a `circle` element.
type Ellipse struct {
	ID             string
	Cx, Cy, Rx, Ry Float
	Style          Style
}

// Group owns an ordered list of children.
// Its ID is always non empty once parsed.
type Group struct {
	ID       string
	Children []Node
}
