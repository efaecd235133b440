package svgdraw

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgcanvas/svgdoc"
)

var _ Surface = (*Recorder)(nil) // assert interface conformance

// OpKind identifies a Surface method.
type OpKind uint8

const (
	OvalOp OpKind = iota
	RectangleOp
	PolygonOp
	LineOp
)

func (k OpKind) String() string {
	switch k {
	case OvalOp:
		return "drawOval"
	case RectangleOp:
		return "drawRectangle"
	case PolygonOp:
		return "drawPolygon"
	case LineOp:
		return "drawLine"
	default:
		return "<unknown OpKind>"
	}
}

// Op is one recorded draw operation.
// Lines store their two end points in Points.
type Op struct {
	Kind   OpKind
	Points Coords
	Style  Style
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// String returns a readable representation, such as
// drawRectangle(((0,0),(10,10)), fill="#fff")
func (op Op) String() string {
	points := make([]string, len(op.Points))
	for i, p := range op.Points {
		points[i] = "(" + formatFloat(p.X) + "," + formatFloat(p.Y) + ")"
	}
	args := []string{"(" + strings.Join(points, ",") + ")"}
	if op.Style.Fill != "" {
		args = append(args, fmt.Sprintf("fill=%q", op.Style.Fill))
	}
	if op.Style.Outline != "" {
		args = append(args, fmt.Sprintf("outline=%q", op.Style.Outline))
	}
	if op.Style.Width != 0 {
		args = append(args, "width="+formatFloat(op.Style.Width))
	}
	return op.Kind.String() + "(" + strings.Join(args, ", ") + ")"
}

// Recorder is a Surface storing the operations
// it receives instead of drawing them.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) record(kind OpKind, points Coords, style Style) {
	r.Ops = append(r.Ops, Op{Kind: kind, Points: append(Coords(nil), points...), Style: style})
}

func (r *Recorder) DrawOval(bbox Coords, style Style)      { r.record(OvalOp, bbox, style) }
func (r *Recorder) DrawRectangle(bbox Coords, style Style) { r.record(RectangleOp, bbox, style) }
func (r *Recorder) DrawPolygon(points Coords, style Style) { r.record(PolygonOp, points, style) }

func (r *Recorder) DrawLine(a, b svgdoc.Point, style Style) {
	r.record(LineOp, Coords{a, b}, style)
}

// WriteTo writes the recorded operations, one per line.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, op := range r.Ops {
		n, err := fmt.Fprintln(w, op)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
