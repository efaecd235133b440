package svgcode

// header starts every generated program. The canvas size
// is substituted in the last lines.
//
// The drawing helpers default to no outline: a shape is only
// stroked when outline(...) is given. Black outlines are omitted
// from the calls, so they do not appear in the output image.
const header = `// Code generated by svgdraw compile. DO NOT EDIT.

package main

import (
	"flag"
	"log"

	"github.com/fogleman/gg"
)

// pts is a list of (x, y) points.
type pts [][2]float64

type style struct {
	fill, outline string
	width         float64
}

type option func(*style)

func fill(c string) option { return func(s *style) { s.fill = c } }

func outline(c string) option { return func(s *style) { s.outline = c } }

func width(w float64) option { return func(s *style) { s.width = w } }

var dc *gg.Context

func newStyle(opts []option) style {
	s := style{width: 1}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// paint fills, then strokes, the current path.
func paint(s style) {
	if s.fill != "" {
		dc.SetHexColor(s.fill)
		dc.FillPreserve()
	}
	if s.outline != "" {
		dc.SetHexColor(s.outline)
		dc.SetLineWidth(s.width)
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

// The draw helpers only stroke when an outline option is given.

func drawOval(bbox pts, opts ...option) {
	x0, y0, x1, y1 := bbox[0][0], bbox[0][1], bbox[1][0], bbox[1][1]
	dc.DrawEllipse((x0+x1)/2, (y0+y1)/2, (x1-x0)/2, (y1-y0)/2)
	paint(newStyle(opts))
}

func drawRectangle(bbox pts, opts ...option) {
	x0, y0, x1, y1 := bbox[0][0], bbox[0][1], bbox[1][0], bbox[1][1]
	dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	paint(newStyle(opts))
}

func drawPolygon(points pts, opts ...option) {
	for _, p := range points {
		dc.LineTo(p[0], p[1])
	}
	dc.ClosePath()
	paint(newStyle(opts))
}

func drawLine(line pts, opts ...option) {
	s := newStyle(opts)
	s.fill = ""
	dc.DrawLine(line[0][0], line[0][1], line[1][0], line[1][1])
	paint(s)
}

func main() {
	output := flag.String("o", "out.png", "output PNG file")
	flag.Parse()

	dc = gg.NewContext(%d, %d)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

`

const trailer = `
	if err := dc.SavePNG(*output); err != nil {
		log.Fatal(err)
	}
}
`

// identifiers used by the generated program,
// which groups may not shadow
var reserved = map[string]bool{
	"_": true, "main": true, "dc": true, "output": true, "err": true,
	"flag": true, "log": true, "gg": true,
	"pts": true, "style": true, "option": true, "newStyle": true, "paint": true,
	"fill": true, "outline": true, "width": true,
	"drawOval": true, "drawRectangle": true, "drawPolygon": true, "drawLine": true,
}
