// Implements a raster backend to render SVG documents,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/benoitkugler/svgcanvas/svgdoc"
	"github.com/benoitkugler/svgcanvas/svgdraw"
	"github.com/pkg/errors"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ svgdraw.Surface = (*Renderer)(nil) // assert interface conformance

// miter limit used for outlines, in 26.6 fixed point
const miterLimit = 4 << 6

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
	img    *image.RGBA
}

// NewRenderer returns a renderer drawing on a white
// image of the given size.
func NewRenderer(width, height int) *Renderer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Renderer{
		dasher: rasterx.NewDasher(width, height, scanner),
		filler: rasterx.NewFiller(width, height, scanner),
		img:    img,
	}
}

// RenderToImage rasterizes `doc` into a new image.
func RenderToImage(doc *svgdoc.Group, width, height int) *image.RGBA {
	rd := NewRenderer(width, height)
	svgdraw.Render(doc, rd)
	return rd.Image()
}

// Image returns the image drawn so far.
func (rd *Renderer) Image() *image.RGBA { return rd.img }

// WritePNG encodes the image as PNG.
func (rd *Renderer) WritePNG(w io.Writer) error {
	return png.Encode(w, rd.img)
}

// SavePNG writes the image to the named PNG file.
func (rd *Renderer) SavePNG(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err = rd.WritePNG(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", filename)
	}
	return f.Close()
}

func toFixed(p svgdoc.Point) fixed.Point26_6 { return rasterx.ToFixedP(p.X, p.Y) }

// paint returns false for unset or invalid colors
func paint(c svgdoc.Color) (color.Color, bool) {
	rgba, ok := c.RGBA()
	if !ok {
		return nil, false
	}
	return color.NRGBA(rgba), true
}

// draw fills then strokes the path built by `path`
func (rd *Renderer) draw(style svgdraw.Style, path func(a rasterx.Adder)) {
	if c, ok := paint(style.Fill); ok {
		rd.filler.Clear()
		path(rd.filler)
		rd.filler.SetColor(c)
		rd.filler.Draw()
	}
	if c, ok := paint(style.Outline); ok {
		rd.dasher.Clear()
		w := style.WidthOr(svgdraw.DefaultWidth)
		rd.dasher.SetStroke(fixed.Int26_6(w*64), miterLimit, rasterx.ButtCap, rasterx.ButtCap,
			rasterx.FlatGap, rasterx.Miter, nil, 0)
		path(rd.dasher)
		rd.dasher.SetColor(c)
		rd.dasher.Draw()
	}
}

func (rd *Renderer) DrawOval(bbox svgdraw.Coords, style svgdraw.Style) {
	x0, y0, x1, y1 := bbox[0].X, bbox[0].Y, bbox[1].X, bbox[1].Y
	rd.draw(style, func(a rasterx.Adder) {
		rasterx.AddEllipse((x0+x1)/2, (y0+y1)/2, (x1-x0)/2, (y1-y0)/2, 0, a)
	})
}

func (rd *Renderer) DrawRectangle(bbox svgdraw.Coords, style svgdraw.Style) {
	rd.draw(style, func(a rasterx.Adder) {
		rasterx.AddRect(bbox[0].X, bbox[0].Y, bbox[1].X, bbox[1].Y, 0, a)
	})
}

func (rd *Renderer) DrawPolygon(points svgdraw.Coords, style svgdraw.Style) {
	if len(points) == 0 {
		return
	}
	rd.draw(style, func(a rasterx.Adder) {
		a.Start(toFixed(points[0]))
		for _, p := range points[1:] {
			a.Line(toFixed(p))
		}
		a.Stop(true)
	})
}

func (rd *Renderer) DrawLine(from, to svgdoc.Point, style svgdraw.Style) {
	style.Fill = ""
	rd.draw(style, func(a rasterx.Adder) {
		a.Start(toFixed(from))
		a.Line(toFixed(to))
		a.Stop(false)
	})
}
