package svgraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/svgcanvas/svgdoc"
	"github.com/benoitkugler/svgcanvas/svgdraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	red   = color.RGBA{0xff, 0, 0, 0xff}
	blue  = color.RGBA{0, 0, 0xff, 0xff}
)

func TestFillShapes(t *testing.T) {
	rd := NewRenderer(40, 20)
	rd.DrawRectangle(svgdraw.Coords{{X: 2, Y: 2}, {X: 10, Y: 10}}, svgdraw.Style{Fill: "#f00"})
	rd.DrawOval(svgdraw.Coords{{X: 20, Y: 0}, {X: 40, Y: 20}}, svgdraw.Style{Fill: "#0000ff"})
	img := rd.Image()

	assert.Equal(t, red, img.RGBAAt(5, 5))
	assert.Equal(t, white, img.RGBAAt(15, 15))
	assert.Equal(t, blue, img.RGBAAt(30, 10))
	// outside the ellipse, inside its bounding box
	assert.Equal(t, white, img.RGBAAt(20, 0))
}

func TestStrokeOnly(t *testing.T) {
	rd := NewRenderer(20, 20)
	rd.DrawLine(svgdoc.Point{X: 0, Y: 10}, svgdoc.Point{X: 20, Y: 10}, svgdraw.Style{Fill: "#f00", Outline: "#00f", Width: 4})
	rd.DrawPolygon(svgdraw.Coords{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 6}, {X: 2, Y: 6}}, svgdraw.Style{Outline: "#f00", Width: 2})
	img := rd.Image()

	assert.Equal(t, blue, img.RGBAAt(10, 10))
	assert.Equal(t, white, img.RGBAAt(10, 15))
	// polygon outline, but no fill
	assert.Equal(t, red, img.RGBAAt(5, 2))
	assert.Equal(t, white, img.RGBAAt(5, 4))
}

func TestRenderToImage(t *testing.T) {
	doc, err := svgdoc.ReadDocumentStream(strings.NewReader(
		`<svg><rect x="1" y="1" width="8" height="8" fill="rgb(255,0,0)"/><circle cx="0" cy="5" r="3" fill="blue"/></svg>`),
		svgdoc.StrictErrorMode)
	require.NoError(t, err)

	img := RenderToImage(doc, 10, 10)
	assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())
	assert.Equal(t, red, img.RGBAAt(5, 5))
	// the circle has a zero center coordinate and is skipped
	assert.Equal(t, red, img.RGBAAt(1, 5))
}

func TestSavePNG(t *testing.T) {
	rd := NewRenderer(8, 4)
	rd.DrawRectangle(svgdraw.Coords{{X: 0, Y: 0}, {X: 8, Y: 4}}, svgdraw.Style{Fill: "#f00"})

	var buf bytes.Buffer
	require.NoError(t, rd.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
	r, g, b, _ := img.At(4, 2).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})

	file := filepath.Join(t.TempDir(), "out.png")
	assert.NoError(t, rd.SavePNG(file))
	assert.Error(t, rd.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")))
}
