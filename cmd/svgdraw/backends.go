package main

import (
	"bytes"

	"github.com/benoitkugler/svgcanvas/svgdoc"
	"github.com/benoitkugler/svgcanvas/svgdraw"
	"github.com/benoitkugler/svgcanvas/svggg"
	"github.com/benoitkugler/svgcanvas/svgpdf"
	"github.com/benoitkugler/svgcanvas/svgraster"
	"github.com/benoitkugler/svgcanvas/svgvector"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// backend draws a document of the given size into a file
type backend struct {
	defaultOut string
	render     func(c *cli.Context, doc *svgdoc.Group, width, height int, out string) error
}

var backends = map[string]backend{
	"raster": {"out.png", func(_ *cli.Context, doc *svgdoc.Group, width, height int, out string) error {
		rd := svgraster.NewRenderer(width, height)
		svgdraw.Render(doc, rd)
		return rd.SavePNG(out)
	}},
	"gg": {"out.png", func(_ *cli.Context, doc *svgdoc.Group, width, height int, out string) error {
		canvas := svggg.NewCanvas(width, height)
		svgdraw.Render(doc, canvas)
		return canvas.SavePNG(out)
	}},
	"pdf": {"out.pdf", func(_ *cli.Context, doc *svgdoc.Group, width, height int, out string) error {
		return svgpdf.RenderToPDF(doc, float64(width), float64(height), out)
	}},
	"svg": {"out.svg", func(c *cli.Context, doc *svgdoc.Group, width, height int, out string) error {
		var buf bytes.Buffer
		svgvector.Render(doc, &buf, width, height)
		return writeOutput(c, out, buf.Bytes())
	}},
	"ops": {"-", func(c *cli.Context, doc *svgdoc.Group, _, _ int, out string) error {
		var rec svgdraw.Recorder
		svgdraw.Render(doc, &rec)
		var buf bytes.Buffer
		if _, err := rec.WriteTo(&buf); err != nil {
			return err
		}
		return writeOutput(c, out, buf.Bytes())
	}},
}

func renderAction(c *cli.Context) error {
	name := c.String("backend")
	b, ok := backends[name]
	if !ok {
		return cli.Exit("unknown backend "+name+" (expected raster, gg, pdf, svg or ops)", usageCode)
	}
	doc, err := readInput(c)
	if err != nil {
		return err
	}
	width, height := c.Int("width"), c.Int("height")
	if width <= 0 || height <= 0 {
		return cli.Exit("canvas size must be positive", usageCode)
	}
	out := c.String("out")
	if out == "" {
		out = b.defaultOut
	}
	if err := b.render(c, doc, width, height, out); err != nil {
		return errors.Wrapf(err, "rendering with %s backend", name)
	}
	logrus.WithFields(logrus.Fields{"backend": name, "output": out}).Debug("document rendered")
	return nil
}
