// Command svgdraw renders SVG documents, or compiles them
// into Go programs drawing the same picture.
//
//	svgdraw render [--backend raster|gg|pdf|svg|ops] [-o out.png] drawing.svg
//	svgdraw compile [--config opts.yaml] [-o main.go] drawing.svg
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/benoitkugler/svgcanvas/svgcode"
	"github.com/benoitkugler/svgcanvas/svgdoc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// exit code of usage errors
const usageCode = 2

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "svgdraw:", msg)
		}
		code := 1
		if ec, ok := err.(cli.ExitCoder); ok {
			code = ec.ExitCode()
		}
		os.Exit(code)
	}
}

func usageError(c *cli.Context, err error, _ bool) error {
	return cli.Exit(err.Error(), usageCode)
}

var (
	sizeFlags = []cli.Flag{
		&cli.IntFlag{Name: "width", Value: 1280, Usage: "canvas width"},
		&cli.IntFlag{Name: "height", Value: 720, Usage: "canvas height"},
	}
	errorModeFlag = &cli.StringFlag{
		Name:  "error-mode",
		Value: svgdoc.WarnErrorMode.String(),
		Usage: "handling of unsupported content: ignore, warn or strict",
	}
)

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "svgdraw",
		Usage:     "draw SVG documents, or compile them into Go programs",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log skipped elements"},
		},
		Before: func(c *cli.Context) error {
			logrus.SetOutput(stderr)
			if c.Bool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		// reached when the first argument is not a command
		Action: func(c *cli.Context) error {
			if c.Args().Present() {
				return cli.Exit(fmt.Sprintf("unknown command %q (expected render or compile)", c.Args().First()), usageCode)
			}
			cli.ShowAppHelp(c)
			return cli.Exit("", usageCode)
		},
		OnUsageError:   usageError,
		ExitErrHandler: func(*cli.Context, error) {}, // main decides the exit code
		Commands: []*cli.Command{
			{
				Name:         "render",
				Aliases:      []string{"view"},
				Usage:        "draw a document with one of the render backends",
				ArgsUsage:    "FILE",
				OnUsageError: usageError,
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Value: "raster", Usage: "raster, gg, pdf, svg or ops"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default out.<ext>, stdout for ops)"},
					errorModeFlag,
				}, sizeFlags...),
				Action: renderAction,
			},
			{
				Name:         "compile",
				Usage:        "write a Go program drawing the document",
				ArgsUsage:    "FILE",
				OnUsageError: usageError,
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "-", Usage: "output file, - for stdout"},
					&cli.StringFlag{Name: "config", Usage: "YAML file of emitter options"},
					&cli.StringFlag{Name: "indent", Usage: "indentation symbol"},
					&cli.IntFlag{Name: "indent-size", Usage: "indentation symbols per level"},
					&cli.BoolFlag{Name: "int", Usage: "truncate coordinates to integers"},
					&cli.StringFlag{Name: "layout", Usage: "call layout: auto, inline or split"},
					errorModeFlag,
				}, sizeFlags...),
				Action: compileAction,
			},
		},
	}
}

// readInput parses the document named by the only argument
func readInput(c *cli.Context) (*svgdoc.Group, error) {
	if c.NArg() != 1 {
		return nil, cli.Exit("expected exactly one SVG file", usageCode)
	}
	mode, err := svgdoc.ParseErrorMode(c.String("error-mode"))
	if err != nil {
		return nil, cli.Exit(err.Error(), usageCode)
	}
	doc, err := svgdoc.ReadDocument(c.Args().First(), mode)
	if err != nil {
		return nil, errors.Wrap(err, "invalid input")
	}
	return doc, nil
}

// writeOutput writes to the named file, or to stdout for "-"
func writeOutput(c *cli.Context, filename string, data []byte) error {
	if filename == "-" {
		_, err := c.App.Writer.Write(data)
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

func compileAction(c *cli.Context) error {
	doc, err := readInput(c)
	if err != nil {
		return err
	}
	opts, err := compileOptions(c)
	if err != nil {
		return err
	}
	return writeOutput(c, c.String("out"), svgcode.Compile(doc, opts))
}

// compileOptions starts from the config file, if any,
// then applies the flags explicitly set.
func compileOptions(c *cli.Context) (svgcode.Options, error) {
	opts := svgcode.DefaultOptions()
	if file := c.String("config"); file != "" {
		var err error
		if opts, err = svgcode.ReadOptionsFile(file); err != nil {
			return opts, cli.Exit(err.Error(), usageCode)
		}
	}
	if c.IsSet("indent") {
		opts.Indent = c.String("indent")
	}
	if c.IsSet("indent-size") {
		opts.IndentSize = c.Int("indent-size")
	}
	if c.IsSet("int") {
		opts.IntCoords = c.Bool("int")
	}
	if c.IsSet("layout") {
		opts.Layout = svgcode.Layout(c.String("layout"))
	}
	if c.IsSet("width") || c.String("config") == "" {
		opts.Width = c.Int("width")
	}
	if c.IsSet("height") || c.String("config") == "" {
		opts.Height = c.Int("height")
	}
	if err := opts.Validate(); err != nil {
		return opts, cli.Exit(err.Error(), usageCode)
	}
	return opts, nil
}
