package svgcode

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Layout controls how the arguments of a drawing call are written.
type Layout string

const (
	// LayoutAuto writes calls with fewer than three arguments
	// on one line, and the others one argument per line.
	LayoutAuto   Layout = "auto"
	LayoutInline Layout = "inline"
	LayoutSplit  Layout = "split"
)

// Options holds the formatting choices of the generated program.
type Options struct {
	// Indent is the indentation symbol, repeated IndentSize
	// times per nesting level.
	Indent     string `yaml:"indent"`
	IndentSize int    `yaml:"indentSize"`
	// IntCoords truncates every coordinate to an integer.
	IntCoords bool   `yaml:"intCoords"`
	Layout    Layout `yaml:"layout"`
	// Size of the canvas created by the generated program.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultOptions returns the options used for zero fields.
func DefaultOptions() Options {
	return Options{
		Indent:     "\t",
		IndentSize: 1,
		Layout:     LayoutAuto,
		Width:      1280,
		Height:     720,
	}
}

// Validate checks the option values.
func (o Options) Validate() error {
	switch o.Layout {
	case LayoutAuto, LayoutInline, LayoutSplit, "":
	default:
		return errors.Errorf("unknown layout %q (expected auto, inline or split)", o.Layout)
	}
	if strings.Trim(o.Indent, " \t") != "" {
		return errors.Errorf("invalid indent symbol %q (expected spaces or tabs)", o.Indent)
	}
	if o.IndentSize < 0 {
		return errors.Errorf("negative indent size %d", o.IndentSize)
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.Errorf("invalid canvas size %dx%d", o.Width, o.Height)
	}
	return nil
}

// withDefaults replaces zero fields by their default value
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Indent == "" {
		o.Indent = def.Indent
	}
	if o.IndentSize == 0 {
		o.IndentSize = def.IndentSize
	}
	if o.Layout == "" {
		o.Layout = def.Layout
	}
	if o.Width == 0 {
		o.Width = def.Width
	}
	if o.Height == 0 {
		o.Height = def.Height
	}
	return o
}

// ReadOptions decodes YAML options from `r`.
// Fields missing from the input keep their default value,
// unknown fields are rejected.
func ReadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return opts, errors.Wrap(err, "decoding options")
	}
	return opts, opts.Validate()
}

// ReadOptionsFile is like ReadOptions, reading from the named file.
func ReadOptionsFile(filename string) (Options, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Options{}, err
	}
	defer f.Close()
	opts, err := ReadOptions(f)
	if err != nil {
		return opts, errors.Wrapf(err, "reading %s", filename)
	}
	return opts, nil
}
