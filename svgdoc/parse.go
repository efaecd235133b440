package svgdoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

// ErrorMode determines if the parser ignores, errors out, or logs a warning
// when it does not handle an element or an attribute value found in the document.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// ParseErrorMode is the inverse of ErrorMode.String.
func ParseErrorMode(s string) (ErrorMode, error) {
	for _, m := range [...]ErrorMode{IgnoreErrorMode, WarnErrorMode, StrictErrorMode} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, errors.Errorf("unknown error mode %q (expected ignore, warn or strict)", s)
}

// Logger receives the warnings emitted in WarnErrorMode.
var Logger logrus.FieldLogger = logrus.StandardLogger()

var (
	errParamMismatch = errors.New("param mismatch")
	errEmptyDocument = errors.New("invalid svg document: no element found")
)

// RootID is the identifier of the root group when
// the <svg> element has no id.
const RootID = "root"

// elements whose content is never drawn
var skippedElements = map[string]bool{
	"defs": true, "title": true, "desc": true, "metadata": true,
	"style": true, "symbol": true, "clipPath": true, "mask": true,
	"marker": true, "pattern": true, "linearGradient": true, "radialGradient": true,
}

// docCursor is used while parsing SVG files
type docCursor struct {
	root       *Group
	groups     []*Group // open groups, innermost last
	styleStack []Style
	skipDepth  int // > 0 inside an ignored subtree
	errorMode  ErrorMode
	anonGroups int
}

func (c *docCursor) handleError(err error) error {
	switch c.errorMode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		Logger.Warn(err)
	}
	return nil
}

func (c *docCursor) style() Style { return c.styleStack[len(c.styleStack)-1] }

func (c *docCursor) append(n Node) {
	g := c.groups[len(c.groups)-1]
	g.Children = append(g.Children, n)
}

func (c *docCursor) readStyleAttr(curStyle *Style, k, v string) error {
	if v == "inherit" {
		return nil
	}
	switch k {
	case "fill", "stroke":
		col, err := parseColor(v)
		if err != nil {
			return c.handleError(err)
		}
		if k == "fill" {
			curStyle.Fill = col
		} else {
			curStyle.Stroke = col
		}
	case "stroke-width":
		width, err := parseLength(v)
		if err != nil {
			return c.handleError(err)
		}
		curStyle.StrokeWidth = width
	case "transform":
		return c.handleError(errors.New("transform attribute is not supported"))
	}
	return nil
}

// pushStyle parses the style element, and push it on the style stack.
// Note that this parses both the contents of a style attribute plus
// direct fill and stroke attributes.
func (c *docCursor) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	// Make a copy of the top style
	curStyle := c.style()
	for _, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) == 2 {
			k := strings.TrimSpace(strings.ToLower(kv[0]))
			v := strings.TrimSpace(kv[1])
			if err := c.readStyleAttr(&curStyle, k, v); err != nil {
				return err
			}
		}
	}
	c.styleStack = append(c.styleStack, curStyle)
	return nil
}

func (c *docCursor) readStartElement(se xml.StartElement) error {
	if c.skipDepth > 0 || skippedElements[se.Name.Local] {
		c.skipDepth++
		return nil
	}
	if c.root == nil && se.Name.Local != "svg" {
		return errors.Errorf("invalid svg document: unexpected root element <%s>", se.Name.Local)
	}
	df, ok := drawFuncs[se.Name.Local]
	if !ok {
		c.skipDepth++
		return c.handleError(errors.New("Cannot process svg element " + se.Name.Local))
	}
	if err := c.pushStyle(se.Attr); err != nil {
		return err
	}
	return df(c, se.Attr)
}

func (c *docCursor) readEndElement(se xml.EndElement) {
	if c.skipDepth > 0 {
		c.skipDepth--
		return
	}
	c.styleStack = c.styleStack[:len(c.styleStack)-1]
	switch se.Name.Local {
	case "svg", "g":
		c.groups = c.groups[:len(c.groups)-1]
	}
}

// ReadDocumentStream reads the document tree from the given io.Reader.
// The returned group is the <svg> root element.
// This only supports a sub-set of SVG: `errMode` determines if the parser ignores,
// errors out, or logs a warning when it does not handle an element found in the document.
func ReadDocumentStream(stream io.Reader, errMode ErrorMode) (*Group, error) {
	cursor := &docCursor{styleStack: []Style{{}}, errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "invalid svg xml document")
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			if err = cursor.readStartElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			cursor.readEndElement(se)
		}
	}
	if cursor.root == nil {
		return nil, errEmptyDocument
	}
	return cursor.root, nil
}

// ReadDocument reads the document tree from the named file.
// See ReadDocumentStream for the meaning of `errMode`.
func ReadDocument(file string, errMode ErrorMode) (*Group, error) {
	fin, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	doc, err := ReadDocumentStream(fin, errMode)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", file)
	}
	return doc, nil
}

// parseLength parses a number with an optional "px" unit.
func parseLength(v string) (Float, error) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Float{}, errors.Errorf("unsupported length %q", v)
	}
	return Num(f), nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
}

// readLengths reads the given attributes into `dst`,
// using the attribute name as key.
func (c *docCursor) readLengths(attrs []xml.Attr, dst map[string]*Float) error {
	for _, attr := range attrs {
		f, ok := dst[attr.Name.Local]
		if !ok {
			continue
		}
		v, err := parseLength(attr.Value)
		if err != nil {
			if err = c.handleError(err); err != nil {
				return err
			}
			continue
		}
		*f = v
	}
	return nil
}

func idOf(attrs []xml.Attr) string {
	for _, attr := range attrs {
		if attr.Name.Local == "id" {
			return attr.Value
		}
	}
	return ""
}

type svgFunc func(c *docCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":      gF,
	"g":        gF,
	"path":     pathF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles ellipse also
	"line":     lineF,
	"polyline": polylineF,
	"polygon":  polygonF,
}

// gF opens a new group; the first one is the root.
func gF(c *docCursor, attrs []xml.Attr) error {
	g := &Group{ID: idOf(attrs)}
	if c.root == nil {
		if g.ID == "" {
			g.ID = RootID
		}
		c.root = g
	} else {
		if g.ID == "" {
			c.anonGroups++
			g.ID = fmt.Sprintf("group%d", c.anonGroups)
		}
		c.append(g)
	}
	c.groups = append(c.groups, g)
	return nil
}

func rectF(c *docCursor, attrs []xml.Attr) error {
	r := &Rect{ID: idOf(attrs), Style: c.style()}
	err := c.readLengths(attrs, map[string]*Float{
		"x": &r.X, "y": &r.Y, "width": &r.Width, "height": &r.Height,
	})
	if err != nil {
		return err
	}
	c.append(r)
	return nil
}

func circleF(c *docCursor, attrs []xml.Attr) error {
	e := &Ellipse{ID: idOf(attrs), Style: c.style()}
	var r Float
	err := c.readLengths(attrs, map[string]*Float{
		"cx": &e.Cx, "cy": &e.Cy, "rx": &e.Rx, "ry": &e.Ry, "r": &r,
	})
	if err != nil {
		return err
	}
	if r.Valid {
		e.Rx, e.Ry = r, r
	}
	c.append(e)
	return nil
}

func pathF(c *docCursor, attrs []xml.Attr) error {
	p := &Path{ID: idOf(attrs), Style: c.style()}
	for _, attr := range attrs {
		if attr.Name.Local != "d" {
			continue
		}
		segments, err := parsePathData(attr.Value)
		if err != nil {
			// keep what has been parsed so far
			if err = c.handleError(err); err != nil {
				return err
			}
		}
		p.Segments = segments
	}
	c.append(p)
	return nil
}

func lineF(c *docCursor, attrs []xml.Attr) error {
	var x1, y1, x2, y2 Float
	err := c.readLengths(attrs, map[string]*Float{
		"x1": &x1, "y1": &y1, "x2": &x2, "y2": &y2,
	})
	if err != nil {
		return err
	}
	p := &Path{ID: idOf(attrs), Style: c.style()}
	start, end := Point{x1.Or(0), y1.Or(0)}, Point{x2.Or(0), y2.Or(0)}
	p.Segments = []Segment{
		{Kind: MoveSegment, End: point(start)},
		{Kind: LineSegment, Start: point(start), End: point(end)},
	}
	c.append(p)
	return nil
}

// readPoints returns the path described by the `points` attribute
func (c *docCursor) readPoints(attrs []xml.Attr) (*Path, error) {
	p := &Path{ID: idOf(attrs), Style: c.style()}
	for _, attr := range attrs {
		if attr.Name.Local != "points" {
			continue
		}
		fields := splitOnCommaOrSpace(attr.Value)
		if len(fields)%2 != 0 {
			return p, c.handleError(errors.New("polygon has odd number of points"))
		}
		var cur Point
		for i := 0; i < len(fields); i += 2 {
			x, errX := strconv.ParseFloat(fields[i], 64)
			y, errY := strconv.ParseFloat(fields[i+1], 64)
			if errX != nil || errY != nil {
				p.Segments = nil
				return p, c.handleError(errors.Errorf("invalid points %q", attr.Value))
			}
			next := Point{x, y}
			if i == 0 {
				p.Segments = append(p.Segments, Segment{Kind: MoveSegment, End: point(next)})
			} else {
				p.Segments = append(p.Segments, Segment{Kind: LineSegment, Start: point(cur), End: point(next)})
			}
			cur = next
		}
	}
	return p, nil
}

func polylineF(c *docCursor, attrs []xml.Attr) error {
	p, err := c.readPoints(attrs)
	if err != nil {
		return err
	}
	c.append(p)
	return nil
}

func polygonF(c *docCursor, attrs []xml.Attr) error {
	p, err := c.readPoints(attrs)
	if err != nil {
		return err
	}
	if len(p.Segments) > 1 {
		last, first := p.Segments[len(p.Segments)-1].End, p.Segments[0].End
		p.Segments = append(p.Segments, Segment{Kind: CloseSegment, Start: point(*last), End: point(*first)})
	}
	c.append(p)
	return nil
}
