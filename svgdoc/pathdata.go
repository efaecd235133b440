package svgdoc

import (
	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2/strconv"
)

// This file implements the parsing of the `d` attribute of paths.

// number of arguments expected by each command
var argCounts = map[byte]int{
	'm': 2, 'l': 2, 'h': 1, 'v': 1, 'z': 0,
	'c': 6, 's': 4, 'q': 4, 't': 2, 'a': 7,
}

// pathCursor is used while parsing path data
type pathCursor struct {
	data []byte
	pos  int

	segments     []Segment
	cur, subPath Point
	hasCur       bool

	args [7]float64
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == ','
}

func (c *pathCursor) skipSpaces() {
	for c.pos < len(c.data) && isSpace(c.data[c.pos]) {
		c.pos++
	}
}

func (c *pathCursor) readNumber() (float64, error) {
	c.skipSpaces()
	f, n := strconv.ParseFloat(c.data[c.pos:])
	if n == 0 {
		return 0, errors.Errorf("expected number at offset %d in path data", c.pos)
	}
	c.pos += n
	return f, nil
}

// readFlag reads an arc flag, which may not be separated
// from the next argument.
func (c *pathCursor) readFlag() (float64, error) {
	c.skipSpaces()
	if c.pos < len(c.data) {
		switch c.data[c.pos] {
		case '0':
			c.pos++
			return 0, nil
		case '1':
			c.pos++
			return 1, nil
		}
	}
	return 0, errors.Errorf("expected arc flag at offset %d in path data", c.pos)
}

func (c *pathCursor) readArgs(cmd byte, n int) error {
	for i := 0; i < n; i++ {
		var err error
		if cmd == 'a' && (i == 3 || i == 4) {
			c.args[i], err = c.readFlag()
		} else {
			c.args[i], err = c.readNumber()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// point returns a copy of `p`, to be stored in a segment
func point(p Point) *Point { return &p }

func (c *pathCursor) add(kind SegmentKind, end Point) {
	seg := Segment{Kind: kind, End: point(end)}
	if c.hasCur {
		seg.Start = point(c.cur)
	}
	c.segments = append(c.segments, seg)
	c.cur, c.hasCur = end, true
}

// apply adds the segment described by `cmd` and the current arguments.
// `rel` is true for lower case commands.
func (c *pathCursor) apply(cmd byte, rel bool) {
	var dx, dy float64
	if rel {
		dx, dy = c.cur.X, c.cur.Y
	}
	a := c.args
	switch cmd {
	case 'm':
		p := Point{a[0] + dx, a[1] + dy}
		c.add(MoveSegment, p)
		c.subPath = p
	case 'l', 't':
		kind := LineSegment
		if cmd == 't' {
			kind = CurveSegment
		}
		c.add(kind, Point{a[0] + dx, a[1] + dy})
	case 'h':
		c.add(LineSegment, Point{a[0] + dx, c.cur.Y})
	case 'v':
		c.add(LineSegment, Point{c.cur.X, a[0] + dy})
	case 'c':
		c.add(CurveSegment, Point{a[4] + dx, a[5] + dy})
	case 's', 'q':
		c.add(CurveSegment, Point{a[2] + dx, a[3] + dy})
	case 'a':
		c.add(CurveSegment, Point{a[5] + dx, a[6] + dy})
	case 'z':
		c.add(CloseSegment, c.subPath)
	}
}

// parsePathData returns the segments described by `d`.
// On error, the segments read so far are returned.
func parsePathData(d string) ([]Segment, error) {
	c := pathCursor{data: []byte(d)}
	var cmd byte
	for {
		c.skipSpaces()
		if c.pos >= len(c.data) {
			break
		}
		b := c.data[c.pos]
		lower := b | 0x20 // ASCII lower case
		if _, isCmd := argCounts[lower]; isCmd {
			cmd = b
			c.pos++
		} else if cmd == 0 {
			return c.segments, errors.Errorf("invalid path data: missing command at offset %d", c.pos)
		} else if cmd|0x20 == 'z' {
			return c.segments, errors.Errorf("invalid path data: unexpected argument after close at offset %d", c.pos)
		}
		lowerCmd := cmd | 0x20
		if lowerCmd != 'm' && !c.hasCur {
			return c.segments, errors.New("invalid path data: must start with a move command")
		}
		if err := c.readArgs(lowerCmd, argCounts[lowerCmd]); err != nil {
			return c.segments, err
		}
		c.apply(lowerCmd, cmd == lowerCmd)
		// implicit commands following a move are lines
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
	}
	return c.segments, nil
}
