package svgcode

import (
	"bytes"
	"strings"
)

// printer accumulates indented lines.
type printer struct {
	buf    bytes.Buffer
	depth  int
	indent string // one level of indentation
}

func (p *printer) line(s string) {
	if s == "" { // no trailing spaces on blank lines
		p.buf.WriteByte('\n')
		return
	}
	for i := 0; i < p.depth; i++ {
		p.buf.WriteString(p.indent)
	}
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

// block writes a chunk of source, where each leading
// tab stands for one nesting level below the current one.
func (p *printer) block(src string) {
	base := p.depth
	for _, l := range strings.Split(strings.TrimSuffix(src, "\n"), "\n") {
		trimmed := strings.TrimLeft(l, "\t")
		p.depth = base + len(l) - len(trimmed)
		p.line(trimmed)
	}
	p.depth = base
}

// call writes name(args...), either on one line or
// with one argument per line.
func (p *printer) call(name string, args []string, split bool) {
	if !split {
		p.line(name + "(" + strings.Join(args, ", ") + ")")
		return
	}
	p.line(name + "(")
	p.depth++
	for i, arg := range args {
		if i == len(args)-1 {
			p.line(arg + ")")
		} else {
			p.line(arg + ",")
		}
	}
	p.depth--
}
