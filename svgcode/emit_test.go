package svgcode

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/benoitkugler/svgcanvas/svgdoc"
	"github.com/benoitkugler/svgcanvas/svgdraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scene = `<svg id="scene">
	<rect x="0.5" y="1" width="10" height="20.25" fill="#fff" stroke="#f00" stroke-width="2"/>
	<g id="shapes" stroke="#000">
		<circle cx="5" cy="5" r="2" fill="#0f0"/>
		<polyline points="0,0 10,-5 20,0" fill="#00f" stroke-width="3"/>
		<g id="inner">
			<path d="M0 0 L5 0 L5 5 Z" stroke="#123456"/>
			<line x1="1" y1="1" x2="2" y2="3"/>
		</g>
	</g>
	<g/>
	<rect width="0" height="1"/>
</svg>`

func readScene(t *testing.T) *svgdoc.Group {
	t.Helper()
	doc, err := svgdoc.ReadDocumentStream(strings.NewReader(scene), svgdoc.StrictErrorMode)
	require.NoError(t, err)
	return doc
}

func parseDoc(t *testing.T, input string) *svgdoc.Group {
	t.Helper()
	doc, err := svgdoc.ReadDocumentStream(strings.NewReader(input), svgdoc.StrictErrorMode)
	require.NoError(t, err)
	return doc
}

func rootRect(style svgdoc.Style) *svgdoc.Group {
	return &svgdoc.Group{ID: "root", Children: []svgdoc.Node{
		&svgdoc.Rect{X: svgdoc.Num(0), Y: svgdoc.Num(0), Width: svgdoc.Num(10), Height: svgdoc.Num(10), Style: style},
	}}
}

func TestCompileRectangle(t *testing.T) {
	src := string(Compile(rootRect(svgdoc.Style{Fill: "#fff"}), Options{}))
	assert.True(t, strings.HasPrefix(src, "// Code generated"))
	assert.Contains(t, src, `
	root := func() {
		drawRectangle(pts{{0, 0}, {10, 10}}, fill("#fff"))
	}
	root()
`)
	assert.Contains(t, src, "gg.NewContext(1280, 720)")
	assert.True(t, strings.HasSuffix(src, "log.Fatal(err)\n\t}\n}\n"))
}

func TestCompileEmptyGroup(t *testing.T) {
	doc := &svgdoc.Group{ID: "root", Children: []svgdoc.Node{&svgdoc.Group{ID: "empty"}}}
	src := string(Compile(doc, Options{}))
	// the group is still defined and invoked
	assert.Contains(t, src, `
	root := func() {
		empty := func() {
			return
		}
		empty()
	}
	root()
`)
	assert.Equal(t, 1, strings.Count(src, "\treturn\n"))

	src = string(Compile(&svgdoc.Group{ID: "root"}, Options{}))
	assert.Contains(t, src, "\troot := func() {\n\t\treturn\n\t}\n\troot()\n")
}

func TestCompileOmitsBlackOutline(t *testing.T) {
	for _, black := range []svgdoc.Color{"#000", "#000000"} {
		src := string(Compile(rootRect(svgdoc.Style{Fill: "#fff", Stroke: black}), Options{}))
		assert.Contains(t, src, `drawRectangle(pts{{0, 0}, {10, 10}}, fill("#fff"))`)
		assert.NotContains(t, src, "outline(\"")
	}

	src := string(Compile(rootRect(svgdoc.Style{Stroke: "#001"}), Options{}))
	assert.Contains(t, src, `drawRectangle(pts{{0, 0}, {10, 10}}, outline("#001"))`)
}

func TestCompileShortAlphaColor(t *testing.T) {
	doc := parseDoc(t, `<svg><rect width="10" height="10" fill="#f00f" stroke="#00f8"/></svg>`)
	src := string(Compile(doc, Options{Layout: LayoutInline}))
	assert.Contains(t, src, `drawRectangle(pts{{0, 0}, {10, 10}}, fill("#ff0000ff"), outline("#0000ff88")`)
}

func TestCompileLayouts(t *testing.T) {
	doc := rootRect(svgdoc.Style{Fill: "#fff", Stroke: "#f00", StrokeWidth: svgdoc.Num(2.5)})
	split := `
		drawRectangle(
			pts{{0, 0}, {10, 10}},
			fill("#fff"),
			outline("#f00"),
			width(2.5))
`
	inline := "\n\t\tdrawRectangle(pts{{0, 0}, {10, 10}}, fill(\"#fff\"), outline(\"#f00\"), width(2.5))\n"

	assert.Contains(t, string(Compile(doc, Options{})), split)
	assert.Contains(t, string(Compile(doc, Options{Layout: LayoutSplit})), split)
	assert.Contains(t, string(Compile(doc, Options{Layout: LayoutInline})), inline)

	// two arguments stay inline in auto mode, not in split mode
	doc = rootRect(svgdoc.Style{Fill: "#fff"})
	assert.Contains(t, string(Compile(doc, Options{})), `drawRectangle(pts{{0, 0}, {10, 10}}, fill("#fff"))`)
	assert.Contains(t, string(Compile(doc, Options{Layout: LayoutSplit})), "drawRectangle(\n\t\t\tpts{{0, 0}, {10, 10}},\n\t\t\tfill(\"#fff\"))\n")

	// no style argument
	doc = rootRect(svgdoc.Style{})
	assert.Contains(t, string(Compile(doc, Options{Layout: LayoutSplit})), "\t\tdrawRectangle(pts{{0, 0}, {10, 10}})\n")
}

func TestCompileIntCoords(t *testing.T) {
	doc := &svgdoc.Group{ID: "root", Children: []svgdoc.Node{
		&svgdoc.Rect{X: svgdoc.Num(0.5), Y: svgdoc.Num(1.25), Width: svgdoc.Num(10.75), Height: svgdoc.Num(2.5), Style: svgdoc.Style{StrokeWidth: svgdoc.Num(1.5)}},
	}}
	assert.Contains(t, string(Compile(doc, Options{})), "drawRectangle(pts{{0.5, 1.25}, {11.25, 3.75}}, width(1.5))")
	// widths are not coordinates
	assert.Contains(t, string(Compile(doc, Options{IntCoords: true})), "drawRectangle(pts{{0, 1}, {11, 3}}, width(1.5))")
}

func TestCompileIndent(t *testing.T) {
	src := string(Compile(rootRect(svgdoc.Style{}), Options{Indent: " ", IndentSize: 4, Width: 10, Height: 20}))
	assert.Contains(t, src, "\n    \"flag\"\n")
	assert.Contains(t, src, "\n    root := func() {\n        drawRectangle(pts{{0, 0}, {10, 10}})\n    }\n    root()\n")
	assert.Contains(t, src, "gg.NewContext(10, 20)")
	assert.NotContains(t, src, "\t")
	for _, line := range strings.Split(src, "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

func TestGroupIdentifiers(t *testing.T) {
	var children []svgdoc.Node
	for _, id := range []string{"a", "a", "", "", "1x", "main", "func", "my-group", "été", "fill", "nil", "len", "error"} {
		children = append(children, &svgdoc.Group{ID: id})
	}
	src := string(Compile(&svgdoc.Group{ID: "root", Children: children}, Options{}))
	for _, name := range []string{"a", "a2", "group", "group2", "g1x", "main2", "func2", "my_group", "été", "fill2", "nil2", "len2", "error2"} {
		assert.Contains(t, src, "\t\t"+name+" := func() {\n", name)
		assert.Contains(t, src, "\t\t"+name+"()\n", name)
	}
}

func TestCompiledSourceParses(t *testing.T) {
	doc := readScene(t)
	for _, opts := range []Options{
		{},
		{Layout: LayoutInline},
		{Layout: LayoutSplit, IntCoords: true},
		{Indent: " ", IndentSize: 2},
	} {
		_, err := parser.ParseFile(token.NewFileSet(), "main.go", Compile(doc, opts), parser.AllErrors)
		assert.NoError(t, err, opts)
	}
}

// TestCompiledProgramRuns builds the generated programs with the go
// command and checks that they write an image.
func TestCompiledProgramRuns(t *testing.T) {
	if testing.Short() {
		t.Skip("builds programs")
	}
	goCmd, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go command not found")
	}

	// the programs are built inside the module, which requires gg
	dir, err := os.MkdirTemp(".", "compiled")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	dir, err = filepath.Abs(dir)
	require.NoError(t, err)

	for i, input := range []struct {
		doc  *svgdoc.Group
		opts Options
	}{
		{readScene(t), Options{Width: 30, Height: 30}},
		{readScene(t), Options{Layout: LayoutSplit, IntCoords: true, Indent: " ", IndentSize: 2, Width: 30, Height: 30}},
		{parseDoc(t, `<svg id="nil"><g id="err"><g id="len"><rect width="1" height="1" fill="#f00f"/></g></g><g id="true"/></svg>`), Options{Width: 10, Height: 10}},
	} {
		src := filepath.Join(dir, "main"+strconv.Itoa(i)+".go")
		require.NoError(t, os.WriteFile(src, Compile(input.doc, input.opts), 0o644))
		bin := filepath.Join(dir, "prog"+strconv.Itoa(i))

		build := exec.Command(goCmd, "build", "-o", bin, src)
		build.Dir = dir
		out, err := build.CombinedOutput()
		require.NoError(t, err, string(out))

		png := filepath.Join(dir, "out"+strconv.Itoa(i)+".png")
		out, err = exec.Command(bin, "-o", png).CombinedOutput()
		require.NoError(t, err, string(out))
		_, err = os.Stat(png)
		assert.NoError(t, err)
	}
}

var helperKinds = map[string]svgdraw.OpKind{
	"drawOval":      svgdraw.OvalOp,
	"drawRectangle": svgdraw.RectangleOp,
	"drawPolygon":   svgdraw.PolygonOp,
	"drawLine":      svgdraw.LineOp,
}

func number(t *testing.T, e ast.Expr) float64 {
	sign := 1.
	if u, ok := e.(*ast.UnaryExpr); ok && u.Op == token.SUB {
		sign, e = -1, u.X
	}
	v, err := strconv.ParseFloat(e.(*ast.BasicLit).Value, 64)
	require.NoError(t, err)
	return sign * v
}

func str(t *testing.T, e ast.Expr) string {
	s, err := strconv.Unquote(e.(*ast.BasicLit).Value)
	require.NoError(t, err)
	return s
}

// helperCalls returns the draw operations of the generated main function,
// in source order.
func helperCalls(t *testing.T, src []byte) []svgdraw.Op {
	f, err := parser.ParseFile(token.NewFileSet(), "main.go", src, 0)
	require.NoError(t, err)
	var main *ast.FuncDecl
	for _, decl := range f.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Name.Name == "main" {
			main = fd
		}
	}
	require.NotNil(t, main)

	var ops []svgdraw.Op
	ast.Inspect(main.Body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		fn, ok := call.Fun.(*ast.Ident)
		if !ok {
			return true
		}
		kind, ok := helperKinds[fn.Name]
		if !ok {
			return true
		}
		op := svgdraw.Op{Kind: kind}
		for _, elt := range call.Args[0].(*ast.CompositeLit).Elts {
			pair := elt.(*ast.CompositeLit).Elts
			op.Points = append(op.Points, svgdoc.Point{X: number(t, pair[0]), Y: number(t, pair[1])})
		}
		for _, arg := range call.Args[1:] {
			opt := arg.(*ast.CallExpr)
			switch opt.Fun.(*ast.Ident).Name {
			case "fill":
				op.Style.Fill = svgdoc.Color(str(t, opt.Args[0]))
			case "outline":
				op.Style.Outline = svgdoc.Color(str(t, opt.Args[0]))
			case "width":
				op.Style.Width = number(t, opt.Args[0])
			}
		}
		ops = append(ops, op)
		return false
	})
	return ops
}

// The generated program issues the same operations as the
// renderer, black outlines aside.
func TestCompileMatchesRenderer(t *testing.T) {
	doc := readScene(t)

	var rec svgdraw.Recorder
	svgdraw.Render(doc, &rec)
	for i := range rec.Ops {
		rec.Ops[i].Style = rec.Ops[i].Style.Emitted()
	}
	require.Len(t, rec.Ops, 8)

	for _, layout := range []Layout{LayoutAuto, LayoutInline, LayoutSplit} {
		got := helperCalls(t, Compile(doc, Options{Layout: layout}))
		assert.Equal(t, rec.Ops, got, layout)
	}
}
