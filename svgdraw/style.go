package svgdraw

import "github.com/benoitkugler/svgcanvas/svgdoc"

// Style is the paint of one draw operation.
// An empty color is not painted, and a zero Width
// stands for the surface default.
type Style struct {
	Fill, Outline svgdoc.Color
	Width         float64
}

func width(s svgdoc.Style) float64 {
	if w := s.StrokeWidth.Or(0); w > 0 {
		return w
	}
	return 0
}

// ResolveClosed returns the style of rectangles, ellipses and
// closed paths: fill, outline and width are passed through.
func ResolveClosed(s svgdoc.Style) Style {
	return Style{Fill: s.Fill, Outline: s.Stroke, Width: width(s)}
}

// ResolveOpenFill returns the style of the region
// covered by an open path: fill only.
func ResolveOpenFill(s svgdoc.Style) Style {
	return Style{Fill: s.Fill}
}

// ResolveOpenLine returns the style of each line of an open path.
func ResolveOpenLine(s svgdoc.Style) Style {
	return Style{Outline: s.Stroke, Width: width(s)}
}

// Emitted returns the style written in generated code,
// where a black outline is omitted.
// Surfaces always receive the unmodified style.
func (s Style) Emitted() Style {
	if s.Outline.IsBlack() {
		s.Outline = ""
	}
	return s
}

// WidthOr returns the width, or `def` if it is not set.
func (s Style) WidthOr(def float64) float64 {
	if s.Width == 0 {
		return def
	}
	return s.Width
}
