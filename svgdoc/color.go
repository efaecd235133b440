package svgdoc

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// Color is a hexadecimal color, such as "#fff" or "#ff8000".
// The empty string means no color.
type Color string

// IsSet returns true for a non empty color.
func (c Color) IsSet() bool { return c != "" }

// IsBlack returns true for the short and long
// forms of opaque black.
func (c Color) IsBlack() bool {
	switch strings.ToLower(string(c)) {
	case "#000", "#000000":
		return true
	}
	return false
}

// RGBA decodes the 3, 4, 6 or 8 digits hexadecimal form.
// `ok` is false for an empty or invalid color.
func (c Color) RGBA() (out color.RGBA, ok bool) {
	s := strings.TrimPrefix(string(c), "#")
	if len(s) == 3 || len(s) == 4 {
		var long strings.Builder
		for _, r := range s {
			long.WriteRune(r)
			long.WriteRune(r)
		}
		s = long.String()
	}
	if len(s) != 6 && len(s) != 8 {
		return out, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return out, false
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

func hexOf(c color.RGBA) Color {
	return Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// expandHex4 rewrites the #rgba form as #rrggbbaa, which
// is the shortest form with alpha gg.SetHexColor accepts.
func expandHex4(v string) string {
	var long strings.Builder
	long.WriteByte('#')
	for _, r := range v[1:] {
		long.WriteRune(r)
		long.WriteRune(r)
	}
	return long.String()
}

// parseColor normalizes an SVG paint value. Hex values are kept
// as written, so that "#000" and "#000000" remain distinct,
// except the 4 digits form which is expanded to 8 digits.
func parseColor(v string) (Color, error) {
	v = strings.TrimSpace(v)
	lv := strings.ToLower(v)
	switch {
	case lv == "" || lv == "none" || lv == "transparent":
		return "", nil
	case strings.HasPrefix(v, "#"):
		if _, ok := Color(v).RGBA(); !ok {
			return "", errors.Errorf("invalid hex color %q", v)
		}
		if len(v) == 5 {
			return Color(expandHex4(v)), nil
		}
		return Color(v), nil
	case strings.HasPrefix(lv, "rgb(") && strings.HasSuffix(lv, ")"):
		parts := splitOnCommaOrSpace(lv[len("rgb(") : len(lv)-1])
		if len(parts) != 3 {
			return "", errParamMismatch
		}
		var cs [3]uint8
		for i, p := range parts {
			f, err := readChannel(p)
			if err != nil {
				return "", err
			}
			cs[i] = f
		}
		return hexOf(color.RGBA{R: cs[0], G: cs[1], B: cs[2], A: 0xff}), nil
	}
	if named, ok := colornames.Map[lv]; ok {
		return hexOf(named), nil
	}
	return "", errors.Errorf("unsupported color %q", v)
}

// readChannel parses a 0-255 integer or a percentage
func readChannel(v string) (uint8, error) {
	d := 1.
	if strings.HasSuffix(v, "%") {
		d = 100. / 255
		v = strings.TrimSuffix(v, "%")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid color channel %q", v)
	}
	f /= d
	if f < 0 {
		f = 0
	} else if f > 255 {
		f = 255
	}
	return uint8(f + 0.5), nil
}
