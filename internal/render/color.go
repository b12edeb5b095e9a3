package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrBadColor is returned for a color string neither parser understands.
var ErrBadColor = errors.New("render: unrecognised color")

// ParseColor accepts the CSS forms sprites use: space- or comma-separated
// "rgb(r g b)" and "#rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body := strings.ReplaceAll(s[4:len(s)-1], ",", " ")
		parts := strings.Fields(body)
		if len(parts) != 3 {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		var c [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(p, 10, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
			}
			c[i] = uint8(v)
		}
		return color.RGBA{c[0], c[1], c[2], 255}, nil

	case strings.HasPrefix(s, "#") && len(s) == 7:
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}

// colorOr parses s, falling back when it is empty or malformed.
func colorOr(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
