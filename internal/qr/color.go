package qr

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	qrerrors "github.com/cristianadrielbraun/qrlogo/internal/errors"
)

// ParseHexColor parses "#rrggbb", "#rgb" (the leading # is optional) or
// "transparent".
func ParseHexColor(s string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "transparent" {
		return color.RGBA{0, 0, 0, 0}, nil
	}

	v = strings.TrimPrefix(v, "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return color.RGBA{}, qrerrors.ErrInvalidInput("color", fmt.Sprintf("%q is not a hex color", s))
	}

	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.RGBA{}, qrerrors.ErrInvalidInput("color", fmt.Sprintf("%q is not a hex color", s)).WithCause(err)
	}
	return color.RGBA{uint8(n >> 16), uint8(n >> 8), uint8(n), 255}, nil
}

// HexColor formats c as #rrggbb, or "transparent" when fully transparent.
func HexColor(c color.RGBA) string {
	if c.A == 0 {
		return "transparent"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
