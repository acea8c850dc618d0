package outline

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	ForegroundDark  = "#000000"
	ForegroundLight = "#ffffff"
)

// Luminance is the relative luminance (0 black, 1 white) of a hex color.
// Unparseable colors report false.
func Luminance(hex string) (float64, bool) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return 0, false
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, false
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b, true
}

// ForegroundFor picks the text color to draw on a background of the given
// luminance.
func ForegroundFor(luminance float64) string {
	if luminance > 0.5 {
		return ForegroundDark
	}
	return ForegroundLight
}

// ContrastForeground picks the text color for a label drawn on hex. Colors
// that cannot be parsed are treated as black.
func ContrastForeground(hex string) string {
	lum, _ := Luminance(hex)
	return ForegroundFor(lum)
}
