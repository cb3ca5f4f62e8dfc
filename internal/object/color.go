package object

import (
	"fmt"
	"strings"
)

// Color is a renderer-independent color token.
type Color uint8

const (
	ColorWhite Color = iota
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorGreen
	ColorRed
	ColorGray
)

var colorNames = [...]string{
	ColorWhite:   "white",
	ColorYellow:  "yellow",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorGreen:   "green",
	ColorRed:     "red",
	ColorGray:    "gray",
}

// DefaultPalette is the confetti palette.
var DefaultPalette = []Color{ColorYellow, ColorMagenta, ColorCyan, ColorGreen, ColorRed}

// String returns the color name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", int(c))
}

// MarshalText encodes the color by name.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseColor resolves a color by name.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", name)
}

// ParsePalette resolves a comma-separated list of color names.
func ParsePalette(list string) ([]Color, error) {
	var palette []Color
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := ParseColor(name)
		if err != nil {
			return nil, err
		}
		palette = append(palette, c)
	}
	return palette, nil
}
