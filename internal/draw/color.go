package draw

import "strconv"

// Point represents a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Color is a terminal palette entry. ColorNone marks an unset pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorGreen
	ColorRed
	ColorGray
)

// ANSI 16-color foreground codes, indexed by Color.
var fgCodes = [...]int{
	ColorNone:    39,
	ColorWhite:   97,
	ColorYellow:  93,
	ColorMagenta: 95,
	ColorCyan:    96,
	ColorGreen:   92,
	ColorRed:     91,
	ColorGray:    90,
}

// ColorReset restores the default terminal colors.
const ColorReset = "\033[0m"

func (c Color) fg() int {
	if int(c) < len(fgCodes) {
		return fgCodes[c]
	}
	return fgCodes[ColorNone]
}

// Background codes are the foreground codes shifted by 10.
func (c Color) bg() int {
	return c.fg() + 10
}

// Foreground returns the escape sequence selecting c as the text color.
func (c Color) Foreground() string {
	return "\033[" + strconv.Itoa(c.fg()) + "m"
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)
