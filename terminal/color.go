package terminal

import "strconv"

// Color is a cell color, mapped into the xterm-256 palette
type Color uint8

const (
	ColorBlack Color = iota
	ColorRed
	ColorWhite
)

// Index256 returns the xterm-256 palette index for the color.
// Unknown values fall through to their own numeric value.
func (c Color) Index256() uint16 {
	switch c {
	case ColorBlack:
		return 0
	case ColorRed:
		return 1
	case ColorWhite:
		return 7
	}
	return uint16(c)
}

func (c Color) String() string {
	switch c {
	case ColorBlack:
		return "black"
	case ColorRed:
		return "red"
	case ColorWhite:
		return "white"
	}
	return "color(" + strconv.Itoa(int(c)) + ")"
}

// Style is a single text attribute; styles are mutually exclusive per cell
type Style uint8

const (
	StyleNormal Style = iota
	StyleUnderline
	StyleBold
	StyleBlink
	StyleReverse
)

// sequence returns the SGR fragment for the style, nil for StyleNormal
func (s Style) sequence() []byte {
	switch s {
	case StyleUnderline:
		return csiAttrUnderline
	case StyleBold:
		return csiAttrBold
	case StyleBlink:
		return csiAttrBlink
	case StyleReverse:
		return csiAttrReverse
	}
	return nil
}

func (s Style) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleUnderline:
		return "underline"
	case StyleBold:
		return "bold"
	case StyleBlink:
		return "blink"
	case StyleReverse:
		return "reverse"
	}
	return "style(" + strconv.Itoa(int(s)) + ")"
}

// Cell represents a single terminal cell
type Cell struct {
	Ch    rune
	Fg    Color
	Bg    Color
	Style Style
}

// BlankCell is the content of every cell when a session starts
var BlankCell = Cell{Ch: ' ', Fg: ColorWhite, Bg: ColorBlack, Style: StyleNormal}

