package terminal

import (
	"github.com/gdamore/tcell/v2"
)

// TcellColor converts the color to its tcell palette equivalent
func (c Color) TcellColor() tcell.Color {
	return tcell.PaletteColor(int(c.Index256() & 0xFF))
}

// ColorFromTcell maps a tcell color onto the session palette.
// Only palette entries 0, 1 and 7 (tcell's Black, Maroon and Silver) have an equivalent.
func ColorFromTcell(tc tcell.Color) (Color, bool) {
	// Palette colors sit directly above ColorValid, below the RGB flag
	if tc < tcell.ColorValid || tc >= tcell.ColorIsRGB {
		return 0, false
	}
	switch int(tc - tcell.ColorValid) {
	case 0:
		return ColorBlack, true
	case 1:
		return ColorRed, true
	case 7:
		return ColorWhite, true
	}
	return 0, false
}

// TcellAttr converts the style to a tcell attribute mask
func (s Style) TcellAttr() tcell.AttrMask {
	switch s {
	case StyleUnderline:
		return tcell.AttrUnderline
	case StyleBold:
		return tcell.AttrBold
	case StyleBlink:
		return tcell.AttrBlink
	case StyleReverse:
		return tcell.AttrReverse
	}
	return tcell.AttrNone
}

// StyleFromTcell picks the single style for a tcell attribute mask.
// Sessions support one style per cell; bold wins, then reverse, underline, blink.
func StyleFromTcell(mask tcell.AttrMask) Style {
	switch {
	case mask&tcell.AttrBold != 0:
		return StyleBold
	case mask&tcell.AttrReverse != 0:
		return StyleReverse
	case mask&tcell.AttrUnderline != 0:
		return StyleUnderline
	case mask&tcell.AttrBlink != 0:
		return StyleBlink
	}
	return StyleNormal
}

// TcellStyle returns the tcell style equivalent of the cell's attributes
func (c Cell) TcellStyle() tcell.Style {
	style := tcell.StyleDefault.
		Foreground(c.Fg.TcellColor()).
		Background(c.Bg.TcellColor())

	switch c.Style {
	case StyleUnderline:
		style = style.Underline(true)
	case StyleBold:
		style = style.Bold(true)
	case StyleBlink:
		style = style.Blink(true)
	case StyleReverse:
		style = style.Reverse(true)
	}
	return style
}

// CellFromTcell builds a cell from a rune and tcell style.
// Colors without a palette equivalent fall back to BlankCell's colors; ok
// reports whether both colors converted exactly.
func CellFromTcell(ch rune, st tcell.Style) (cell Cell, ok bool) {
	fg, bg, attrs := st.Decompose()

	cell = Cell{Ch: ch, Fg: BlankCell.Fg, Bg: BlankCell.Bg, Style: StyleFromTcell(attrs)}
	fgc, fgOK := ColorFromTcell(fg)
	if fgOK {
		cell.Fg = fgc
	}
	bgc, bgOK := ColorFromTcell(bg)
	if bgOK {
		cell.Bg = bgc
	}
	return cell, fgOK && bgOK
}

// SetTcellCell sets a back grid cell from a tcell style
func (s *Session) SetTcellCell(x, y int, ch rune, st tcell.Style) error {
	c, _ := CellFromTcell(ch, st)
	return s.SetCell(x, y, c.Style, c.Fg, c.Bg, c.Ch)
}
