package terminal

// Repaint selects how Present serializes the back grid
type Repaint uint8

const (
	// RepaintFull re-emits every cell in row-major order on each Present
	RepaintFull Repaint = iota
	// RepaintDiff emits only cells that differ from the front grid, positioning the cursor before each run
	RepaintDiff
)

func (r Repaint) String() string {
	switch r {
	case RepaintFull:
		return "full"
	case RepaintDiff:
		return "diff"
	}
	return "unknown"
}

// writeCell emits one cell: reset, style, foreground, background, character
func writeCell(w *outputBuffer, c Cell) {
	w.Write(csiSGR0)
	writeStyle(w, c.Style)
	writeFg256(w, uint8(c.Fg.Index256()&0xFF))
	writeBg256(w, uint8(c.Bg.Index256()&0xFF))

	r := c.Ch
	if r == 0 {
		// NUL does not advance the cursor
		r = ' '
	}
	w.WriteRune(r)
}

// renderFull emits every cell, relying on implicit cursor advance and line wrap
func renderFull(w *outputBuffer, g *Grid) {
	for _, c := range g.cells {
		writeCell(w, c)
	}
}

// renderDiff emits the cells of back that differ from front.
// Each contiguous dirty run within a row is preceded by a cursor position.
func renderDiff(w *outputBuffer, front, back *Grid) {
	width, height := back.width, back.height

	for y := 0; y < height; y++ {
		rowStart := y * width
		x := 0

		for x < width {
			if back.cells[rowStart+x] == front.cells[rowStart+x] {
				x++
				continue
			}

			// Position cursor once for this dirty region
			writeCursorPos(w, x, y)

			for x < width {
				idx := rowStart + x
				c := back.cells[idx]
				if c == front.cells[idx] {
					break
				}
				writeCell(w, c)
				x++
			}
		}
	}
}
