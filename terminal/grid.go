package terminal

// Grid is a fixed-size row-major array of cells
type Grid struct {
	cells  []Cell
	width  int
	height int
}

// NewGrid creates a width x height grid filled with fill
func NewGrid(width, height int, fill Cell) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	g.Fill(fill)
	return g
}

// Size returns grid dimensions
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

func (g *Grid) index(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0, &BoundsError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	return y*g.width + x, nil
}

// Get returns the cell at (x, y)
func (g *Grid) Get(x, y int) (Cell, error) {
	i, err := g.index(x, y)
	if err != nil {
		return Cell{}, err
	}
	return g.cells[i], nil
}

// Set replaces the cell at (x, y)
func (g *Grid) Set(x, y int, c Cell) error {
	i, err := g.index(x, y)
	if err != nil {
		return err
	}
	g.cells[i] = c
	return nil
}

// Fill sets every cell to c
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// CopyFrom overwrites g with the content of src; dimensions must match
func (g *Grid) CopyFrom(src *Grid) {
	if g.width != src.width || g.height != src.height {
		panic("terminal: grid dimension mismatch")
	}
	copy(g.cells, src.cells)
}

// Clone returns an independent copy of g
func (g *Grid) Clone() *Grid {
	c := &Grid{
		cells:  make([]Cell, len(g.cells)),
		width:  g.width,
		height: g.height,
	}
	copy(c.cells, g.cells)
	return c
}

// Cells exposes the row-major backing slice: cells[y*width + x]
func (g *Grid) Cells() []Cell {
	return g.cells
}
