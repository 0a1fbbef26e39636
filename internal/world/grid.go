package world

const (
	// Default cave dimensions
	DefaultWidth  = 80
	DefaultHeight = 50
)

// Grid is a fixed-size tile buffer stored in row-major order.
type Grid[A any] struct {
	Width   int
	Height  int
	tiles   []Tile[A]
	palette Palette[A]
}

// NewGrid creates a default-sized grid filled with floor.
func NewGrid[A any](palette Palette[A]) *Grid[A] {
	return NewGridSize(DefaultWidth, DefaultHeight, palette)
}

// NewGridSize creates a grid of the given size filled with floor.
func NewGridSize[A any](width, height int, palette Palette[A]) *Grid[A] {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid[A]{
		Width:   width,
		Height:  height,
		tiles:   make([]Tile[A], width*height),
		palette: palette,
	}
	g.Clear(palette.Tile(KindFloor))
	return g
}

// Clear resets every cell to tile.
func (g *Grid[A]) Clear(tile Tile[A]) {
	for i := range g.tiles {
		g.tiles[i] = tile
	}
}

// Set writes a cell. Writes outside the grid are ignored.
func (g *Grid[A]) Set(p Point, tile Tile[A]) {
	if idx, ok := g.TryIndex(p); ok {
		g.tiles[idx] = tile
	}
}

// SetKind writes a cell using the palette attribute for k.
func (g *Grid[A]) SetKind(p Point, k Kind) {
	g.Set(p, g.palette.Tile(k))
}

// At returns the tile at p, or false if p is outside the grid.
func (g *Grid[A]) At(p Point) (Tile[A], bool) {
	idx, ok := g.TryIndex(p)
	if !ok {
		var zero Tile[A]
		return zero, false
	}
	return g.tiles[idx], true
}

// KindAt returns the kind at p. Out of bounds reads report false.
func (g *Grid[A]) KindAt(p Point) (Kind, bool) {
	t, ok := g.At(p)
	return t.Kind, ok
}

// InBounds returns true if p lies inside the grid.
func (g *Grid[A]) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// TryIndex returns the linear index of p, or false if p is outside the grid.
func (g *Grid[A]) TryIndex(p Point) (int, bool) {
	if !g.InBounds(p) {
		return 0, false
	}
	return g.Index(p.X, p.Y), true
}

// Index returns the linear index of (x, y) without a bounds check.
func (g *Grid[A]) Index(x, y int) int {
	return y*g.Width + x
}

// Bounds returns the rectangle covering the whole grid.
func (g *Grid[A]) Bounds() Rect {
	return Rect{X: 0, Y: 0, Width: g.Width, Height: g.Height}
}

// Tiles returns a copy of the tile buffer.
func (g *Grid[A]) Tiles() []Tile[A] {
	out := make([]Tile[A], len(g.tiles))
	copy(out, g.tiles)
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid[A]) Clone() *Grid[A] {
	return &Grid[A]{
		Width:   g.Width,
		Height:  g.Height,
		tiles:   g.Tiles(),
		palette: g.palette,
	}
}
