package world

// kindPalette uses the kind itself as the display attribute so tests can check
// attributes follow kinds without a renderer.
var kindPalette = Palette[Kind]{
	Floor:        KindFloor,
	Wall:         KindWall,
	TrapWall:     KindTrapWall,
	TrapTreasure: KindTrapTreasure,
	TrapEmpty:    KindTrapEmpty,
}

// scriptedSource replays fixed values, then repeats fallback forever.
type scriptedSource struct {
	values   []int
	pos      int
	fallback int
	calls    int
}

func (s *scriptedSource) Intn(n int) int {
	s.calls++
	if s.pos < len(s.values) {
		v := s.values[s.pos]
		s.pos++
		return v % n
	}
	return s.fallback % n
}

// gridFromRows builds a grid from rows of kind runes.
func gridFromRows(rows ...string) *Grid[Kind] {
	g := NewGridSize(len(rows[0]), len(rows), kindPalette)
	for y, row := range rows {
		for x, r := range row {
			g.SetKind(Point{X: x, Y: y}, Kind(r))
		}
	}
	return g
}
