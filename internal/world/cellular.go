package world

const (
	// Cellular automaton parameters. These are tuned by eye; changing them
	// changes the character of the caves.
	seedFloorChance = 55 // Percent of cells seeded as floor
	smoothingPasses = 10 // Number of smoothing passes
	floorMajority   = 5  // Floor neighbours needed to stay open
)

// seed fills every cell of the grid with floor or wall at random.
func seed[A any](g *Grid[A], rng Source) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			roll := rng.Intn(100)
			if roll < seedFloorChance {
				g.SetKind(Point{X: x, Y: y}, KindFloor)
			} else {
				g.SetKind(Point{X: x, Y: y}, KindWall)
			}
		}
	}
}

// smooth applies the automaton rule to every interior cell once. Neighbour
// counts are taken from a snapshot so updates within a pass don't feed back.
// Border cells are never written.
func smooth[A any](g *Grid[A]) {
	prev := g.Clone()
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			n := countFloorNeighbors(prev, x, y)
			g.tiles[g.Index(x, y)] = g.palette.Tile(smoothedKind(n))
		}
	}
}

// smoothedKind maps a floor-neighbour count to the cell's next kind.
// A cell with no open neighbours is opened up rather than walled in.
func smoothedKind(floorNeighbors int) Kind {
	switch {
	case floorNeighbors == 0:
		return KindFloor
	case floorNeighbors < floorMajority:
		return KindWall
	default:
		return KindFloor
	}
}

// countFloorNeighbors counts floor tiles among the 8 cells around (x, y).
// Cells outside the grid are not counted.
func countFloorNeighbors[A any](g *Grid[A], x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			idx, ok := g.TryIndex(Point{X: x + dx, Y: y + dy})
			if ok && g.tiles[idx].Kind == KindFloor {
				n++
			}
		}
	}
	return n
}
