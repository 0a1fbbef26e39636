package world

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultMaxPlacementAttempts caps the number of anchors tried before
	// prefab placement gives up.
	DefaultMaxPlacementAttempts = 100000

	// Anchors are drawn so the prefab ends at least this many tiles short of
	// the right and bottom edges.
	defaultAnchorMargin = 5

	// How often the placement loop checks for cancellation.
	cancelCheckInterval = 1024
)

var (
	// ErrPlacementExhausted is returned when no all-wall region was found
	// within the attempt cap.
	ErrPlacementExhausted = errors.New("prefab placement exhausted")
	// ErrOutOfBounds is returned when a prefab would be written outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidPrefab is returned for malformed prefab templates.
	ErrInvalidPrefab = errors.New("invalid prefab template")
)

// Prefab template cells.
const (
	prefabKeep     = '.'
	prefabTrap     = '^'
	prefabTreasure = '$'
	prefabEmpty    = '|'
)

const trapVaultTemplate = `
......
.^^^^.
.^$$^.
.^^^^.
......
`

// TrapVault is a ring of trapped walls around two treasure cells.
var TrapVault = MustParsePrefab(trapVaultTemplate)

// Prefab is a small fixed tile pattern stamped onto a generated map.
type Prefab struct {
	Width  int
	Height int
	cells  []rune // row-major template characters
}

// ParsePrefab parses a row-major template. Blank lines are skipped and all
// remaining rows must have the same width.
func ParsePrefab(template string) (Prefab, error) {
	var rows []string
	for _, line := range strings.Split(strings.ReplaceAll(template, "\r", ""), "\n") {
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return Prefab{}, fmt.Errorf("%w: empty template", ErrInvalidPrefab)
	}

	width := len([]rune(rows[0]))
	cells := make([]rune, 0, width*len(rows))
	for i, row := range rows {
		rs := []rune(row)
		if len(rs) != width {
			return Prefab{}, fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidPrefab, i, len(rs), width)
		}
		for _, r := range rs {
			switch r {
			case prefabKeep, prefabTrap, prefabTreasure, prefabEmpty:
			default:
				return Prefab{}, fmt.Errorf("%w: unknown cell %q in row %d", ErrInvalidPrefab, r, i)
			}
		}
		cells = append(cells, rs...)
	}

	return Prefab{Width: width, Height: len(rows), cells: cells}, nil
}

// MustParsePrefab parses a template, panicking on error.
func MustParsePrefab(template string) Prefab {
	p, err := ParsePrefab(template)
	if err != nil {
		panic(err)
	}
	return p
}

// Bounds returns the rectangle the prefab covers when anchored at p.
func (p Prefab) Bounds(at Point) Rect {
	return Rect{X: at.X, Y: at.Y, Width: p.Width, Height: p.Height}
}

// KindAt returns the kind the prefab writes at template cell (x, y), or false
// if that cell is left untouched.
func (p Prefab) KindAt(x, y int) (Kind, bool) {
	return cellKind(p.cells[y*p.Width+x])
}

func cellKind(r rune) (Kind, bool) {
	switch r {
	case prefabTrap:
		return KindTrapWall, true
	case prefabTreasure:
		return KindTrapTreasure, true
	case prefabEmpty:
		return KindTrapEmpty, true
	}
	return 0, false
}

// Fits returns true if every cell under the prefab anchored at p is a wall.
func Fits[A any](g *Grid[A], p Prefab, at Point) bool {
	for pt := range p.Bounds(at).Points() {
		k, ok := g.KindAt(pt)
		if !ok || !k.IsWall() {
			return false
		}
	}
	return true
}

// Stamp writes the prefab onto g anchored at p. Untouched template cells keep
// whatever was there before.
func Stamp[A any](g *Grid[A], p Prefab, at Point) error {
	bounds := p.Bounds(at)
	if !g.InBounds(at) || !g.InBounds(Point{X: at.X + p.Width - 1, Y: at.Y + p.Height - 1}) {
		return fmt.Errorf("stamping %dx%d prefab at (%d,%d): %w", p.Width, p.Height, at.X, at.Y, ErrOutOfBounds)
	}

	for pt := range bounds.Points() {
		if k, ok := p.KindAt(pt.X-at.X, pt.Y-at.Y); ok {
			g.SetKind(pt, k)
		}
	}
	return nil
}

// Placer searches for somewhere to put a prefab.
type Placer struct {
	Prefab      Prefab
	MaxAttempts int
	margin      int
}

// NewPlacer creates a placer for the prefab with the given attempt cap.
// A non-positive cap uses DefaultMaxPlacementAttempts.
func NewPlacer(prefab Prefab, maxAttempts int) Placer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxPlacementAttempts
	}
	return Placer{
		Prefab:      prefab,
		MaxAttempts: maxAttempts,
		margin:      defaultAnchorMargin,
	}
}

// Placement describes where a prefab ended up.
type Placement struct {
	Anchor   Point
	Attempts int
}

// anchorRange returns the largest x and y an anchor may take. Anchors start
// at 1 so the prefab never touches the top or left edge.
func (pl Placer) anchorRange(width, height int) (maxX, maxY int) {
	return width - pl.Prefab.Width - pl.margin, height - pl.Prefab.Height - pl.margin
}

// Place picks random anchors until the prefab fits on an all-wall region, then
// stamps it. The grid is left untouched if no anchor fits within the attempt
// cap.
func Place[A any](ctx context.Context, g *Grid[A], rng Source, pl Placer) (Placement, error) {
	maxX, maxY := pl.anchorRange(g.Width, g.Height)
	if maxX < 1 || maxY < 1 {
		return Placement{}, fmt.Errorf("%dx%d grid cannot hold a %dx%d prefab: %w",
			g.Width, g.Height, pl.Prefab.Width, pl.Prefab.Height, ErrOutOfBounds)
	}

	for attempt := 1; attempt <= pl.MaxAttempts; attempt++ {
		if attempt%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Placement{Attempts: attempt}, err
			}
		}

		x := 1 + rng.Intn(maxX)
		y := 1 + rng.Intn(maxY)
		at := Point{X: x, Y: y}
		if !Fits(g, pl.Prefab, at) {
			continue
		}

		if err := Stamp(g, pl.Prefab, at); err != nil {
			return Placement{Attempts: attempt}, err
		}
		return Placement{Anchor: at, Attempts: attempt}, nil
	}

	return Placement{Attempts: pl.MaxAttempts}, fmt.Errorf("no all-wall %dx%d region after %d attempts: %w",
		pl.Prefab.Width, pl.Prefab.Height, pl.MaxAttempts, ErrPlacementExhausted)
}
