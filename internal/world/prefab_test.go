package world

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrapVaultShape(t *testing.T) {
	require.Equal(t, 6, TrapVault.Width)
	require.Equal(t, 5, TrapVault.Height)

	rows := []string{
		"......",
		".^^^^.",
		".^$$^.",
		".^^^^.",
		"......",
	}
	for y, row := range rows {
		for x, r := range row {
			k, ok := TrapVault.KindAt(x, y)
			switch r {
			case '.':
				assert.False(t, ok, "cell (%d,%d) should be left alone", x, y)
			case '^':
				assert.Equal(t, KindTrapWall, k)
			case '$':
				assert.Equal(t, KindTrapTreasure, k)
			}
		}
	}
}

func TestParsePrefabErrors(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"empty", "\n\n"},
		{"ragged", "...\n..\n"},
		{"unknown cell", "..x\n...\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePrefab(tt.template)
			assert.ErrorIs(t, err, ErrInvalidPrefab)
		})
	}
}

func TestParsePrefabTrapEmpty(t *testing.T) {
	p, err := ParsePrefab("\r\n.|.\r\n")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Width)
	assert.Equal(t, 1, p.Height)

	k, ok := p.KindAt(1, 0)
	assert.True(t, ok)
	assert.Equal(t, KindTrapEmpty, k)
}

func TestFits(t *testing.T) {
	g := NewGridSize(10, 10, kindPalette)
	g.Clear(kindPalette.Tile(KindWall))

	assert.True(t, Fits(g, TrapVault, Point{1, 1}))
	assert.True(t, Fits(g, TrapVault, Point{4, 5}))
	// Runs off the right edge
	assert.False(t, Fits(g, TrapVault, Point{5, 1}))

	g.SetKind(Point{6, 5}, KindFloor)
	assert.False(t, Fits(g, TrapVault, Point{1, 1}))

	g.SetKind(Point{6, 5}, KindTrapWall)
	assert.False(t, Fits(g, TrapVault, Point{1, 1}), "trap walls are not plain walls")
}

func TestStampOutOfBounds(t *testing.T) {
	g := NewGridSize(10, 10, kindPalette)
	before := g.Tiles()

	err := Stamp(g, TrapVault, Point{5, 6})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, before, g.Tiles())
}

func TestPlaceFindsSeededBlock(t *testing.T) {
	// Seed a 10x10 grid with a single 6x5 wall block at (2,2).
	block := Rect{X: 2, Y: 2, Width: 6, Height: 5}
	g := NewGridSize(10, 10, kindPalette)
	var rolls []int
	for p := range g.Bounds().Points() {
		if block.Contains(p) {
			rolls = append(rolls, 99)
		} else {
			rolls = append(rolls, 0)
		}
	}
	// Anchor draws: (1,1) is rejected, (2,2) fits.
	rolls = append(rolls, 0, 0, 1, 1)
	rng := &scriptedSource{values: rolls}

	seed(g, rng)
	before := g.Clone()

	pl := NewPlacer(TrapVault, 100)
	pl.margin = 1
	placement, err := Place(context.Background(), g, rng, pl)
	require.NoError(t, err)
	assert.Equal(t, Point{2, 2}, placement.Anchor)
	assert.Equal(t, 2, placement.Attempts)
	assert.Equal(t, block, TrapVault.Bounds(placement.Anchor))

	for p := range g.Bounds().Points() {
		got, _ := g.At(p)
		prev, _ := before.At(p)
		if !block.Contains(p) {
			assert.Equal(t, prev, got, "tile %v outside the vault changed", p)
			continue
		}

		assert.Equal(t, KindWall, prev.Kind, "tile %v was not a wall before placement", p)
		want, stamped := TrapVault.KindAt(p.X-block.X, p.Y-block.Y)
		if !stamped {
			want = KindWall
		}
		assert.Equal(t, want, got.Kind, "tile %v", p)
		assert.Equal(t, want, got.Attr, "tile %v attribute", p)
	}
}

func TestPlaceAnchorRange(t *testing.T) {
	g := NewGrid(kindPalette)
	g.Clear(kindPalette.Tile(KindWall))

	// The source returns n-1 for every draw, i.e. the largest anchor.
	rng := &maxSource{}
	placement, err := Place(context.Background(), g, rng, NewPlacer(TrapVault, 10))
	require.NoError(t, err)
	assert.Equal(t, Point{DefaultWidth - 11, DefaultHeight - 10}, placement.Anchor)
	assert.Equal(t, []int{DefaultWidth - 11, DefaultHeight - 10}, rng.bounds)
}

type maxSource struct {
	bounds []int
}

func (s *maxSource) Intn(n int) int {
	s.bounds = append(s.bounds, n)
	return n - 1
}

func TestPlaceExhausted(t *testing.T) {
	// An all-floor grid never has a wall block to host the vault.
	g := NewGrid(kindPalette)
	before := g.Tiles()
	rng := &scriptedSource{}

	placement, err := Place(context.Background(), g, rng, NewPlacer(TrapVault, 500))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlacementExhausted))
	assert.Equal(t, 500, placement.Attempts)
	assert.Equal(t, 1000, rng.calls)
	assert.Equal(t, before, g.Tiles())
}

func TestPlaceCancelled(t *testing.T) {
	g := NewGrid(kindPalette)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Place(ctx, g, &scriptedSource{}, NewPlacer(TrapVault, 5000))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlaceGridTooSmall(t *testing.T) {
	g := NewGridSize(8, 8, kindPalette)
	_, err := Place(context.Background(), g, &scriptedSource{}, NewPlacer(TrapVault, 10))
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestNewPlacerDefaultCap(t *testing.T) {
	assert.Equal(t, DefaultMaxPlacementAttempts, NewPlacer(TrapVault, 0).MaxAttempts)
	assert.Equal(t, 7, NewPlacer(TrapVault, 7).MaxAttempts)
}
