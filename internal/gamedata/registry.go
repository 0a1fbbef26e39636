package gamedata

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/samdwyer/cavevault/internal/world"
)

// ErrMissingTile is returned when a world kind has no tile definition.
var ErrMissingTile = errors.New("missing tile definition")

// TileRegistry holds loaded tile definitions keyed by world kind.
type TileRegistry struct {
	byKind map[world.Kind]*TileDef
}

// NewTileRegistry creates a registry from loaded tile definitions. Every
// world kind must be defined exactly once.
func NewTileRegistry(tiles []TileDef) (*TileRegistry, error) {
	registry := &TileRegistry{
		byKind: make(map[world.Kind]*TileDef),
	}
	for i := range tiles {
		if utf8.RuneCountInString(tiles[i].Glyph) != 1 {
			return nil, fmt.Errorf("tile %q: glyph %q must be a single character", tiles[i].ID, tiles[i].Glyph)
		}
		kind := tiles[i].Kind()
		if !kind.Valid() {
			return nil, fmt.Errorf("tile %q: glyph %q is not a known kind", tiles[i].ID, tiles[i].Glyph)
		}
		if _, dup := registry.byKind[kind]; dup {
			return nil, fmt.Errorf("tile %q: kind %v defined twice", tiles[i].ID, kind)
		}
		registry.byKind[kind] = &tiles[i]
	}
	for _, kind := range world.Kinds {
		if registry.byKind[kind] == nil {
			return nil, fmt.Errorf("%w for %v", ErrMissingTile, kind)
		}
	}
	return registry, nil
}

// LoadTileRegistry loads and creates a registry from the embedded tiles.json.
func LoadTileRegistry() (*TileRegistry, error) {
	tiles, err := LoadTiles()
	if err != nil {
		return nil, err
	}
	if len(tiles) == 0 {
		return nil, errors.New("no tiles loaded from tiles.json")
	}
	return NewTileRegistry(tiles)
}

// MustLoadTileRegistry loads a registry, panicking on error.
func MustLoadTileRegistry() *TileRegistry {
	registry, err := LoadTileRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByKind returns the tile definition for kind, or nil if not found.
func (r *TileRegistry) GetByKind(kind world.Kind) *TileDef {
	return r.byKind[kind]
}

// Palette builds a world palette by converting each kind's definition.
func Palette[A any](r *TileRegistry, convert func(*TileDef) A) world.Palette[A] {
	return world.Palette[A]{
		Floor:        convert(r.GetByKind(world.KindFloor)),
		Wall:         convert(r.GetByKind(world.KindWall)),
		TrapWall:     convert(r.GetByKind(world.KindTrapWall)),
		TrapTreasure: convert(r.GetByKind(world.KindTrapTreasure)),
		TrapEmpty:    convert(r.GetByKind(world.KindTrapEmpty)),
	}
}
