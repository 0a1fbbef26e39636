// Package world provides cave generation and prefab placement.
package world

// Kind identifies what occupies a map tile.
type Kind rune

const (
	// KindFloor represents an open floor tile.
	KindFloor Kind = '.'
	// KindWall represents a solid wall tile.
	KindWall Kind = '#'
	// KindTrapWall represents the wall ring of a trap vault.
	KindTrapWall Kind = '^'
	// KindTrapTreasure represents the bait inside a trap vault.
	KindTrapTreasure Kind = '$'
	// KindTrapEmpty represents an empty trapped cell inside a vault.
	KindTrapEmpty Kind = '|'
)

// Kinds lists every tile kind in display order.
var Kinds = []Kind{KindFloor, KindWall, KindTrapWall, KindTrapTreasure, KindTrapEmpty}

// Valid returns true if k is one of the defined kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFloor, KindWall, KindTrapWall, KindTrapTreasure, KindTrapEmpty:
		return true
	}
	return false
}

// IsWall returns true for plain wall tiles. Trap walls do not count.
func (k Kind) IsWall() bool {
	return k == KindWall
}

// Rune returns the kind's display character.
func (k Kind) Rune() rune {
	return rune(k)
}

// String returns a human readable name.
func (k Kind) String() string {
	switch k {
	case KindFloor:
		return "floor"
	case KindWall:
		return "wall"
	case KindTrapWall:
		return "trap-wall"
	case KindTrapTreasure:
		return "trap-treasure"
	case KindTrapEmpty:
		return "trap-empty"
	}
	return "unknown"
}

// Tile pairs a kind with a display attribute. The attribute is opaque to
// generation and only carried through to renderers.
type Tile[A any] struct {
	Kind Kind
	Attr A
}

// Palette assigns a display attribute to every tile kind.
type Palette[A any] struct {
	Floor        A
	Wall         A
	TrapWall     A
	TrapTreasure A
	TrapEmpty    A
}

// Attr returns the attribute for the given kind. Unknown kinds get the floor
// attribute.
func (p Palette[A]) Attr(k Kind) A {
	switch k {
	case KindWall:
		return p.Wall
	case KindTrapWall:
		return p.TrapWall
	case KindTrapTreasure:
		return p.TrapTreasure
	case KindTrapEmpty:
		return p.TrapEmpty
	default:
		return p.Floor
	}
}

// Tile builds a tile of kind k carrying the palette's attribute.
func (p Palette[A]) Tile(k Kind) Tile[A] {
	return Tile[A]{Kind: k, Attr: p.Attr(k)}
}
