package gamedata

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/cavevault/internal/world"
)

// ConsoleColor names the foreground and background of a console cell.
type ConsoleColor struct {
	Foreground string `json:"fg"` // e.g. "green"
	Background string `json:"bg"` // e.g. "black"
}

// TileDef defines how a tile kind is displayed, loaded from JSON.
type TileDef struct {
	ID      string       `json:"id"`      // Unique identifier (e.g., "trap-wall")
	Name    string       `json:"name"`    // Display name (e.g., "Trapped Wall")
	Glyph   string       `json:"glyph"`   // Single character matching a world.Kind
	Color   string       `json:"color"`   // Hex color code (e.g., "#FF0000")
	Console ConsoleColor `json:"console"` // Colors for 16-color consoles
}

// GlyphRune returns the first rune of the glyph, or '?' if the glyph is empty
// or not valid UTF-8.
func (t *TileDef) GlyphRune() rune {
	r, _ := utf8.DecodeRuneInString(t.Glyph)
	if r == utf8.RuneError {
		return '?'
	}
	return r
}

// Kind returns the world kind this definition describes.
func (t *TileDef) Kind() world.Kind {
	return world.Kind(t.GlyphRune())
}

// RGB returns the color as an RGB triple. Invalid colors fall back to white.
func (t *TileDef) RGB() colorful.Color {
	color, err := ParseHexColor(t.Color)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1} // fallback
	}
	return color
}

// TCellColor returns the color as a tcell.Color.
func (t *TileDef) TCellColor() tcell.Color {
	return TCellColor(t.RGB())
}

// TilesFile represents the structure of tiles.json.
type TilesFile struct {
	Tiles []TileDef `json:"tiles"`
}

// LoadTiles loads tile definitions from the embedded tiles.json file.
func LoadTiles() ([]TileDef, error) {
	file, err := Load[TilesFile]("tiles.json")
	if err != nil {
		return nil, err
	}
	return file.Tiles, nil
}

