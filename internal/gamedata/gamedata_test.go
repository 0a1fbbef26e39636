package gamedata

import (
	"testing"
	"testing/fstest"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/cavevault/internal/world"
)

func TestLoadTiles(t *testing.T) {
	tiles, err := LoadTiles()
	if err != nil {
		t.Fatalf("Failed to load tiles: %v", err)
	}

	if len(tiles) != 5 {
		t.Errorf("Expected 5 tiles, got %d", len(tiles))
	}

	// Verify expected tiles exist
	expectedIDs := map[string]bool{
		"floor": false, "wall": false, "trap-wall": false, "trap-treasure": false, "trap-empty": false,
	}
	for _, tile := range tiles {
		if _, ok := expectedIDs[tile.ID]; ok {
			expectedIDs[tile.ID] = true
		}
	}

	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected tile %q not found", id)
		}
	}
}

func TestTileRegistry(t *testing.T) {
	registry, err := LoadTileRegistry()
	require.NoError(t, err)

	for _, kind := range world.Kinds {
		def := registry.GetByKind(kind)
		require.NotNil(t, def, "kind %v", kind)
		assert.Equal(t, kind.Rune(), def.GlyphRune())
		assert.Equal(t, kind.String(), def.ID)
	}

	wall := registry.GetByKind(world.KindWall)
	assert.Equal(t, "Wall", wall.Name)
	assert.Nil(t, registry.GetByKind(world.Kind('~')))
}

func TestNewTileRegistryRejectsBadDefinitions(t *testing.T) {
	complete, err := LoadTiles()
	require.NoError(t, err)
	require.Len(t, complete, len(world.Kinds))

	_, err = NewTileRegistry(complete[:4])
	assert.ErrorIs(t, err, ErrMissingTile)

	dup := append(append([]TileDef{}, complete...), complete[0])
	_, err = NewTileRegistry(dup)
	assert.Error(t, err)

	bad := append([]TileDef{}, complete...)
	bad[0].Glyph = "x"
	_, err = NewTileRegistry(bad)
	assert.Error(t, err)

	// A glyph that starts with a valid kind still has to be one character.
	for _, glyph := range []string{"", "##", "#\u00e9"} {
		long := append([]TileDef{}, complete...)
		long[1].Glyph = glyph
		_, err = NewTileRegistry(long)
		assert.ErrorContains(t, err, "single character", "glyph %q", glyph)
	}
}

func TestGlyphRuneDecodesUTF8(t *testing.T) {
	tests := []struct {
		glyph string
		want  rune
	}{
		{"#", '#'},
		{"\u00e9", '\u00e9'},
		{"\u2591", '\u2591'},
		{"", '?'},
		{"\xff", '?'},
	}

	for _, tt := range tests {
		def := TileDef{Glyph: tt.glyph}
		assert.Equal(t, tt.want, def.GlyphRune(), "glyph %q", tt.glyph)
	}

	// The first byte of a multi-byte glyph must not be mistaken for a kind.
	def := TileDef{Glyph: "\u00e9"}
	assert.False(t, def.Kind().Valid())
}

func TestLoadFromErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.json": {Data: []byte(`{"tiles": [`)},
	}

	_, err := LoadFrom[TilesFile](fsys, "missing.json")
	assert.ErrorContains(t, err, "failed to read data file missing.json")

	_, err = LoadFrom[TilesFile](fsys, "broken.json")
	assert.ErrorContains(t, err, "failed to parse JSON from broken.json")
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestTileDefMethods(t *testing.T) {
	def := TileDef{
		ID:    "trap-treasure",
		Name:  "Treasure",
		Glyph: "$",
		Color: "#FFD700",
	}

	if def.GlyphRune() != '$' {
		t.Errorf("Expected glyph '$', got %c", def.GlyphRune())
	}
	assert.Equal(t, world.KindTrapTreasure, def.Kind())

	r, g, b := def.RGB().RGB255()
	assert.Equal(t, []uint8{255, 215, 0}, []uint8{r, g, b})
	assert.Equal(t, tcell.NewRGBColor(255, 215, 0), def.TCellColor())

	def.Color = "nope"
	r, g, b = def.RGB().RGB255()
	assert.Equal(t, []uint8{255, 255, 255}, []uint8{r, g, b})
}

func TestPalette(t *testing.T) {
	registry := MustLoadTileRegistry()

	p := Palette(registry, func(d *TileDef) string { return d.Name })
	assert.Equal(t, "Floor", p.Floor)
	assert.Equal(t, "Wall", p.Wall)
	assert.Equal(t, "Trapped Wall", p.Attr(world.KindTrapWall))
	assert.Equal(t, "Treasure", p.Attr(world.KindTrapTreasure))
	assert.Equal(t, "Pressure Plate", p.Attr(world.KindTrapEmpty))
}
