package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/cavevault/internal/gamedata"
	"github.com/samdwyer/cavevault/internal/world"
)

// RGB builds a palette of RGB colors from the tile registry.
func RGB(r *gamedata.TileRegistry) world.Palette[colorful.Color] {
	return gamedata.Palette(r, (*gamedata.TileDef).RGB)
}

// TrueColorSGR returns the 24-bit ANSI escape sequence for a foreground color.
func TrueColorSGR(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}
