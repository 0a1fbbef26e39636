// Package palette builds display palettes for the cave generator from the
// embedded tile definitions.
package palette

import (
	"fmt"
	"strings"

	"github.com/samdwyer/cavevault/internal/gamedata"
	"github.com/samdwyer/cavevault/internal/world"
)

// Attr is a packed console character attribute: foreground bits in the low
// nibble, background bits in the high nibble.
type Attr uint16

// Console attribute flags.
const (
	FgBlue      Attr = 0x0001
	FgGreen     Attr = 0x0002
	FgRed       Attr = 0x0004
	FgIntensity Attr = 0x0008
	BgBlue      Attr = 0x0010
	BgGreen     Attr = 0x0020
	BgRed       Attr = 0x0040
	BgIntensity Attr = 0x0080

	FgBlack  Attr = 0
	FgYellow      = FgRed | FgGreen
	FgWhite       = FgRed | FgGreen | FgBlue
	BgBlack  Attr = 0
	BgYellow      = BgRed | BgGreen
	BgWhite       = BgRed | BgGreen | BgBlue
)

var consoleColors = map[string]Attr{
	"black":   0,
	"blue":    FgBlue,
	"green":   FgGreen,
	"cyan":    FgGreen | FgBlue,
	"red":     FgRed,
	"magenta": FgRed | FgBlue,
	"yellow":  FgYellow,
	"white":   FgWhite,
}

// ParseConsoleColor packs named foreground and background colors into an
// attribute. Names are case-insensitive; a "bright-" prefix sets intensity.
func ParseConsoleColor(fg, bg string) (Attr, error) {
	f, err := parseColorName(fg)
	if err != nil {
		return 0, fmt.Errorf("foreground: %w", err)
	}
	b, err := parseColorName(bg)
	if err != nil {
		return 0, fmt.Errorf("background: %w", err)
	}
	return f | b<<4, nil
}

func parseColorName(name string) (Attr, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	var intensity Attr
	if rest, ok := strings.CutPrefix(name, "bright-"); ok {
		name = rest
		intensity = FgIntensity
	}
	attr, ok := consoleColors[name]
	if !ok {
		return 0, fmt.Errorf("unknown console color %q", name)
	}
	return attr | intensity, nil
}

// Foreground returns the foreground bits.
func (a Attr) Foreground() Attr {
	return a & 0x0F
}

// Background returns the background bits shifted down into foreground
// position.
func (a Attr) Background() Attr {
	return (a >> 4) & 0x0F
}

// ANSI color numbers indexed by the RGB bits of a console attribute.
var ansiColor = [8]int{0, 4, 2, 6, 1, 5, 3, 7}

// SGR returns the ANSI escape sequence selecting this attribute's colors.
func (a Attr) SGR() string {
	return fmt.Sprintf("\x1b[%d;%dm", sgrCode(a.Foreground(), 30, 90), sgrCode(a.Background(), 40, 100))
}

func sgrCode(nibble Attr, normal, bright int) int {
	base := normal
	if nibble&FgIntensity != 0 {
		base = bright
	}
	return base + ansiColor[nibble&0x07]
}

// Console builds a palette of console attributes from the tile registry.
// Definitions with unknown color names fall back to white on black.
func Console(r *gamedata.TileRegistry) world.Palette[Attr] {
	return gamedata.Palette(r, func(d *gamedata.TileDef) Attr {
		attr, err := ParseConsoleColor(d.Console.Foreground, d.Console.Background)
		if err != nil {
			return FgWhite | BgBlack
		}
		return attr
	})
}
