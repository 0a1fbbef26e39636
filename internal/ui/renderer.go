package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/samdwyer/cavevault/internal/gamedata"
	"github.com/samdwyer/cavevault/internal/world"
)

// Canvas is the drawing surface the renderer writes to. *Screen implements it.
type Canvas interface {
	Clear()
	Show()
	SetContent(x, y int, r rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

const helpText = "Enter: next  ←: back  r: regenerate  q: quit"

// Renderer handles drawing frames to the screen.
type Renderer struct {
	canvas Canvas
}

// NewRenderer creates a new renderer for the given canvas.
func NewRenderer(canvas Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

// StylePalette builds tcell styles for every tile kind from the registry.
func StylePalette(r *gamedata.TileRegistry) world.Palette[tcell.Style] {
	return gamedata.Palette(r, func(d *gamedata.TileDef) tcell.Style {
		return tcell.StyleDefault.Foreground(d.TCellColor()).Background(tcell.ColorBlack)
	})
}

// Render draws a frame, its label and a status line. index is zero-based.
func (r *Renderer) Render(frame world.Frame[tcell.Style], index, total int, seed int64) {
	r.canvas.Clear()

	// Draw map tiles
	for y := 0; y < frame.Height(); y++ {
		for x := 0; x < frame.Width(); x++ {
			tile, _ := frame.At(x, y)
			r.canvas.SetContent(x, y, tile.Kind.Rune(), nil, tile.Attr)
		}
	}

	labelStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	r.RenderMessage(fmt.Sprintf("[%d/%d] %s", index+1, total, frame.Label()), frame.Height(), labelStyle)

	hintStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	r.RenderMessage(fmt.Sprintf("seed %d  %s", seed, helpText), frame.Height()+1, hintStyle)

	r.canvas.Show()
}

// RenderError shows a generation failure in place of a map.
func (r *Renderer) RenderError(err error) {
	r.canvas.Clear()
	r.RenderMessage(err.Error(), 0, tcell.StyleDefault.Foreground(tcell.ColorRed))
	r.RenderMessage("r: retry  q: quit", 1, tcell.StyleDefault.Foreground(tcell.ColorGray))
	r.canvas.Show()
}

// RenderMessage draws msg on row y, clipped to the canvas width. Wide and
// combined characters are laid out by grapheme cluster.
func (r *Renderer) RenderMessage(msg string, y int, style tcell.Style) {
	width, _ := r.canvas.Size()

	x := 0
	state := -1
	rest := msg
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if w == 0 {
			continue
		}
		if width > 0 && x+w > width {
			break
		}
		runes := []rune(cluster)
		r.canvas.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}
