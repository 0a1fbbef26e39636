package viewer

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavevault/internal/telemetry"
	"github.com/samdwyer/cavevault/internal/ui"
	"github.com/samdwyer/cavevault/internal/world"
)

// Viewer steps through the frames of a generated cave.
type Viewer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session[tcell.Style]
	log      logr.Logger

	frames  []world.Frame[tcell.Style]
	current int
	seed    int64
	err     error
	state   State
	running bool
}

// New creates a new viewer instance.
func New(cfg Config, palette world.Palette[tcell.Style], log logr.Logger) (*Viewer, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	v := newViewer(cfg, palette, log)
	v.screen = screen
	v.renderer = ui.NewRenderer(screen)
	return v, nil
}

// newViewer builds a viewer without a screen.
func newViewer(cfg Config, palette world.Palette[tcell.Style], log logr.Logger) *Viewer {
	return &Viewer{
		session: NewSession(world.NewGenerator(palette), cfg.MaxRetries, log),
		log:     log,
		seed:    ResolveSeed(cfg.Seed),
		state:   StateViewing,
		running: true,
	}
}

// Run generates the first cave and runs the display loop until the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("viewer")

	// Initial generation (traced)
	initCtx, initSpan := tracer.Start(ctx, "viewer.init")
	v.generate(initCtx, v.seed)
	initSpan.SetAttributes(
		attribute.Int64("cave.seed", v.seed),
		attribute.Int("viewer.frames", len(v.frames)),
		attribute.String("viewer.state", v.state.String()),
	)
	initSpan.End()

	// Main display loop
	for v.running {
		v.render()

		// Handle input (blocking)
		v.handleInput(ctx)
	}

	// Cleanup
	v.screen.Close()
	return nil
}

// generate replaces the current frames with a fresh cave.
func (v *Viewer) generate(ctx context.Context, seed int64) {
	res, err := v.session.Generate(ctx, seed)
	v.seed = res.Seed
	v.current = 0
	if err != nil {
		v.err = err
		v.frames = nil
		v.state = StateFailed
		return
	}
	v.err = nil
	v.frames = res.Frames
	v.state = StateViewing
}

func (v *Viewer) render() {
	if v.state == StateFailed {
		v.renderer.RenderError(v.err)
		return
	}
	v.renderer.Render(v.frames[v.current], v.current, len(v.frames), v.seed)
}

// handleInput processes a single input event.
func (v *Viewer) handleInput(ctx context.Context) {
	ev := v.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (v *Viewer) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false

	case tcell.KeyEnter, tcell.KeyRight:
		v.advance()
	case tcell.KeyLeft:
		v.back()

	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			v.advance()
		case 'r', 'R':
			_, span := telemetry.Tracer("viewer").Start(ctx, "viewer.regenerate")
			v.generate(ctx, ResolveSeed(0))
			span.SetAttributes(attribute.Int64("cave.seed", v.seed))
			span.End()
		case 'q', 'Q':
			v.running = false
		}
	}
}

// advance moves to the next frame. Advancing past the last frame exits.
func (v *Viewer) advance() {
	if v.state != StateViewing {
		return
	}
	v.current++
	if v.current >= len(v.frames) {
		v.current = len(v.frames) - 1
		v.running = false
	}
}

// back moves to the previous frame.
func (v *Viewer) back() {
	if v.state == StateViewing && v.current > 0 {
		v.current--
	}
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	if v.screen != nil {
		v.screen.Close()
	}
}
