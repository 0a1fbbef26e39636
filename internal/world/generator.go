package world

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/cavevault/internal/telemetry"
)

// Source is the random source used by generation. *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// Generator builds a cave, places the trap vault and records the frames.
type Generator[A any] struct {
	palette     Palette[A]
	width       int
	height      int
	prefab      Prefab
	maxAttempts int
}

// Option configures a Generator.
type Option func(*options)

type options struct {
	width, height int
	maxAttempts   int
}

// WithSize overrides the grid dimensions.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithMaxPlacementAttempts overrides the prefab placement attempt cap.
func WithMaxPlacementAttempts(n int) Option {
	return func(o *options) {
		o.maxAttempts = n
	}
}

// NewGenerator creates a generator rendering tiles with palette.
func NewGenerator[A any](palette Palette[A], opts ...Option) *Generator[A] {
	o := options{
		width:       DefaultWidth,
		height:      DefaultHeight,
		maxAttempts: DefaultMaxPlacementAttempts,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Generator[A]{
		palette:     palette,
		width:       o.width,
		height:      o.height,
		prefab:      TrapVault,
		maxAttempts: o.maxAttempts,
	}
}

// Generate runs a full generation with default settings.
func Generate[A any](ctx context.Context, rng Source, palette Palette[A]) ([]Frame[A], error) {
	return NewGenerator(palette).Generate(ctx, rng)
}

// Generate seeds and smooths a cave, then stamps the trap vault into it.
// It returns the frames captured along the way. If the vault cannot be
// placed the cave frame is still returned alongside ErrPlacementExhausted.
func (gen *Generator[A]) Generate(ctx context.Context, rng Source) ([]Frame[A], error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "cave.generate")
	defer span.End()

	startTime := time.Now()
	sessionID := uuid.NewString()

	grid := NewGridSize(gen.width, gen.height, gen.palette)
	rec := NewRecorder[A]()

	seed(grid, rng)
	gen.smooth(ctx, grid)
	cave := rec.Capture(grid, LabelCellularAutomata)

	placement, err := gen.place(ctx, grid, rng)

	span.SetAttributes(
		attribute.String("cave.session_id", sessionID),
		attribute.Int("cave.width", gen.width),
		attribute.Int("cave.height", gen.height),
		attribute.Int("cave.smoothing_passes", smoothingPasses),
		attribute.Int("cave.placement_attempts", placement.Attempts),
		attribute.String("cave.fingerprint", fmt.Sprintf("%016x", cave.Fingerprint())),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prefab placement failed")
		span.SetAttributes(attribute.Int64("cave.generation_ms", time.Since(startTime).Milliseconds()))
		return rec.Frames(), err
	}

	placed := rec.Capture(grid, LabelPrefabPlaced)

	// Record telemetry
	span.SetAttributes(
		attribute.Int("cave.prefab_x", placement.Anchor.X),
		attribute.Int("cave.prefab_y", placement.Anchor.Y),
		attribute.String("cave.final_fingerprint", fmt.Sprintf("%016x", placed.Fingerprint())),
		attribute.Int64("cave.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return rec.Frames(), nil
}

// smooth runs every smoothing pass under its own span.
func (gen *Generator[A]) smooth(ctx context.Context, grid *Grid[A]) {
	_, span := telemetry.Tracer("world").Start(ctx, "cave.smooth")
	defer span.End()

	for i := 0; i < smoothingPasses; i++ {
		smooth(grid)
	}
	span.SetAttributes(attribute.Int("cave.passes", smoothingPasses))
}

// place searches for the prefab anchor and records how long the search took.
func (gen *Generator[A]) place(ctx context.Context, grid *Grid[A], rng Source) (Placement, error) {
	ctx, span := telemetry.Tracer("world").Start(ctx, "cave.place_prefab")
	defer span.End()

	placement, err := Place(ctx, grid, rng, NewPlacer(gen.prefab, gen.maxAttempts))

	if hist, herr := telemetry.Meter("world").Int64Histogram("cave.placement.attempts",
		metric.WithDescription("Anchors tried before the prefab fit or the search gave up"),
	); herr == nil {
		hist.Record(ctx, int64(placement.Attempts),
			metric.WithAttributes(attribute.Bool("cave.placed", err == nil)))
	}

	span.SetAttributes(attribute.Int("cave.placement_attempts", placement.Attempts))
	if err != nil {
		span.RecordError(err)
		return placement, err
	}
	span.SetAttributes(
		attribute.Int("cave.prefab_x", placement.Anchor.X),
		attribute.Int("cave.prefab_y", placement.Anchor.Y),
	)
	return placement, nil
}
