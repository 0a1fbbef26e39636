package viewer

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-logr/logr"

	"github.com/samdwyer/cavevault/internal/world"
)

// Result is the outcome of a generation session.
type Result[A any] struct {
	Frames []world.Frame[A]
	Seed   int64 // Seed of the last attempt
	Tries  int
}

// Session generates caves, retrying with fresh seeds when the trap vault
// cannot be placed.
type Session[A any] struct {
	gen        *world.Generator[A]
	maxRetries uint
	log        logr.Logger

	// newSource builds the random source for a seed.
	newSource func(seed int64) world.Source
}

// NewSession creates a session around a generator.
func NewSession[A any](gen *world.Generator[A], maxRetries uint, log logr.Logger) *Session[A] {
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Session[A]{
		gen:        gen,
		maxRetries: maxRetries,
		log:        log,
		newSource: func(seed int64) world.Source {
			return rand.New(rand.NewSource(seed))
		},
	}
}

// ResolveSeed turns the "random" seed 0 into a concrete one.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// Generate runs the generator starting from seed. When placement is
// exhausted the next seed is drawn from a stream keyed by the first seed, so
// a whole session is reproducible. Other errors stop immediately.
func (s *Session[A]) Generate(ctx context.Context, seed int64) (Result[A], error) {
	seeds := rand.New(rand.NewSource(seed))
	next := seed
	var last Result[A]

	operation := func() (Result[A], error) {
		current := next
		next = seeds.Int63()
		last.Seed = current
		last.Tries++

		frames, err := s.gen.Generate(ctx, s.newSource(current))
		last.Frames = frames
		if err != nil {
			if errors.Is(err, world.ErrPlacementExhausted) {
				return last, err
			}
			return last, backoff.Permanent(err)
		}
		return last, nil
	}

	res, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(s.maxRetries),
		backoff.WithNotify(func(err error, _ time.Duration) {
			s.log.V(1).Info("regenerating cave", "seed", last.Seed, "try", last.Tries, "reason", err.Error())
		}),
	)
	if err != nil {
		s.log.Error(err, "cave generation failed", "tries", last.Tries, "seed", last.Seed)
		return last, err
	}

	s.log.V(1).Info("cave generated", "seed", res.Seed, "tries", res.Tries, "frames", len(res.Frames))
	return res, nil
}
