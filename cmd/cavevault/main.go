// Package main is the entry point for cavevault.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/samdwyer/cavevault/internal/gamedata"
	"github.com/samdwyer/cavevault/internal/palette"
	"github.com/samdwyer/cavevault/internal/telemetry"
	"github.com/samdwyer/cavevault/internal/ui"
	"github.com/samdwyer/cavevault/internal/viewer"
	"github.com/samdwyer/cavevault/internal/world"
)

func main() {
	log := telemetry.Logger()

	// Load .env file for local development
	// This makes HONEYCOMB_CAVEVAULT_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.V(1).Info("Note: .env file not loaded", "error", err.Error())
	}

	cfg, err := viewer.ConfigFromEnv()
	if err != nil {
		log.Error(err, "Invalid configuration")
		os.Exit(2)
	}

	plain := flag.Bool("plain", false, "print frames to stdout instead of stepping through them")
	colorMode := flag.String("color", "none", "colors for -plain output: none, console or truecolor")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one from the clock)")
	flag.UintVar(&cfg.MaxRetries, "retries", cfg.MaxRetries, "seeds to try if the vault cannot be placed")
	flag.IntVar(&cfg.Verbosity, "v", cfg.Verbosity, "log verbosity")
	flag.Parse()

	telemetry.SetVerbosity(cfg.Verbosity)

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Info("Warning: telemetry setup failed, running without observability", "error", err.Error())
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Error(err, "Error shutting down telemetry")
			}
		}()
	}

	registry, err := gamedata.LoadTileRegistry()
	if err != nil {
		log.Error(err, "Failed to load tile definitions")
		os.Exit(1)
	}

	if *plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := printFrames(ctx, os.Stdout, cfg, registry, *colorMode, log); err != nil {
			log.Error(err, "Generation failed")
			os.Exit(1)
		}
		return
	}

	// Create and run viewer
	v, err := viewer.New(cfg, ui.StylePalette(registry), log)
	if err != nil {
		log.Error(err, "Failed to initialize viewer")
		os.Exit(1)
	}

	if err := v.Run(ctx); err != nil {
		log.Error(err, "Viewer error")
		os.Exit(1)
	}
}

// printFrames generates one cave and writes its frames as text.
func printFrames(ctx context.Context, w io.Writer, cfg viewer.Config, registry *gamedata.TileRegistry, colorMode string, log logr.Logger) error {
	seed := viewer.ResolveSeed(cfg.Seed)

	switch colorMode {
	case "none":
		return printWith(ctx, w, seed, cfg.MaxRetries, palette.Console(registry), nil, log)
	case "console":
		return printWith(ctx, w, seed, cfg.MaxRetries, palette.Console(registry), palette.Attr.SGR, log)
	case "truecolor":
		return printWith(ctx, w, seed, cfg.MaxRetries, palette.RGB(registry), palette.TrueColorSGR, log)
	default:
		return fmt.Errorf("unknown color mode %q", colorMode)
	}
}

func printWith[A any](ctx context.Context, w io.Writer, seed int64, retries uint, p world.Palette[A], sgr func(A) string, log logr.Logger) error {
	session := viewer.NewSession(world.NewGenerator(p), retries, log)
	res, err := session.Generate(ctx, seed)
	if err != nil {
		return err
	}
	if err := ui.WriteFrames(w, res.Frames, sgr); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "seed %d\n", res.Seed)
	return err
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_CAVEVAULT_API_KEY")
	dataset := os.Getenv("HONEYCOMB_CAVEVAULT_DATASET")
	if dataset == "" {
		dataset = "cavevault" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
