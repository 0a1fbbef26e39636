package viewer

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvSeed       = "CAVEVAULT_SEED"
	EnvMaxRetries = "CAVEVAULT_MAX_RETRIES"
	EnvVerbosity  = "CAVEVAULT_VERBOSITY"
)

// DefaultMaxRetries is how many seeds are tried before giving up on a cave.
const DefaultMaxRetries = 5

// Config holds viewer configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible cave generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// MaxRetries is the number of seeds tried when the vault cannot be placed.
	MaxRetries uint

	// Verbosity is the log level for V-levelled log lines.
	Verbosity int
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{MaxRetries: DefaultMaxRetries}
}

// ConfigFromEnv reads configuration from the environment, falling back to
// defaults for unset variables.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvSeed, v, err)
		}
		cfg.Seed = seed
	}

	if v := os.Getenv(EnvMaxRetries); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvMaxRetries, v, err)
		}
		cfg.MaxRetries = uint(n)
	}

	if v := os.Getenv(EnvVerbosity); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvVerbosity, v, err)
		}
		cfg.Verbosity = n
	}

	return cfg, nil
}
