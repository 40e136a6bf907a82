package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Seed modes for the initial generation
const (
	SeedRandom    = "random"
	SeedSpaceship = "spaceship"
	SeedSymmetric = "symmetric"
	SeedEmpty     = "empty"
)

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width"                env:"GOL_WIDTH"`
	Height              int           `json:"height"               env:"GOL_HEIGHT"`
	FrameRate           time.Duration `json:"frame_rate"           env:"GOL_FRAME_RATE"`
	AutoRestart         bool          `json:"auto_restart"         env:"GOL_AUTO_RESTART"`
	StagnationThreshold int           `json:"stagnation_threshold" env:"GOL_STAGNATION_THRESHOLD"`
	UseMemoryPool       bool          `json:"use_memory_pool"      env:"GOL_USE_MEMORY_POOL"`
	MaxGenerations      int           `json:"max_generations"      env:"GOL_MAX_GENERATIONS"`
	InjectionCount      int           `json:"injection_count"      env:"GOL_INJECTION_COUNT"`
	Seed                string        `json:"seed"                 env:"GOL_SEED"`
	RandomSeed          int64         `json:"random_seed"          env:"GOL_RANDOM_SEED"` // 0 seeds from the clock
	Interactive         bool          `json:"interactive"          env:"GOL_INTERACTIVE"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               64,
		Height:              32,
		FrameRate:           150 * time.Millisecond,
		AutoRestart:         true,
		StagnationThreshold: 5,
		UseMemoryPool:       true,
		MaxGenerations:      1000,
		InjectionCount:      3,
		Seed:                SeedRandom,
		Interactive:         false,
	}
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// ApplyEnv overrides config fields with any GOL_* environment variables that are set
func ApplyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return errors.Wrap(err, "[ApplyEnv] failed to parse environment")
	}
	return nil
}

// Validate rejects configurations the game cannot run with
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("[Validate] grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	}
	if c.FrameRate <= 0 {
		return errors.Errorf("[Validate] frame rate must be positive, got %v", c.FrameRate)
	}
	switch c.Seed {
	case SeedRandom, SeedSpaceship, SeedSymmetric, SeedEmpty:
	default:
		return errors.Errorf("[Validate] unknown seed mode %q", c.Seed)
	}
	return nil
}
