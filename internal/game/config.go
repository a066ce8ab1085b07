package game

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/samdwyer/scavenger/internal/gamedata"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvSeed            = "SCAVENGER_SEED"
	EnvStartingFood    = "SCAVENGER_STARTING_FOOD"
	EnvSenseRange      = "SCAVENGER_SENSE_RANGE"
	EnvLevelStartDelay = "SCAVENGER_LEVEL_START_DELAY"
	EnvTurnDelay       = "SCAVENGER_TURN_DELAY"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeons.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	Tuning gamedata.Tuning
}

// DefaultConfig returns the embedded tuning with a random seed.
func DefaultConfig() Config {
	return Config{Tuning: gamedata.MustLoadTuning()}
}

// ConfigFromEnv starts from DefaultConfig and applies SCAVENGER_* overrides
// found through lookup, usually os.LookupEnv. Every malformed value is
// reported.
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	var errs []error

	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		}
		cfg.Seed = seed
	}
	if v, ok := lookup(EnvStartingFood); ok {
		food, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvStartingFood, err))
		}
		cfg.Tuning.Player.StartingFood = food
	}
	if v, ok := lookup(EnvSenseRange); ok {
		r, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSenseRange, err))
		}
		cfg.Tuning.Enemy.SenseRange = r
	}
	if v, ok := lookup(EnvLevelStartDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLevelStartDelay, err))
		}
		cfg.Tuning.Turns.LevelStartDelayMS = int(d.Milliseconds())
	}
	if v, ok := lookup(EnvTurnDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvTurnDelay, err))
		}
		cfg.Tuning.Turns.TurnDelayMS = int(d.Milliseconds())
	}

	if err := errors.Join(errs...); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ErrInvalidConfig wraps every configuration problem.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the values a session cannot run without.
func (c Config) Validate() error {
	var errs []error
	t := c.Tuning
	if t.Player.StartingFood <= 0 {
		errs = append(errs, fmt.Errorf("%w: starting food %d", ErrInvalidConfig, t.Player.StartingFood))
	}
	if t.Player.MoveCost < 0 {
		errs = append(errs, fmt.Errorf("%w: move cost %d", ErrInvalidConfig, t.Player.MoveCost))
	}
	if t.Wall.HP <= 0 {
		errs = append(errs, fmt.Errorf("%w: wall hp %d", ErrInvalidConfig, t.Wall.HP))
	}
	if t.Enemy.SenseRange <= 0 {
		errs = append(errs, fmt.Errorf("%w: sense range %d", ErrInvalidConfig, t.Enemy.SenseRange))
	}
	if t.Turns.LevelStartDelayMS < 0 || t.Turns.TurnDelayMS < 0 {
		errs = append(errs, fmt.Errorf("%w: negative turn delay", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
