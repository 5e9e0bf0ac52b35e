package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Gurkenlor3nz/vokaba/internal/modes"
)

// Session size is clamped to this range on load.
const (
	MinSessionSize = 1
	MaxSessionSize = 5000
)

// Config holds all application configuration. Every tunable has a
// compile-time-checked field with its default baked in at construction.
type Config struct {
	// DailyTargetCards caps the limited-mode session pool.
	DailyTargetCards int

	// SessionSize is the number of cards before a summary is shown.
	SessionSize int

	// DailyGoalStep is the goal credit granted per perfect card.
	DailyGoalStep float64

	// EnabledModes maps mode names to whether the user allows them.
	EnabledModes map[modes.Mode]bool

	Typing TypingConfig
}

// TypingConfig selects between the typing mode's resolution behaviors.
type TypingConfig struct {
	RequireSelfRating bool
	ClearOnWrong      bool
}

// Default returns the configuration with every knob at its default.
func Default() *Config {
	enabled := make(map[modes.Mode]bool, len(modes.All))
	for _, m := range modes.All {
		enabled[m] = true
	}
	return &Config{
		DailyTargetCards: 20,
		SessionSize:      20,
		DailyGoalStep:    1.0,
		EnabledModes:     enabled,
		Typing: TypingConfig{
			RequireSelfRating: true,
			ClearOnWrong:      false,
		},
	}
}

// Load reads configuration from the environment on top of the defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	// Ignore error if no .env file exists.
	_ = godotenv.Load()

	cfg := Default()

	var err error
	if cfg.DailyTargetCards, err = intEnv("VOKABA_DAILY_TARGET_CARDS", cfg.DailyTargetCards); err != nil {
		return nil, err
	}
	if cfg.DailyTargetCards < 1 {
		return nil, fmt.Errorf("VOKABA_DAILY_TARGET_CARDS must be >= 1, got %d", cfg.DailyTargetCards)
	}

	if cfg.SessionSize, err = intEnv("VOKABA_SESSION_SIZE", cfg.SessionSize); err != nil {
		return nil, err
	}
	if cfg.SessionSize < MinSessionSize {
		cfg.SessionSize = MinSessionSize
	}
	if cfg.SessionSize > MaxSessionSize {
		cfg.SessionSize = MaxSessionSize
	}

	if cfg.DailyGoalStep, err = floatEnv("VOKABA_DAILY_GOAL_STEP", cfg.DailyGoalStep); err != nil {
		return nil, err
	}
	if cfg.Typing.RequireSelfRating, err = boolEnv("VOKABA_TYPING_SELF_RATING", cfg.Typing.RequireSelfRating); err != nil {
		return nil, err
	}
	if cfg.Typing.ClearOnWrong, err = boolEnv("VOKABA_TYPING_CLEAR_ON_WRONG", cfg.Typing.ClearOnWrong); err != nil {
		return nil, err
	}

	if err := parseDisabledModes(cfg, os.Getenv("VOKABA_DISABLED_MODES")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseDisabledModes turns a comma-separated list of mode names into
// EnabledModes=false flags.
func parseDisabledModes(cfg *Config, list string) error {
	if list == "" {
		return nil
	}
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		m := modes.Mode(name)
		if _, ok := cfg.EnabledModes[m]; !ok {
			return fmt.Errorf("VOKABA_DISABLED_MODES: unknown mode %q", name)
		}
		cfg.EnabledModes[m] = false
	}
	return nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
