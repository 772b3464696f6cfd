// Package config loads game settings from defaults, a TOML file, a .env file and
// OFFWALL_* environment variables, in increasing precedence. Command-line flags are
// applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/lixenwraith/offwall/audio"
	"github.com/lixenwraith/offwall/constants"
	"github.com/lixenwraith/offwall/network"
)

// ErrInvalid wraps every load and validation failure caused by bad settings
var ErrInvalid = errors.New("invalid config")

// DefaultEnvFile is loaded by LoadEnvFile when no path is given
const DefaultEnvFile = ".env"

// GameConfig tunes the arena and the collision handler
type GameConfig struct {
	DebounceAbsolute bool          `toml:"debounce_absolute"`
	FlashDuration    time.Duration `toml:"flash_duration"`
	Gravity          float64       `toml:"gravity"`
	BallRadius       float64       `toml:"ball_radius"`
	WallThickness    float64       `toml:"wall_thickness"`
}

// Config is the complete runtime configuration
type Config struct {
	Debug bool              `toml:"debug"`
	Game  GameConfig        `toml:"game"`
	Audio audio.AudioConfig `toml:"audio"`
	Feed  network.Config    `toml:"feed"`

	// Keys maps key names to actions, overriding the default key table
	Keys map[string]string `toml:"keys"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Game: GameConfig{
			FlashDuration: constants.WallFlashDuration,
			Gravity:       constants.Gravity,
			BallRadius:    constants.BallRadius,
			WallThickness: constants.WallThickness,
		},
		Audio: *audio.DefaultAudioConfig(),
		Feed:  *network.DefaultConfig(),
		Keys:  map[string]string{},
	}
}

// Load builds a config from defaults, the TOML file at path (skipped if empty) and
// the process environment, then validates it
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeFile overlays a TOML file; keys the config doesn't know are rejected
func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		var pathErr *fs.PathError
		var parseErr toml.ParseError
		switch {
		case errors.As(err, &pathErr):
			return fmt.Errorf("config %s: %w", path, err)
		case errors.As(err, &parseErr):
			return fmt.Errorf("%w: %s: %s", ErrInvalid, path, parseErr.ErrorWithPosition())
		default:
			// Type mismatches such as a string where a number is expected
			return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
		}
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s: unknown keys %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadEnvFile loads a dotenv file into the process environment
// Variables already set are kept; a missing file is not an error
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("env file %s: %w", path, err)
	}
	return nil
}

// Validate checks every section
func (c *Config) Validate() error {
	g := c.Game
	switch {
	case g.FlashDuration <= 0:
		return fmt.Errorf("%w: game.flash_duration %s must be positive", ErrInvalid, g.FlashDuration)
	case g.Gravity < 0:
		return fmt.Errorf("%w: game.gravity %.3f is negative", ErrInvalid, g.Gravity)
	case g.BallRadius <= 0:
		return fmt.Errorf("%w: game.ball_radius %.1f must be positive", ErrInvalid, g.BallRadius)
	case g.WallThickness <= 0:
		return fmt.Errorf("%w: game.wall_thickness %.1f must be positive", ErrInvalid, g.WallThickness)
	}

	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("%w: audio: %w", ErrInvalid, err)
	}
	if err := c.Feed.Validate(); err != nil {
		return fmt.Errorf("%w: feed: %w", ErrInvalid, err)
	}
	return nil
}

// Write encodes the config as TOML
func (c *Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// KeyNames returns the configured key bindings in sorted order, for logging
func (c *Config) KeyNames() []string {
	names := make([]string, 0, len(c.Keys))
	for k := range c.Keys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
