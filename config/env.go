package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix starts every environment override
const EnvPrefix = "OFFWALL_"

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

type envVar struct {
	name  string
	apply func(c *Config, v string) error
}

var envVars = []envVar{
	{"DEBUG", func(c *Config, v string) error { return parseBool(v, &c.Debug) }},

	{"DEBOUNCE_ABSOLUTE", func(c *Config, v string) error { return parseBool(v, &c.Game.DebounceAbsolute) }},
	{"FLASH_DURATION", func(c *Config, v string) error { return parseDuration(v, &c.Game.FlashDuration) }},
	{"GRAVITY", func(c *Config, v string) error { return parseFloat(v, &c.Game.Gravity) }},

	{"AUDIO_ENABLED", func(c *Config, v string) error { return parseBool(v, &c.Audio.Enabled) }},
	{"MASTER_VOLUME", func(c *Config, v string) error { return parseFloat(v, &c.Audio.MasterVolume) }},
	{"SAMPLE_RATE", func(c *Config, v string) error { return parseInt(v, &c.Audio.SampleRate) }},

	{"FEED_ENABLED", func(c *Config, v string) error { return parseBool(v, &c.Feed.Enabled) }},
	{"FEED_ADDRESS", func(c *Config, v string) error { c.Feed.Address = v; return nil }},
	{"FEED_MAX_PEERS", func(c *Config, v string) error { return parseInt(v, &c.Feed.MaxPeers) }},
	{"FEED_ORIGINS", func(c *Config, v string) error {
		c.Feed.AllowedOrigins = splitList(v)
		return nil
	}},
}

// EnvNames lists every recognised environment variable
func EnvNames() []string {
	names := make([]string, len(envVars))
	for i, ev := range envVars {
		names[i] = EnvPrefix + ev.name
	}
	return names
}

// ApplyEnv overlays OFFWALL_* variables found by lookup
// Empty values are ignored so a blank line in .env does not reset a setting
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for _, ev := range envVars {
		name := EnvPrefix + ev.name
		v, ok := lookup(name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if err := ev.apply(c, strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, name, v, err)
		}
	}
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func parseInt(v string, dst *int) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseFloat(v string, dst *float64) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func parseDuration(v string, dst *time.Duration) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
