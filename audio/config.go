package audio

import (
	"fmt"

	"github.com/lixenwraith/offwall/constants"
)

// AudioConfig holds output settings for the sound manager
type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"` // 0.0 to 1.0
	SampleRate   int     `toml:"sample_rate"`
}

// DefaultAudioConfig returns audio enabled at full volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 1.0,
		SampleRate:   constants.AudioSampleRate,
	}
}

// Validate checks ranges
func (c *AudioConfig) Validate() error {
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		return fmt.Errorf("%w: master_volume %.2f outside [0, 1]", ErrInvalidConfig, c.MasterVolume)
	}
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("%w: sample_rate %d outside [8000, 192000]", ErrInvalidConfig, c.SampleRate)
	}
	return nil
}
