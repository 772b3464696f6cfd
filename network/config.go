package network

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrFeedRunning is returned by Start on a feed that is already serving
	ErrFeedRunning = errors.New("feed already running")

	// ErrMaxPeers is returned when a client connects past the peer limit
	ErrMaxPeers = errors.New("max peers reached")

	// ErrInvalidConfig wraps every validation failure
	ErrInvalidConfig = errors.New("invalid feed config")
)

// Config holds score feed configuration
type Config struct {
	// Enabled starts the HTTP server during wiring
	Enabled bool `toml:"enabled"`

	// Address to bind, host:port
	Address string `toml:"address"`

	// AllowedOrigins for CORS and the WebSocket origin check, "*" allows any
	AllowedOrigins []string `toml:"allowed_origins"`

	// Connection limits
	MaxPeers int `toml:"max_peers"`

	// Timing
	WriteTimeout time.Duration `toml:"write_timeout"`
	PingInterval time.Duration `toml:"ping_interval"`
	PongTimeout  time.Duration `toml:"pong_timeout"`

	// Buffer sizes
	ReadBufferSize  int `toml:"read_buffer_size"`
	WriteBufferSize int `toml:"write_buffer_size"`
	SendQueueSize   int `toml:"send_queue_size"`
}

// DefaultConfig returns the feed defaults, disabled
func DefaultConfig() *Config {
	return &Config{
		Enabled:         false,
		Address:         "127.0.0.1:7777",
		AllowedOrigins:  []string{"*"},
		MaxPeers:        16,
		WriteTimeout:    5 * time.Second,
		PingInterval:    30 * time.Second,
		PongTimeout:     60 * time.Second,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendQueueSize:   64,
	}
}

// DebugConfig returns an enabled config bound to addr
func DebugConfig(addr string) *Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Address = addr
	return cfg
}

// Validate checks limits and timings
func (c *Config) Validate() error {
	switch {
	case c.Address == "":
		return fmt.Errorf("%w: empty address", ErrInvalidConfig)
	case c.MaxPeers < 1:
		return fmt.Errorf("%w: max_peers %d", ErrInvalidConfig, c.MaxPeers)
	case c.SendQueueSize < 1:
		return fmt.Errorf("%w: send_queue_size %d", ErrInvalidConfig, c.SendQueueSize)
	case c.WriteTimeout <= 0 || c.PingInterval <= 0:
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	case c.PongTimeout <= c.PingInterval:
		return fmt.Errorf("%w: pong_timeout %s not above ping_interval %s", ErrInvalidConfig, c.PongTimeout, c.PingInterval)
	}
	return nil
}

// allowsOrigin reports whether an Origin header value is accepted
func (c *Config) allowsOrigin(origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
