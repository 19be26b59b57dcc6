// Package config holds the client configuration surface and its loader.
package config

import "time"

// Bounds for the retry knobs. Values outside these ranges are clamped
// by Normalize rather than rejected.
const (
	MinMaxRetries = 0
	MaxMaxRetries = 10

	MinInitialBackoff = 100 * time.Millisecond
	MaxInitialBackoff = 10 * time.Second
)

// Config is the complete client configuration.
type Config struct {
	APIKey  string `mapstructure:"api_key"`
	Sandbox bool   `mapstructure:"sandbox"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Retry     RetryConfig     `mapstructure:"retry"`
	Transport TransportConfig `mapstructure:"transport"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// RateLimitConfig holds the local quota ceilings.
type RateLimitConfig struct {
	PerMinute int `mapstructure:"per_minute"`
	PerDay    int `mapstructure:"per_day"`
	PerMonth  int `mapstructure:"per_month"`
}

// RetryConfig tunes the dispatcher's retry and pacing behavior.
type RetryConfig struct {
	MaxRetries     int           `mapstructure:"max_retries"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	RequestSpacing time.Duration `mapstructure:"request_spacing"`
}

// TransportConfig bounds the HTTP call itself.
type TransportConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig selects the logger profile.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns the free-tier configuration.
func Default() *Config {
	return &Config{
		RateLimit: RateLimitConfig{
			PerMinute: 10,
			PerDay:    333,
			PerMonth:  10000,
		},
		Retry: RetryConfig{
			MaxRetries:     3,
			InitialBackoff: time.Second,
			RequestSpacing: 200 * time.Millisecond,
		},
		Transport: TransportConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Normalize clamps the retry knobs into their documented ranges.
func (c *Config) Normalize() {
	if c == nil {
		return
	}
	if c.Retry.MaxRetries < MinMaxRetries {
		c.Retry.MaxRetries = MinMaxRetries
	}
	if c.Retry.MaxRetries > MaxMaxRetries {
		c.Retry.MaxRetries = MaxMaxRetries
	}
	if c.Retry.InitialBackoff < MinInitialBackoff {
		c.Retry.InitialBackoff = MinInitialBackoff
	}
	if c.Retry.InitialBackoff > MaxInitialBackoff {
		c.Retry.InitialBackoff = MaxInitialBackoff
	}
}
