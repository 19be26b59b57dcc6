package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const envPrefix = "COINLENS"

// Load builds a Config from three layers: package defaults, an optional
// YAML file, and COINLENS_* environment variables. Later layers win.
// Pass an empty path to skip the file layer.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("api_key", defaults.APIKey)
	v.SetDefault("sandbox", defaults.Sandbox)
	v.SetDefault("rate_limit.per_minute", defaults.RateLimit.PerMinute)
	v.SetDefault("rate_limit.per_day", defaults.RateLimit.PerDay)
	v.SetDefault("rate_limit.per_month", defaults.RateLimit.PerMonth)
	v.SetDefault("retry.max_retries", defaults.Retry.MaxRetries)
	v.SetDefault("retry.initial_backoff", defaults.Retry.InitialBackoff)
	v.SetDefault("retry.request_spacing", defaults.Retry.RequestSpacing)
	v.SetDefault("transport.timeout", defaults.Transport.Timeout)
	v.SetDefault("logging.level", defaults.Logging.Level)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Normalize()
	return &cfg, nil
}
