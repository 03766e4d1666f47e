// Package config loads retry and logging settings from the environment
package config

import (
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/jzx17/airetry/pkg/logger"
	"github.com/jzx17/airetry/pkg/retry"
)

type Config struct {
	Retry  RetryConfig
	Logger LoggerConfig
}

type RetryConfig struct {
	MaxRetries            int           `env:"RETRY_MAX_RETRIES" envDefault:"3"`
	BaseDelay             time.Duration `env:"RETRY_BASE_DELAY" envDefault:"1s"`
	MaxDelay              time.Duration `env:"RETRY_MAX_DELAY" envDefault:"60s"`
	UseExponentialBackoff bool          `env:"RETRY_EXPONENTIAL_BACKOFF" envDefault:"true"`
}

type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"warn"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
	JSON   bool   `env:"LOG_JSON" envDefault:"true"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Retry: RetryConfig{
			MaxRetries:            retry.DefaultMaxRetries,
			BaseDelay:             retry.DefaultBaseDelay,
			MaxDelay:              retry.DefaultMaxDelay,
			UseExponentialBackoff: true,
		},
		Logger: LoggerConfig{
			Level:  "warn",
			Pretty: false,
			JSON:   true,
		},
	}
}

// Policy converts the retry settings into a retry.Config
func (c RetryConfig) Policy() retry.Config {
	return retry.Config{
		MaxRetries:            c.MaxRetries,
		BaseDelay:             c.BaseDelay,
		MaxDelay:              c.MaxDelay,
		UseExponentialBackoff: c.UseExponentialBackoff,
	}
}

// NewLogger builds the configured logger
func (c LoggerConfig) NewLogger() logger.Logger {
	return logger.NewLogger(logger.Config{
		Level:  c.Level,
		Pretty: c.Pretty,
		JSON:   c.JSON,
	})
}

// Options returns retry options carrying the policy and the logger
func (c *Config) Options() []retry.Option {
	return []retry.Option{
		retry.WithConfig(c.Retry.Policy()),
		retry.WithLogger(c.Logger.NewLogger().WithComponent("retry")),
	}
}
