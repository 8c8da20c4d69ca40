package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the environment variables that take precedence over the
// config file. Unset variables leave the file value untouched.
type envOverrides struct {
	DataDir       string `env:"MATCHMILL_DATA_DIR"`
	LogDir        string `env:"MATCHMILL_LOG_DIR"`
	LogLevel      string `env:"MATCHMILL_LOG_LEVEL"`
	LogFormat     string `env:"MATCHMILL_LOG_FORMAT"`
	NtfyTopic     string `env:"MATCHMILL_NTFY_TOPIC"`
	RedisAddress  string `env:"MATCHMILL_REDIS_ADDRESS"`
	RedisPassword string `env:"MATCHMILL_REDIS_PASSWORD"`
}

func (c *Config) applyEnv() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	assign := func(dst *string, value string) {
		if value = strings.TrimSpace(value); value != "" {
			*dst = value
		}
	}
	assign(&c.Paths.DataDir, overrides.DataDir)
	assign(&c.Paths.LogDir, overrides.LogDir)
	assign(&c.Logging.Level, overrides.LogLevel)
	assign(&c.Logging.Format, overrides.LogFormat)
	assign(&c.Notifications.NtfyTopic, overrides.NtfyTopic)
	assign(&c.Redis.Address, overrides.RedisAddress)
	assign(&c.Redis.Password, overrides.RedisPassword)
	return nil
}
