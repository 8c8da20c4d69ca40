package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSegmenter(); err != nil {
		return err
	}
	if err := c.validateResolver(); err != nil {
		return err
	}
	if err := c.validateRedis(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSegmenter() error {
	if c.Segmenter.RestartGrace <= 0 {
		return errors.New("segmenter.restart_grace must be positive")
	}
	if c.Segmenter.MinWindowSamples < defaultMinWindowSamples {
		return fmt.Errorf("segmenter.min_window_samples must be at least %d", defaultMinWindowSamples)
	}
	return nil
}

func (c *Config) validateResolver() error {
	for name, value := range map[string]float64{
		"resolver.similarity_threshold":      c.Resolver.SimilarityThreshold,
		"resolver.name_similarity_threshold": c.Resolver.NameSimilarityThreshold,
		"resolver.ambiguity_margin":          c.Resolver.AmbiguityMargin,
	} {
		if value <= 0 || value > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %v", name, value)
		}
	}
	if c.Resolver.ModeWindow < 0 {
		return errors.New("resolver.mode_window must be >= 0")
	}
	if c.Resolver.TeamSize <= 0 {
		return errors.New("resolver.team_size must be positive")
	}
	if c.Resolver.RoundRestartGap <= 0 {
		return errors.New("resolver.round_restart_gap must be positive")
	}
	if c.Resolver.KillMergeWindow < 0 {
		return errors.New("resolver.kill_merge_window must be >= 0")
	}
	return nil
}

func (c *Config) validateRedis() error {
	if !c.Redis.Enabled {
		return nil
	}
	if c.Redis.DB < 0 {
		return errors.New("redis.db must be >= 0")
	}
	if c.Redis.MaxLen < 0 {
		return errors.New("redis.max_len must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
