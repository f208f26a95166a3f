package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScanning(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScanning() error {
	if c.Scanning.FuzzyThreshold < 0 || c.Scanning.FuzzyThreshold > 100 {
		return errors.New("scanning.fuzzy_threshold must be between 0 and 100")
	}
	if c.Scanning.CacheMaxAgeHours < 0 {
		return errors.New("scanning.cache_max_age_hours must not be negative")
	}
	if c.Scanning.Workers < 1 {
		return errors.New("scanning.workers must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
