package config

import (
	"errors"
	"fmt"

	"ripmap/internal/disc"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDisc(); err != nil {
		return err
	}
	if err := c.validateMapping(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDisc() error {
	if c.Disc.ScanTimeout < 0 {
		return errors.New("disc.scan_timeout must be positive")
	}
	if c.Disc.MinTitleSeconds < 0 {
		return errors.New("disc.min_title_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateMapping() error {
	if c.Mapping.DurationMin < 0 {
		return errors.New("mapping.duration_min must be zero or positive")
	}
	if c.Mapping.DurationMax < c.Mapping.DurationMin {
		return fmt.Errorf("mapping.duration_max (%d) must be at least mapping.duration_min (%d)", c.Mapping.DurationMax, c.Mapping.DurationMin)
	}
	if _, err := disc.ParsePolicy(c.Mapping.Duplicates); err != nil {
		return fmt.Errorf("mapping.duplicates: %w", err)
	}
	return nil
}

func (c *Config) validateSession() error {
	if c.Session.Season < 0 {
		return errors.New("session.season must be zero or positive")
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
