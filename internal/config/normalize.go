package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDisc()
	c.normalizeMapping()
	c.normalizeSession()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.Database) == "" {
		c.Paths.Database = defaultDatabasePath
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if strings.TrimSpace(c.Paths.ScanCache) == "" {
		c.Paths.ScanCache = defaultScanCache
	}
	var err error
	if c.Paths.Database, err = expandPath(c.Paths.Database); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.ScanCache, err = expandPath(c.Paths.ScanCache); err != nil {
		return fmt.Errorf("paths.scan_cache: %w", err)
	}
	return nil
}

func (c *Config) normalizeDisc() {
	c.Disc.Source = strings.TrimSpace(c.Disc.Source)
	if c.Disc.Source == "" {
		if value, ok := os.LookupEnv("RIPMAP_SOURCE"); ok && strings.TrimSpace(value) != "" {
			c.Disc.Source = strings.TrimSpace(value)
		} else {
			c.Disc.Source = defaultSource
		}
	}
	c.Disc.HandBrake = strings.TrimSpace(c.Disc.HandBrake)
	if c.Disc.HandBrake == "" {
		c.Disc.HandBrake = defaultHandBrake
	}
	c.Disc.VLC = strings.TrimSpace(c.Disc.VLC)
	if c.Disc.VLC == "" {
		c.Disc.VLC = defaultVLC
	}
	if c.Disc.ScanTimeout == 0 {
		c.Disc.ScanTimeout = defaultScanTimeout
	}
}

func (c *Config) normalizeMapping() {
	c.Mapping.Duplicates = strings.ToLower(strings.TrimSpace(c.Mapping.Duplicates))
	if c.Mapping.Duplicates == "" {
		c.Mapping.Duplicates = defaultDuplicatePolicy
	}
}

func (c *Config) normalizeSession() {
	c.Session.Program = strings.TrimSpace(c.Session.Program)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
