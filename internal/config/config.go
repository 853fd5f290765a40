package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	Database  string `toml:"database"`
	LogDir    string `toml:"log_dir"`
	ScanCache string `toml:"scan_cache"`
}

// Disc contains configuration for scanning and previewing the source drive.
type Disc struct {
	Source          string `toml:"source"`
	HandBrake       string `toml:"handbrake"`
	VLC             string `toml:"vlc"`
	DVDNav          bool   `toml:"dvdnav"`
	ScanTimeout     int    `toml:"scan_timeout"`
	MinTitleSeconds int    `toml:"min_title_seconds"`
}

// Mapping contains the automap duration window and candidate filtering.
type Mapping struct {
	// DurationMin and DurationMax are episode lengths in minutes.
	DurationMin int    `toml:"duration_min"`
	DurationMax int    `toml:"duration_max"`
	Duplicates  string `toml:"duplicates"`
	Strict      bool   `toml:"strict"`
}

// Session selects the program season episodes are mapped from.
type Session struct {
	Program string `toml:"program"`
	Season  int    `toml:"season"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for ripmap.
//
// Configuration sections by subsystem:
//   - Paths: catalogue database, logs and the cached disc scan
//   - Disc: source device and the HandBrake/VLC executables
//   - Mapping: automap duration window and duplicate policy
//   - Session: the program and season currently being ripped
//   - Logging: log format, level, and retention
type Config struct {
	Paths   Paths   `toml:"paths"`
	Disc    Disc    `toml:"disc"`
	Mapping Mapping `toml:"mapping"`
	Session Session `toml:"session"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config: %s", strict.String())
			}
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ripmap.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories holding the database, logs and
// scan cache.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Paths.Database), c.Paths.LogDir, filepath.Dir(c.Paths.ScanCache)}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ScanTimeout bounds a single HandBrake scan.
func (c *Config) ScanTimeout() time.Duration {
	return time.Duration(c.Disc.ScanTimeout) * time.Second
}

// DurationWindow returns the configured episode length bounds.
func (c *Config) DurationWindow() (time.Duration, time.Duration) {
	return time.Duration(c.Mapping.DurationMin) * time.Minute, time.Duration(c.Mapping.DurationMax) * time.Minute
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// ErrConfigExists is returned by CreateSample when the target is already
// present and overwrite was not requested.
var ErrConfigExists = errors.New("config file already exists")

// CreateSample writes the commented sample configuration to path on fsys.
func CreateSample(fsys afero.Fs, path string, overwrite bool) error {
	if !overwrite {
		exists, err := afero.Exists(fsys, path)
		if err != nil {
			return fmt.Errorf("check config path: %w", err)
		}
		if exists {
			return fmt.Errorf("%w at %s (use --overwrite to replace it)", ErrConfigExists, path)
		}
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := afero.WriteFile(fsys, path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	var b strings.Builder
	encoder := toml.NewEncoder(&b)
	encoder.SetIndentTables(true)
	if err := encoder.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}
