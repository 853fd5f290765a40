package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"ripmap/internal/catalog"
	"ripmap/internal/config"
	"ripmap/internal/disc"
	"ripmap/internal/logging"
	"ripmap/internal/session"
)

type commandContext struct {
	configFlag  *string
	programFlag *string
	seasonFlag  *int

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	fs afero.Fs
}

func newCommandContext(configFlag, programFlag *string, seasonFlag *int) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		programFlag: programFlag,
		seasonFlag:  seasonFlag,
		fs:          afero.NewOsFs(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.programFlag != nil {
			if program := strings.TrimSpace(*c.programFlag); program != "" {
				cfg.Session.Program = program
			}
		}
		if c.seasonFlag != nil && *c.seasonFlag >= 0 {
			cfg.Session.Season = *c.seasonFlag
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, cmd.ErrOrStderr())
}

func (c *commandContext) withStore(fn func(*config.Config, *catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalogue: %w", err)
	}
	defer store.Close()
	return fn(cfg, store)
}

// player builds the VLC player for the configured disc source.
func (c *commandContext) player() (*disc.Player, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return disc.NewPlayer(cfg.Disc.VLC, cfg.Disc.Source), nil
}

// loadDisc reads the disc saved by the last scan.
func (c *commandContext) loadDisc(cfg *config.Config) (*disc.Disc, error) {
	d, err := disc.LoadScan(c.fs, cfg.Paths.ScanCache)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no scanned disc at %s; run 'ripmap scan' first", cfg.Paths.ScanCache)
	}
	return d, err
}

// withSession opens the session for the cached disc and the configured
// program season.
func (c *commandContext) withSession(cmd *cobra.Command, fn func(*session.Session) error) error {
	logger, err := c.logger(cmd)
	if err != nil {
		return err
	}
	return c.withStore(func(cfg *config.Config, store *catalog.Store) error {
		d, err := c.loadDisc(cfg)
		if err != nil {
			return err
		}
		s, err := session.Open(cmd.Context(), cfg, store, d, session.WithLogger(logger))
		if err != nil {
			return err
		}
		return fn(s)
	})
}

// withSeason runs fn against the configured program season.
func (c *commandContext) withSeason(cmd *cobra.Command, fn func(store *catalog.Store, program string, season int) error) error {
	return c.withStore(func(cfg *config.Config, store *catalog.Store) error {
		if cfg.Session.Program == "" {
			return session.ErrNoProgram
		}
		program, err := store.EnsureSeason(cmd.Context(), cfg.Session.Program, cfg.Session.Season)
		if err != nil {
			return err
		}
		return fn(store, program, cfg.Session.Season)
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
