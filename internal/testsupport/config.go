package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"ripmap/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Database = filepath.Join(base, "data", "catalog.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ScanCache = filepath.Join(base, "cache", "scan.txt")
	cfgVal.Disc.Source = filepath.Join(base, "disc.iso")
	cfgVal.Session.Program = "Foo & Bar"
	cfgVal.Session.Season = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithWindow sets the automap duration window in minutes.
func WithWindow(minMinutes, maxMinutes int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Mapping.DurationMin = minMinutes
		b.cfg.Mapping.DurationMax = maxMinutes
	}
}

// WithDuplicates sets the duplicate policy.
func WithDuplicates(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Mapping.Duplicates = policy
	}
}

// WithStubbedBinaries installs no-op executables under the config's temp
// directory and puts them first on PATH. HandBrakeCLI and vlc are stubbed
// when names is empty.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"HandBrakeCLI", "vlc"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			WriteExecutable(b.t, filepath.Join(binDir, name), "exit 0\n")
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// WriteExecutable writes a /bin/sh script with the given body to path.
func WriteExecutable(t testing.TB, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write executable %s: %v", path, err)
	}
}
