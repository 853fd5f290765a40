package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ripmap/internal/config"
	"ripmap/internal/disc"
	"ripmap/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(base, "ripmap.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// installScanner points the config at a HandBrakeCLI stub that prints a scan
// of d, and creates the disc source so preflight passes.
func (env *cliTestEnv) installScanner(t *testing.T, d *disc.Disc) {
	t.Helper()

	output := filepath.Join(env.baseDir, "scan-output.txt")
	if err := os.WriteFile(output, []byte(testsupport.HandBrakeScan(d)), 0o644); err != nil {
		t.Fatalf("write scan output: %v", err)
	}
	stub := filepath.Join(env.baseDir, "HandBrakeCLI")
	testsupport.WriteExecutable(t, stub, "cat '"+output+"'\ncat '"+output+"' >&2\n")
	if err := os.WriteFile(env.cfg.Disc.Source, []byte("iso"), 0o644); err != nil {
		t.Fatalf("write disc source: %v", err)
	}
	env.cfg.Disc.HandBrake = stub
	writeTestConfig(t, env.configPath, env.cfg)
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRunCLI(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, env, args...)
	if err != nil {
		t.Fatalf("ripmap %s: %v\nstdout:\n%s\nstderr:\n%s", strings.Join(args, " "), err, out, stderr)
	}
	return out
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\nGot:\n%s", needle, haystack)
	}
}

// episodeDisc is a DVD whose play-all title 1 holds the chapters of a
// 30-minute title 2 and a 31-minute title 3; title 4 is a short extra.
func episodeDisc() *disc.Disc {
	return testsupport.NewDisc([]testsupport.Track{
		{Duration: testsupport.MinSec(30, 0), Weights: []int{1, 1}},
		{Duration: testsupport.MinSec(31, 0), Weights: []int{1, 1}},
		{Duration: testsupport.MinSec(5, 0), Weights: []int{1}},
	}, 0, 1)
}

// ambiguousDisc has a single title whose one-minute third chapter fits
// either neighbouring episode.
func ambiguousDisc() *disc.Disc {
	return testsupport.NewDisc([]testsupport.Track{
		{Duration: testsupport.MinSec(41, 0), Weights: []int{10, 10, 1, 10, 10}},
	})
}
