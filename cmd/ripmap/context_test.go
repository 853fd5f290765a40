package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCommandContextPlayerReportsConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[disc\nvlc = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	program, season := "", -1
	ctx := newCommandContext(&path, &program, &season)

	player, err := ctx.player()
	if err == nil {
		t.Fatalf("expected config error, got player %+v", player)
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCommandContextPlayerUsesConfiguredSource(t *testing.T) {
	env := setupCLITestEnv(t)
	program, season := "", -1
	ctx := newCommandContext(&env.configPath, &program, &season)

	player, err := ctx.player()
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	mrl, err := player.MRL(nil, nil)
	if err != nil {
		t.Fatalf("mrl: %v", err)
	}
	if want := "dvd://" + env.cfg.Disc.Source; mrl != want {
		t.Fatalf("mrl = %q, want %q", mrl, want)
	}
}
