package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Optional", Command: "clearly-not-present-either", Optional: true},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available || !results[0].Satisfied() {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available || results[1].Satisfied() {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available || !results[2].Satisfied() {
		t.Fatalf("expected optional binary to be satisfied while missing, got %#v", results[2])
	}
	if results[3].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", results[3].Detail)
	}
}

func TestCheckBinariesResolvesFromPath(t *testing.T) {
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "HandBrakeCLI")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir)

	results := CheckBinaries([]Requirement{{Name: "HandBrake", Command: "HandBrakeCLI"}})
	if !results[0].Available || results[0].Command != stub {
		t.Fatalf("expected resolved path %q, got %#v", stub, results[0])
	}
}

func TestCheckLibDVDCSS(t *testing.T) {
	t.Setenv("LD_LIBRARY_PATH", "")

	empty := t.TempDir()
	status := CheckLibDVDCSS([]string{empty})
	if status.Available {
		t.Fatalf("expected libdvdcss missing, got %#v", status)
	}
	if !status.Optional || status.Detail == "" {
		t.Fatalf("expected optional status with detail, got %#v", status)
	}

	libDir := t.TempDir()
	lib := filepath.Join(libDir, "libdvdcss.so.2")
	if err := os.WriteFile(lib, []byte("elf"), 0o644); err != nil {
		t.Fatalf("write lib: %v", err)
	}
	status = CheckLibDVDCSS([]string{empty, libDir})
	if !status.Available || status.Command != lib {
		t.Fatalf("expected libdvdcss at %q, got %#v", lib, status)
	}
}

func TestCheckLibDVDCSSHonorsLibraryPath(t *testing.T) {
	libDir := t.TempDir()
	lib := filepath.Join(libDir, "libdvdcss.so")
	if err := os.WriteFile(lib, []byte("elf"), 0o644); err != nil {
		t.Fatalf("write lib: %v", err)
	}
	t.Setenv("LD_LIBRARY_PATH", libDir)

	status := CheckLibDVDCSS(nil)
	if !status.Available || status.Command != lib {
		t.Fatalf("expected libdvdcss from LD_LIBRARY_PATH, got %#v", status)
	}
}
