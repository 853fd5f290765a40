package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"ripmap/internal/config"
	"ripmap/internal/deps"
)

// CheckDirectoryAccess verifies that the directory is readable and writable.
// A missing directory passes when its nearest existing ancestor is writable,
// since ripmap creates its directories on demand.
func CheckDirectoryAccess(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
		}
		ancestor, ok := existingAncestor(path)
		if !ok {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		if err := unix.Access(ancestor, unix.W_OK|unix.X_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, ancestor, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func existingAncestor(path string) (string, bool) {
	dir := filepath.Clean(path)
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
		if info, err := os.Stat(dir); err == nil {
			return dir, info.IsDir()
		}
	}
}

// CheckSource verifies that the disc source can be read. The source may be a
// drive device, a disc image or an extracted VIDEO_TS tree.
func CheckSource(path string) Result {
	const name = "Disc source"

	if path == "" {
		return Result{Name: name, Detail: "not configured (set disc.source or RIPMAP_SOURCE)"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, sourceKind(info))}
}

func sourceKind(info os.FileInfo) string {
	mode := info.Mode()
	switch {
	case mode&os.ModeDevice != 0:
		return "device"
	case mode.IsDir():
		return "directory"
	default:
		return "image"
	}
}

// CheckSystemDeps evaluates the external programs ripmap runs for the given
// config.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "HandBrake",
			Command:     cfg.Disc.HandBrake,
			Description: "Required to scan disc titles and chapters",
		},
		{
			Name:        "VLC",
			Command:     cfg.Disc.VLC,
			Description: "Plays candidate chapters while resolving ambiguous mappings",
			Optional:    true,
		},
	}
	results := deps.CheckBinaries(requirements)
	return append(results, deps.CheckLibDVDCSS(deps.LibDVDCSSDirs))
}
