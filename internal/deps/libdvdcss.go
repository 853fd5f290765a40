package deps

import (
	"os"
	"path/filepath"
)

// LibDVDCSSDirs lists the directories searched for libdvdcss, in order.
var LibDVDCSSDirs = []string{
	"/usr/lib/x86_64-linux-gnu",
	"/usr/lib/aarch64-linux-gnu",
	"/usr/lib64",
	"/usr/lib",
	"/usr/local/lib",
}

// CheckLibDVDCSS reports whether libdvdcss is installed. HandBrake and VLC
// load it at runtime to read CSS-encrypted DVDs, so it never shows up on
// PATH. LD_LIBRARY_PATH entries are searched before dirs.
func CheckLibDVDCSS(dirs []string) Status {
	result := Status{Requirement: Requirement{
		Name:        "libdvdcss",
		Description: "Needed to read encrypted DVDs",
		Optional:    true,
	}}

	search := filepath.SplitList(os.Getenv("LD_LIBRARY_PATH"))
	search = append(search, dirs...)
	for _, dir := range search {
		if dir == "" {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(dir, "libdvdcss.so*"))
		if err != nil {
			continue
		}
		for _, candidate := range matches {
			if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
				result.Command = candidate
				result.Available = true
				return result
			}
		}
	}

	result.Command = "libdvdcss.so.2"
	result.Detail = "library not found"
	return result
}
