package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/samber/lo"
)

// Requirement names an external program ripmap shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is the outcome of checking one Requirement. Command holds the
// resolved path when the program was found.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// Satisfied reports whether the dependency is available or may be skipped.
func (s Status) Satisfied() bool {
	return s.Available || s.Optional
}

// CheckBinaries looks up every requirement on PATH.
func CheckBinaries(requirements []Requirement) []Status {
	return lo.Map(requirements, func(req Requirement, _ int) Status {
		return checkBinary(req)
	})
}

func checkBinary(req Requirement) Status {
	req.Command = strings.TrimSpace(req.Command)
	req.Description = strings.TrimSpace(req.Description)
	status := Status{Requirement: req}
	if req.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := exec.LookPath(req.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		return status
	}
	status.Command = resolved
	status.Available = true
	return status
}
