package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// versionTimeout bounds each "--version" call; MKVToolNix answers instantly.
const versionTimeout = 5 * time.Second

// Requirement names a binary mkvsubstrip shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is what CheckBinaries found for one Requirement. Version holds the
// first line of "<binary> --version", e.g. "mkvmerge v82.0 ('I'm The Widow')
// 64-bit", or "" when the binary did not answer.
type Status struct {
	Requirement
	Available bool
	Path      string
	Version   string
	Detail    string
}

// CheckBinaries resolves every requirement on PATH (or as given, when it is
// a path) and asks each found binary for its version.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, len(requirements))
	for i, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		results[i] = check(req)
	}
	return results
}

func check(req Requirement) Status {
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
	status.Available = true
	status.Path = resolved
	status.Version = version(resolved)
	return status
}

func version(path string) string {
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}

// MissingRequired returns the non-optional dependencies that are unavailable.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}
