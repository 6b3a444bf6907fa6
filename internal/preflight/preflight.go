package preflight

import (
	"mkvsubstrip/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for processing dir with cfg.
func RunAll(cfg *config.Config, dir string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Job directory", dir)}
	if !results[0].Passed {
		return results
	}
	results = append(results, CheckLockDir(cfg.Processing.LockDir))

	largest, err := LargestContainer(dir, cfg.Processing.Extension)
	if err != nil {
		results = append(results, Result{Name: "Free space", Detail: err.Error()})
		return results
	}
	results = append(results, CheckFreeSpace("Free space", dir, largest))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
