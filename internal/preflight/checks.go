package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"mkvsubstrip/internal/config"
	"mkvsubstrip/internal/deps"
	"mkvsubstrip/internal/pipeline"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := accessible(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies that the filesystem holding dir has at least need
// bytes available to unprivileged users.
func CheckFreeSpace(name, dir string, need uint64) Result {
	available, err := freeBytes(dir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: free space: %v)", dir, err)}
	}
	if available < need {
		return Result{Name: name, Detail: fmt.Sprintf("%s available, %s needed", formatBytes(available), formatBytes(need))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s available, %s needed", formatBytes(available), formatBytes(need))}
}

// LargestContainer returns the size of the biggest container in dir. A
// remux writes a full copy next to the original, so this is the peak extra
// space a run needs.
func LargestContainer(dir, ext string) (uint64, error) {
	files, err := pipeline.Discover(dir, ext)
	if err != nil {
		return 0, err
	}
	var largest uint64
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			return 0, err
		}
		if size := uint64(info.Size()); size > largest {
			largest = size
		}
	}
	return largest, nil
}

// CheckSystemDeps evaluates the MKVToolNix binaries named by cfg.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries([]deps.Requirement{
		{
			Name:        "mkvmerge",
			Command:     cfg.Tools.Mkvmerge,
			Description: "Required to probe containers and strip subtitles",
		},
		{
			Name:        "mkvextract",
			Command:     cfg.Tools.Mkvextract,
			Description: "Required to extract subtitle tracks",
		},
	})
}

// CheckLockDir verifies that the lock directory exists or can be created.
func CheckLockDir(path string) Result {
	const name = "Lock directory"
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return CheckDirectoryAccess(name, filepath.Clean(path))
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
