// Package jobctx resolves which directory a hook invocation should process
// and the job identifier used to label its logs.
//
// Download clients hand this information over in different ways. SABnzbd
// exports SAB_* environment variables and also passes the final directory
// and job name as positional arguments; running by hand uses --dir.
package jobctx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables consulted by FromEnv.
const (
	EnvCompleteDir = "SAB_COMPLETE_DIR"
	EnvScript      = "SAB_SCRIPT"
	EnvFinalName   = "SAB_FINAL_NAME"
)

// ErrNoDirectory is returned when no source supplies a directory.
var ErrNoDirectory = errors.New("no job directory: pass --dir, a positional directory, or set " + EnvCompleteDir)

// Job is the resolved input of one hook invocation.
type Job struct {
	Dir string
	ID  string
}

// Env holds the values read from the environment at startup.
type Env struct {
	CompleteDir string
	Script      string
	FinalName   string
}

// FromEnv reads the hook variables through lookup, normally os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) Env {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		value, _ := lookup(key)
		return strings.TrimSpace(value)
	}
	return Env{
		CompleteDir: get(EnvCompleteDir),
		Script:      get(EnvScript),
		FinalName:   get(EnvFinalName),
	}
}

// Resolve picks the directory and job id. The directory comes from dirFlag,
// then the environment, then args[0]. The id comes from SAB_SCRIPT, then
// SAB_FINAL_NAME or args[1], then the directory's base name.
func Resolve(env Env, dirFlag string, args []string) (Job, error) {
	dir := strings.TrimSpace(dirFlag)
	if dir == "" {
		dir = env.CompleteDir
	}
	if dir == "" && len(args) > 0 {
		dir = strings.TrimSpace(args[0])
	}
	if dir == "" {
		return Job{}, ErrNoDirectory
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	id := env.Script
	if id == "" {
		id = env.FinalName
	}
	if id == "" && len(args) > 1 {
		id = strings.TrimSpace(args[1])
	}
	if id == "" {
		id = filepath.Base(dir)
	}
	return Job{Dir: dir, ID: id}, nil
}
