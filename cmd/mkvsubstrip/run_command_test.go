package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mkvsubstrip/internal/jobctx"
	"mkvsubstrip/internal/pipeline"
	"mkvsubstrip/internal/services"
)

func TestHookProcessesPositionalDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	container := env.addContainer(t, "movie.mkv", movieIdentifyJSON)

	out, err := runCLI(t, []string{env.jobDir, "Movie.2020"}, env.configPath)
	if err != nil {
		t.Fatalf("hook: %v", err)
	}
	requireContains(t, out, "1 succeeded, 0 failed, 1 total")
	requireContains(t, out, "movie.zip")

	if got := readFile(t, container); got != "stripped" {
		t.Fatalf("container not remuxed: %q", got)
	}
	if _, err := os.Stat(filepath.Join(env.jobDir, "movie.eng.(Full).srt")); err != nil {
		t.Fatalf("expected extracted subtitle: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.jobDir, "movie.zip")); err != nil {
		t.Fatalf("expected archive: %v", err)
	}
}

func TestHookReadsDirectoryFromEnvironment(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addContainer(t, "movie.mkv", movieIdentifyJSON)
	t.Setenv(jobctx.EnvCompleteDir, env.jobDir)

	out, err := runCLI(t, []string{"run"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "1 succeeded")
}

func TestHookReportsMalformedProbe(t *testing.T) {
	env := setupCLITestEnv(t)
	bad := env.addContainer(t, "a.mkv", `{"container": {}}`)
	env.addContainer(t, "b.mkv", movieIdentifyJSON)

	out, err := runCLI(t, []string{"--dir", env.jobDir}, env.configPath)
	if !errors.Is(err, pipeline.ErrFilesFailed) || !errors.Is(err, services.ErrMalformedOutput) {
		t.Fatalf("expected failed-files error, got %v", err)
	}
	requireContains(t, out, "1 succeeded, 1 failed, 2 total")
	requireContains(t, out, "probe: malformed output")
	if got := readFile(t, bad); got != "matroska" {
		t.Fatalf("malformed container modified: %q", got)
	}
}

func TestHookDryRunLeavesDirectoryAlone(t *testing.T) {
	env := setupCLITestEnv(t)
	container := env.addContainer(t, "movie.mkv", movieIdentifyJSON)

	out, err := runCLI(t, []string{"--dry-run", "--dir", env.jobDir}, env.configPath)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	requireContains(t, out, "1 planned, 0 failed, 1 total (dry run)")
	if got := readFile(t, container); got != "matroska" {
		t.Fatalf("container modified: %q", got)
	}
	if _, err := os.Stat(filepath.Join(env.jobDir, "movie.zip")); !os.IsNotExist(err) {
		t.Fatal("dry run must not archive")
	}
}

func TestHookRequiresDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, err := runCLI(t, nil, env.configPath); !errors.Is(err, jobctx.ErrNoDirectory) {
		t.Fatalf("expected ErrNoDirectory, got %v", err)
	}
}

func TestHookRefusesMissingBinaries(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.cfg.Tools.Mkvextract); err != nil {
		t.Fatal(err)
	}
	_, err := runCLI(t, []string{env.jobDir}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
