package main

import (
	"errors"
	"os"
	"testing"
)

func TestCheckPasses(t *testing.T) {
	env := setupCLITestEnv(t)
	out, err := runCLI(t, []string{"check", env.jobDir}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "mkvmerge:")
	requireContains(t, out, "mkvmerge v82.0")
	requireContains(t, out, "Job directory:")
	requireContains(t, out, "[OK]")
}

func TestCheckReportsMissingBinary(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.cfg.Tools.Mkvmerge); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, []string{"check"}, env.configPath)
	if !errors.Is(err, errCheckFailed) {
		t.Fatalf("expected check failure, got %v", err)
	}
	requireContains(t, out, "[ERROR]")
}
