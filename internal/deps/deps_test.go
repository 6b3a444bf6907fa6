package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := []byte("#!/bin/sh\nif [ \"$1\" = \"--version\" ]; then\n  echo \"" + name + " v82.0 ('I'm The Widow') 64-bit\"\n  echo \"extra line\"\nfi\nexit 0\n")
	if err := os.WriteFile(path, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	present := writeStub(t, t.TempDir(), "mkvmerge")
	reqs := []Requirement{
		{Name: "mkvmerge", Command: present},
		{Name: "mkvextract", Command: "clearly-not-present-binary"},
		{Name: "unset", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Path != present {
		t.Fatalf("expected resolved path %q, got %q", present, results[0].Path)
	}
	if results[0].Version != "mkvmerge v82.0 ('I'm The Widow') 64-bit" {
		t.Fatalf("expected first version line, got %q", results[0].Version)
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured command to be reported, got %#v", results[2])
	}
}

func TestCheckBinariesResolvesFromPath(t *testing.T) {
	dir := t.TempDir()
	writeStub(t, dir, "mkvextract")
	t.Setenv("PATH", dir)

	results := CheckBinaries([]Requirement{{Name: "mkvextract", Command: "mkvextract"}})
	if !results[0].Available || results[0].Path != filepath.Join(dir, "mkvextract") {
		t.Fatalf("expected PATH lookup to succeed, got %#v", results[0])
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []Status{
		{Requirement: Requirement{Name: "a"}, Available: true},
		{Requirement: Requirement{Name: "b"}},
		{Requirement: Requirement{Name: "c", Optional: true}},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0].Name != "b" {
		t.Fatalf("unexpected missing set: %#v", missing)
	}
}

func TestCheckBinariesToleratesSilentVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mkvextract")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 3\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	results := CheckBinaries([]Requirement{{Name: "mkvextract", Command: path}})
	if !results[0].Available || results[0].Version != "" {
		t.Fatalf("expected available binary without version, got %#v", results[0])
	}
}
