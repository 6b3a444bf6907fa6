package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvsubstrip/internal/config"
	"mkvsubstrip/internal/jobctx"
	"mkvsubstrip/internal/testsupport"
)

// mkvmergeStub answers --identify from a "<container>.json" sidecar and
// implements remux by writing a marker file.
const mkvmergeStub = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "mkvmerge v82.0 ('I'm The Widow') 64-bit"
  exit 0
fi
if [ "$1" = "--identify" ]; then
  cat "$4.json" || exit 2
  exit 0
fi
if [ "$1" = "--output" ]; then
  printf 'stripped' > "$2"
  exit 0
fi
echo "unexpected arguments: $*"
exit 2
`

const mkvextractStub = `#!/bin/sh
out="${3#*:}"
printf '1\n00:00:01,000 --> 00:00:02,000\nHello\n' > "$out"
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	jobDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(home)
	for _, key := range []string{jobctx.EnvCompleteDir, jobctx.EnvScript, jobctx.EnvFinalName} {
		t.Setenv(key, "")
	}

	cfg := testsupport.NewConfig(t)
	binDir := filepath.Join(testsupport.BaseDir(cfg), "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	cfg.Tools.Mkvmerge = writeScript(t, binDir, "mkvmerge", mkvmergeStub)
	cfg.Tools.Mkvextract = writeScript(t, binDir, "mkvextract", mkvextractStub)

	configPath := testsupport.WriteConfig(t, cfg, fmt.Sprintf(
		"[tools]\nmkvmerge = %q\nmkvextract = %q\n\n[processing]\nlock_dir = %q\n\n[logging]\nlevel = \"error\"\n",
		cfg.Tools.Mkvmerge,
		cfg.Tools.Mkvextract,
		cfg.Processing.LockDir,
	))

	jobDir := filepath.Join(home, "complete", "Movie.2020")
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		t.Fatalf("mkdir job dir: %v", err)
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath, jobDir: jobDir}
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

// addContainer writes a fake container plus the identification JSON the
// mkvmerge stub serves for it.
func (e *cliTestEnv) addContainer(t *testing.T, name, identifyJSON string) string {
	t.Helper()
	path := filepath.Join(e.jobDir, name)
	if err := os.WriteFile(path, []byte("matroska"), 0o644); err != nil {
		t.Fatalf("write container: %v", err)
	}
	if err := os.WriteFile(path+".json", []byte(identifyJSON), 0o644); err != nil {
		t.Fatalf("write identify json: %v", err)
	}
	return path
}

const movieIdentifyJSON = `{
  "tracks": [
    {"id": 0, "type": "video", "properties": {"codec_id": "V_MPEG4/ISO/AVC"}},
    {"id": 2, "type": "subtitles", "properties": {"codec_id": "S_TEXT/UTF8", "language": "eng", "track_name": "Full"}}
  ]
}`

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
