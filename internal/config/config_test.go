package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"mkvsubstrip/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MKVSUBSTRIP_LOG_LEVEL", "")
	t.Setenv("MKVSUBSTRIP_MKVTOOLNIX_DIR", "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".config", "mkvsubstrip", "config.toml"); resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}
	if cfg.Tools.Mkvmerge != "mkvmerge" || cfg.Tools.Mkvextract != "mkvextract" {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
	if cfg.ToolTimeout() != 30*time.Minute {
		t.Fatalf("unexpected tool timeout: %v", cfg.ToolTimeout())
	}
	if cfg.Processing.Extension != ".mkv" {
		t.Fatalf("unexpected extension: %q", cfg.Processing.Extension)
	}
	if cfg.Processing.Workers != 1 {
		t.Fatalf("unexpected workers: %d", cfg.Processing.Workers)
	}
	if cfg.Processing.FailFast {
		t.Fatal("expected fail_fast disabled by default")
	}
	if !cfg.Processing.RequireCompleteExtraction {
		t.Fatal("expected complete extraction to be required by default")
	}
	if !cfg.Processing.Archive {
		t.Fatal("expected archiving enabled by default")
	}
	if !filepath.IsAbs(cfg.Processing.LockDir) {
		t.Fatalf("expected absolute lock dir, got %q", cfg.Processing.LockDir)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" || cfg.Logging.Dir != "" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "custom.toml")

	type payload struct {
		Tools struct {
			Mkvmerge       string `toml:"mkvmerge"`
			TimeoutSeconds int    `toml:"timeout_seconds"`
		} `toml:"tools"`
		Processing struct {
			Extension                 string `toml:"extension"`
			Workers                   int    `toml:"workers"`
			FailFast                  bool   `toml:"fail_fast"`
			RequireCompleteExtraction bool   `toml:"require_complete_extraction"`
		} `toml:"processing"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
			Dir    string `toml:"dir"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Tools.Mkvmerge = "/opt/mkvtoolnix/mkvmerge"
	custom.Tools.TimeoutSeconds = 60
	custom.Processing.Extension = "MKV"
	custom.Processing.Workers = 4
	custom.Processing.FailFast = true
	custom.Processing.RequireCompleteExtraction = false
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "Debug"
	custom.Logging.Dir = "~/logs"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom path to be used, got %q (exists=%v)", resolved, exists)
	}
	if cfg.Tools.Mkvmerge != "/opt/mkvtoolnix/mkvmerge" {
		t.Fatalf("unexpected mkvmerge: %q", cfg.Tools.Mkvmerge)
	}
	if cfg.Tools.Mkvextract != "mkvextract" {
		t.Fatalf("expected mkvextract default to survive, got %q", cfg.Tools.Mkvextract)
	}
	if cfg.ToolTimeout() != time.Minute {
		t.Fatalf("unexpected timeout: %v", cfg.ToolTimeout())
	}
	if cfg.Processing.Extension != ".mkv" {
		t.Fatalf("expected normalized extension, got %q", cfg.Processing.Extension)
	}
	if cfg.Processing.Workers != 4 || !cfg.Processing.FailFast || cfg.Processing.RequireCompleteExtraction {
		t.Fatalf("unexpected processing section: %+v", cfg.Processing)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging section: %+v", cfg.Logging)
	}
	if !strings.HasSuffix(cfg.Logging.Dir, string(filepath.Separator)+"logs") || !filepath.IsAbs(cfg.Logging.Dir) {
		t.Fatalf("expected expanded log dir, got %q", cfg.Logging.Dir)
	}
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	isolate(t)
	if _, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "typo.toml")
	if err := os.WriteFile(configPath, []byte("[processing]\nworkerz = 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadPicksUpProjectConfig(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("mkvsubstrip.toml", []byte("[processing]\narchive = false\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	cfg, _, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || cfg.Processing.Archive {
		t.Fatalf("expected project config to disable archiving (exists=%v archive=%v)", exists, cfg.Processing.Archive)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	toolDir := t.TempDir()
	t.Setenv("MKVSUBSTRIP_MKVTOOLNIX_DIR", toolDir)
	t.Setenv("MKVSUBSTRIP_LOG_LEVEL", "WARN")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Tools.Mkvmerge != filepath.Join(toolDir, "mkvmerge") {
		t.Fatalf("unexpected mkvmerge: %q", cfg.Tools.Mkvmerge)
	}
	if cfg.Tools.Mkvextract != filepath.Join(toolDir, "mkvextract") {
		t.Fatalf("unexpected mkvextract: %q", cfg.Tools.Mkvextract)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"workers too high", func(c *config.Config) { c.Processing.Workers = 99 }},
		{"workers negative", func(c *config.Config) { c.Processing.Workers = -1 }},
		{"negative timeout", func(c *config.Config) { c.Tools.TimeoutSeconds = -5 }},
		{"glob extension", func(c *config.Config) { c.Processing.Extension = ".m*v" }},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"log level", func(c *config.Config) { c.Logging.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	isolate(t)
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	defaults := config.Default()
	if cfg.Processing.Archive != defaults.Processing.Archive || cfg.Tools.TimeoutSeconds != defaults.Tools.TimeoutSeconds {
		t.Fatalf("sample config diverges from defaults: %+v", cfg)
	}
}
