package jobctx

import (
	"errors"
	"path/filepath"
	"testing"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestFromEnvTrimsValues(t *testing.T) {
	env := FromEnv(envMap(map[string]string{
		EnvCompleteDir: " /downloads/complete/Movie ",
		EnvScript:      "mkvsubstrip",
	}))
	if env.CompleteDir != "/downloads/complete/Movie" || env.Script != "mkvsubstrip" || env.FinalName != "" {
		t.Fatalf("unexpected env: %+v", env)
	}
}

func TestFromEnvUsesProcessEnvironmentByDefault(t *testing.T) {
	t.Setenv(EnvCompleteDir, "/from/process")
	if got := FromEnv(nil).CompleteDir; got != "/from/process" {
		t.Fatalf("CompleteDir = %q", got)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		env     Env
		flag    string
		args    []string
		wantDir string
		wantID  string
	}{
		{
			name:    "flag wins",
			env:     Env{CompleteDir: "/env", Script: "hook"},
			flag:    "/flag",
			args:    []string{"/arg"},
			wantDir: "/flag",
			wantID:  "hook",
		},
		{
			name:    "environment directory",
			env:     Env{CompleteDir: "/env/Show", FinalName: "Show.S01E01"},
			args:    []string{"/arg"},
			wantDir: "/env/Show",
			wantID:  "Show.S01E01",
		},
		{
			name:    "positional arguments",
			args:    []string{"/downloads/Film", "Film.2020"},
			wantDir: "/downloads/Film",
			wantID:  "Film.2020",
		},
		{
			name:    "id falls back to directory name",
			args:    []string{"/downloads/Film"},
			wantDir: "/downloads/Film",
			wantID:  "Film",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := Resolve(tt.env, tt.flag, tt.args)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if job.Dir != tt.wantDir || job.ID != tt.wantID {
				t.Fatalf("Resolve = %+v, want dir %q id %q", job, tt.wantDir, tt.wantID)
			}
		})
	}
}

func TestResolveMakesDirectoryAbsolute(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)
	job, err := Resolve(Env{}, "incoming", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if job.Dir != filepath.Join(base, "incoming") {
		t.Fatalf("Dir = %q", job.Dir)
	}
}

func TestResolveWithoutDirectory(t *testing.T) {
	if _, err := Resolve(Env{Script: "hook"}, "", nil); !errors.Is(err, ErrNoDirectory) {
		t.Fatalf("expected ErrNoDirectory, got %v", err)
	}
}
