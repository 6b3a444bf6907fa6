package config

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigPath        = "~/.config/mkvsubstrip/config.toml"
	projectConfigName        = "mkvsubstrip.toml"
	defaultMkvmerge          = "mkvmerge"
	defaultMkvextract        = "mkvextract"
	defaultToolTimeout       = 1800
	defaultExtension         = ".mkv"
	defaultWorkers           = 1
	maxWorkers               = 16
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	envLogLevel              = "MKVSUBSTRIP_LOG_LEVEL"
	envMkvToolNixDir         = "MKVSUBSTRIP_MKVTOOLNIX_DIR"
	defaultLockDirectoryName = "mkvsubstrip-locks"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			Mkvmerge:       defaultMkvmerge,
			Mkvextract:     defaultMkvextract,
			TimeoutSeconds: defaultToolTimeout,
		},
		Processing: Processing{
			Extension:                 defaultExtension,
			Workers:                   defaultWorkers,
			RequireCompleteExtraction: true,
			Archive:                   true,
			LockDir:                   defaultLockDir(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultLockDir() string {
	return filepath.Join(os.TempDir(), defaultLockDirectoryName)
}
