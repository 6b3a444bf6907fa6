package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeTools(); err != nil {
		return err
	}
	if err := c.normalizeProcessing(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeTools() error {
	c.Tools.Mkvmerge = strings.TrimSpace(c.Tools.Mkvmerge)
	c.Tools.Mkvextract = strings.TrimSpace(c.Tools.Mkvextract)
	if c.Tools.Mkvmerge == "" {
		c.Tools.Mkvmerge = defaultMkvmerge
	}
	if c.Tools.Mkvextract == "" {
		c.Tools.Mkvextract = defaultMkvextract
	}
	if value, ok := os.LookupEnv(envMkvToolNixDir); ok && strings.TrimSpace(value) != "" {
		dir, err := expandPath(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: %w", envMkvToolNixDir, err)
		}
		// Only bare names are redirected; explicit paths in the file win.
		if !strings.ContainsAny(c.Tools.Mkvmerge, `/\`) {
			c.Tools.Mkvmerge = filepath.Join(dir, c.Tools.Mkvmerge)
		}
		if !strings.ContainsAny(c.Tools.Mkvextract, `/\`) {
			c.Tools.Mkvextract = filepath.Join(dir, c.Tools.Mkvextract)
		}
	}
	if c.Tools.TimeoutSeconds == 0 {
		c.Tools.TimeoutSeconds = defaultToolTimeout
	}
	return nil
}

func (c *Config) normalizeProcessing() error {
	ext := strings.ToLower(strings.TrimSpace(c.Processing.Extension))
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Processing.Extension = ext
	if c.Processing.Workers == 0 {
		c.Processing.Workers = defaultWorkers
	}
	if strings.TrimSpace(c.Processing.LockDir) == "" {
		c.Processing.LockDir = defaultLockDir()
	}
	var err error
	if c.Processing.LockDir, err = expandPath(strings.TrimSpace(c.Processing.LockDir)); err != nil {
		return fmt.Errorf("processing.lock_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = ""
		return nil
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
