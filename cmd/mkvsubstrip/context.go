package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mkvsubstrip/internal/archive"
	"mkvsubstrip/internal/config"
	"mkvsubstrip/internal/logging"
	"mkvsubstrip/internal/mkvtoolnix"
	"mkvsubstrip/internal/pipeline"
	"mkvsubstrip/internal/remux"
	"mkvsubstrip/internal/subtitles"
)

type commandContext struct {
	configFlag *string
	dirFlag    *string
	dryRun     *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, dirFlag *string, dryRun *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		dirFlag:    dirFlag,
		dryRun:     dryRun,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) dir() string {
	if c.dirFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.dirFlag)
}

func (c *commandContext) isDryRun() bool {
	return c.dryRun != nil && *c.dryRun
}

func newToolchain(cfg *config.Config, logger *slog.Logger) *mkvtoolnix.Toolchain {
	return mkvtoolnix.New(cfg.Tools.Mkvmerge, cfg.Tools.Mkvextract, cfg.ToolTimeout(), logger)
}

func newDriver(cfg *config.Config, logger *slog.Logger, dryRun bool) *pipeline.Driver {
	tools := newToolchain(cfg, logger)
	opts := pipeline.OptionsFromConfig(cfg)
	opts.DryRun = dryRun
	return pipeline.NewDriver(pipeline.Components{
		Prober:    tools,
		Extractor: subtitles.NewExtractor(tools, logger),
		Remuxer:   remux.New(tools, cfg.Processing.LockDir, logger),
		Archiver:  archive.New(logger),
		Registry:  subtitles.DefaultRegistry(),
	}, opts, logger)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
