package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mkvsubstrip/internal/config"
	"mkvsubstrip/internal/preflight"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the mkvsubstrip configuration",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		targetPath string
		project    bool
		overwrite  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented sample configuration",
		Long: "Write a commented sample configuration. By default it goes to the user config\n" +
			"location; --project writes mkvsubstrip.toml into the current directory, which\n" +
			"is picked up when the download client starts the hook from there.",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(strings.TrimSpace(targetPath), project)
			if err != nil {
				return err
			}
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("check config path: %w", err)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set tools.mkvmerge and tools.mkvextract if MKVToolNix is not on PATH.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "Write mkvsubstrip.toml into the current directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	cmd.MarkFlagsMutuallyExclusive("path", "project")
	return cmd
}

func initTarget(path string, project bool) (string, error) {
	switch {
	case project:
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		return config.ProjectConfigPath(cwd), nil
	case path != "":
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return "", fmt.Errorf("resolve config path: %w", err)
		}
		return expanded, nil
	default:
		target, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return target, nil
	}
}

// newConfigValidateCommand loads the file itself so a broken config is
// reported as a validation result rather than a startup error.
func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate the configuration and show the effective settings",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(strings.TrimSpace(*ctx.configFlag))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			source := path
			if !exists {
				source = path + " (not found, defaults used)"
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusInfo, source, colorize))
			fmt.Fprintln(out, renderSettingsTable(cfg))
			for _, line := range dependencyLines(preflight.CheckSystemDeps(cfg), colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Result", statusOK, "Configuration valid", colorize))
			return nil
		},
	}
}

func renderSettingsTable(cfg *config.Config) string {
	tw := newTable(settingColumns)
	for _, row := range [][2]string{
		{"tools.mkvmerge", cfg.Tools.Mkvmerge},
		{"tools.mkvextract", cfg.Tools.Mkvextract},
		{"tools.timeout_seconds", cfg.ToolTimeout().String()},
		{"processing.extension", cfg.Processing.Extension},
		{"processing.workers", strconv.Itoa(cfg.Processing.Workers)},
		{"processing.fail_fast", yesNo(cfg.Processing.FailFast)},
		{"processing.require_complete_extraction", yesNo(cfg.Processing.RequireCompleteExtraction)},
		{"processing.archive", yesNo(cfg.Processing.Archive)},
		{"processing.lock_dir", cfg.Processing.LockDir},
		{"logging.format", cfg.Logging.Format},
		{"logging.level", cfg.Logging.Level},
		{"logging.dir", dashIfEmpty(cfg.Logging.Dir)},
	} {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	return tw.Render()
}
