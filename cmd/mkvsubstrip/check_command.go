package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mkvsubstrip/internal/deps"
	"mkvsubstrip/internal/jobctx"
	"mkvsubstrip/internal/preflight"
)

var errCheckFailed = errors.New("one or more checks failed")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [directory]",
		Short: "Verify MKVToolNix binaries and, when given, a job directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			failed := false

			statuses := preflight.CheckSystemDeps(cfg)
			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range dependencyLines(statuses, colorize) {
				fmt.Fprintln(out, line)
			}
			if len(deps.MissingRequired(statuses)) > 0 {
				failed = true
			}

			job, err := jobctx.Resolve(jobctx.FromEnv(nil), ctx.dir(), args)
			if err == nil {
				fmt.Fprintln(out)
				for _, line := range renderSectionHeader("Job directory", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, result := range preflight.RunAll(cfg, job.Dir) {
					kind := statusOK
					if !result.Passed {
						kind = statusError
						failed = true
					}
					fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
				}
			}

			if failed {
				return errCheckFailed
			}
			return nil
		},
	}
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses))
	for _, s := range statuses {
		switch {
		case s.Available:
			ready := "Ready"
			if s.Version != "" {
				ready = s.Version
			}
			lines = append(lines, renderStatusLine(s.Name, statusOK, fmt.Sprintf("%s (%s)", ready, s.Path), colorize))
		case s.Optional:
			lines = append(lines, renderStatusLine(s.Name, statusWarn, s.Detail, colorize))
		default:
			lines = append(lines, renderStatusLine(s.Name, statusError, s.Detail, colorize))
		}
	}
	return lines
}
