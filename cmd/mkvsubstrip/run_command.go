package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mkvsubstrip/internal/deps"
	"mkvsubstrip/internal/jobctx"
	"mkvsubstrip/internal/logging"
	"mkvsubstrip/internal/preflight"
	"mkvsubstrip/internal/services"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run [directory] [job-name]",
		Short: "Process every container in a job directory",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd, ctx, args)
		},
	}
}

func runHook(cmd *cobra.Command, ctx *commandContext, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	job, err := jobctx.Resolve(jobctx.FromEnv(nil), ctx.dir(), args)
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	logger.Info(fmt.Sprintf("Running script: %s for the directory: %s", job.ID, job.Dir),
		logging.String(logging.FieldEventType, "job_start"),
		logging.String(logging.FieldRunID, runID),
		logging.String("job", job.ID),
		logging.String("dir", job.Dir),
	)

	if missing := deps.MissingRequired(preflight.CheckSystemDeps(cfg)); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, m := range missing {
			names = append(names, fmt.Sprintf("%s (%s)", m.Name, m.Detail))
		}
		return services.Wrap(services.ErrConfiguration, "", "check dependencies", strings.Join(names, ", "), nil)
	}
	if failed := preflight.Failed(preflight.RunAll(cfg, job.Dir)); len(failed) > 0 && !ctx.isDryRun() {
		details := make([]string, 0, len(failed))
		for _, f := range failed {
			details = append(details, f.Name+": "+f.Detail)
		}
		return services.Wrap(services.ErrConfiguration, "", "preflight", strings.Join(details, "; "), nil)
	}

	driver := newDriver(cfg, logger, ctx.isDryRun())
	summary, runErr := driver.Run(cmd.Context(), runID, job.Dir)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderSummary(summary, shouldColorize(out)))

	if runErr != nil {
		return runErr
	}
	if err := summary.Err(); err != nil {
		return err
	}
	return nil
}
