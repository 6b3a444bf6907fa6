package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var dirFlag string
	var dryRun bool

	ctx := newCommandContext(&configFlag, &dirFlag, &dryRun)

	rootCmd := &cobra.Command{
		Use:           "mkvsubstrip [directory] [job-name]",
		Short:         "Extract, archive, and strip subtitles from finished MKV downloads",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Download clients append extra positional arguments (category,
		// status codes such as -1) that must not be parsed as flags.
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd, ctx, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Job directory to process (overrides SAB_COMPLETE_DIR)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Probe and plan only; do not extract, remux, or archive")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
