package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"mkvsubstrip/internal/logging"
	"mkvsubstrip/internal/pipeline"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Show a container's tracks and the subtitle files that would be written",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			driver := pipeline.NewDriver(pipeline.Components{
				Prober: newToolchain(cfg, logging.NewNop()),
			}, pipeline.OptionsFromConfig(cfg), logging.NewNop())
			plan, err := driver.Plan(cmd.Context(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTrackTable(plan.Tracks, plan.Jobs))
			fmt.Fprintf(out, "%d track(s), %d subtitle track(s) to extract\n", len(plan.Tracks), len(plan.Jobs))
			return nil
		},
	}
}

func dashIfEmpty(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

// languageLabel renders a track language tag with its English name when the
// tag is recognised, e.g. "ger (German)".
func languageLabel(code string) string {
	if code == "" {
		return "-"
	}
	tag, err := language.Parse(code)
	if err != nil || tag == language.Und {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return code + " (" + name + ")"
}
