package main

import (
	"fmt"
	"strings"

	"mkvsubstrip/internal/pipeline"
)

func renderSummary(summary pipeline.Summary, colorize bool) string {
	var b strings.Builder
	if len(summary.Outcomes) > 0 {
		b.WriteString(renderOutcomeTable(summary.Outcomes, colorize))
		b.WriteString("\n")
	}

	kind := statusOK
	switch {
	case summary.Failed() > 0:
		kind = statusError
	case len(summary.Outcomes) == 0:
		kind = statusWarn
	}
	var message string
	if summary.DryRun {
		message = fmt.Sprintf("%d planned, %d failed, %d total (dry run)", summary.Planned(), summary.Failed(), len(summary.Outcomes))
	} else {
		message = fmt.Sprintf("%d succeeded, %d failed, %d total", summary.Succeeded(), summary.Failed(), len(summary.Outcomes))
	}
	b.WriteString(renderStatusLine("Summary", kind, message, colorize))
	return b.String()
}
