package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"mkvsubstrip/internal/pipeline"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

// Wide enough for "Lock directory:" so check output lines up.
const statusLabelWidth = 16

var statusColors = map[statusKind]text.Colors{
	statusInfo:  {text.FgBlue},
	statusOK:    {text.FgGreen},
	statusWarn:  {text.FgYellow},
	statusError: {text.FgRed},
}

var statusLabels = map[statusKind]string{
	statusInfo:  "INFO",
	statusOK:    "OK",
	statusWarn:  "WARN",
	statusError: "ERROR",
}

// stateKind maps a file's final state onto the status palette. A dry run
// stops at classified, which is informational rather than a warning.
func stateKind(state pipeline.State) statusKind {
	switch state {
	case pipeline.StateDone:
		return statusOK
	case pipeline.StateFailed:
		return statusError
	case pipeline.StateClassified:
		return statusInfo
	default:
		return statusWarn
	}
}

func paint(kind statusKind, s string, colorize bool) string {
	if !colorize {
		return s
	}
	return statusColors[kind].Sprint(s)
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	status := "[" + statusLabels[kind] + "]"
	if message != "" {
		status += " " + message
	}
	return paint(kind, fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", status), colorize)
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	return []string{
		paint(statusInfo, line, colorize),
		paint(statusInfo, strings.Repeat("-", len(line)), colorize),
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
