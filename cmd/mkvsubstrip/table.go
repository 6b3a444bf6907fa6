package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mkvsubstrip/internal/mkvtoolnix"
	"mkvsubstrip/internal/pipeline"
	"mkvsubstrip/internal/subtitles"
)

type column struct {
	title    string
	right    bool
	maxWidth int
}

var trackColumns = []column{
	{title: "ID", right: true},
	{title: "Type"},
	{title: "Codec"},
	{title: "Language"},
	{title: "Name", maxWidth: 40},
	{title: "Action"},
}

var outcomeColumns = []column{
	{title: "File", maxWidth: 60},
	{title: "State"},
	{title: "Subtitles", right: true},
	{title: "Extracted", right: true},
	{title: "Remuxed"},
	{title: "Archive"},
	{title: "Reason", maxWidth: 60},
}

var settingColumns = []column{
	{title: "Setting"},
	{title: "Value", maxWidth: 80},
}

func newTable(columns []column) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.title
		align := text.AlignLeft
		if col.right {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    col.maxWidth,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)
	return tw
}

// renderTrackTable lists every track of a container with what a run would
// do to it: keep it in the container or extract it to the named file.
func renderTrackTable(tracks []mkvtoolnix.Track, jobs []subtitles.Job) string {
	outputs := make(map[int]string, len(jobs))
	for _, job := range jobs {
		outputs[job.Track.ID] = filepath.Base(job.OutputPath)
	}
	tw := newTable(trackColumns)
	for _, track := range tracks {
		action := "keep"
		if name, ok := outputs[track.ID]; ok {
			action = "extract → " + name
		}
		tw.AppendRow(table.Row{
			strconv.Itoa(track.ID),
			dashIfEmpty(track.Type),
			dashIfEmpty(track.Codec()),
			languageLabel(track.Lang()),
			dashIfEmpty(track.TrackName()),
			action,
		})
	}
	return tw.Render()
}

// renderOutcomeTable shows one row per container with its final state
// coloured by result.
func renderOutcomeTable(outcomes []pipeline.FileOutcome, colorize bool) string {
	tw := newTable(outcomeColumns)
	for _, o := range outcomes {
		archive := "-"
		if o.ArchivePath != "" {
			archive = filepath.Base(o.ArchivePath)
		}
		extracted := "-"
		if len(o.Jobs) > 0 {
			extracted = fmt.Sprintf("%d/%d", o.Extracted(), len(o.Jobs))
		}
		tw.AppendRow(table.Row{
			filepath.Base(o.Path),
			paint(stateKind(o.State), o.State.String(), colorize),
			len(o.Planned),
			extracted,
			yesNo(o.Remuxed),
			archive,
			dashIfEmpty(o.Reason),
		})
	}
	return tw.Render()
}
