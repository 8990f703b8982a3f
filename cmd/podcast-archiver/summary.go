package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/handiism/podcast-archiver/internal/download"
)

// renderSummary formats the end-of-run table.
func renderSummary(report *download.Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	newHeader := "New"
	if report.DryRun {
		newHeader = "Planned"
	}
	tw.AppendHeader(table.Row{"Podcast", newHeader, "Repeats", "Skipped", "Failed", "Status"})

	for _, p := range report.Podcasts {
		added := p.New
		if report.DryRun {
			added = len(p.Planned)
		}
		tw.AppendRow(table.Row{
			p.DisplayName(),
			strconv.Itoa(added),
			strconv.Itoa(p.Repeats),
			strconv.Itoa(p.Skipped),
			strconv.Itoa(p.Failed),
			p.Status(),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
