// Package status prints what the change detector sees for a site.
package status

import (
	"fmt"
	"time"

	"github.com/MrSnakeDoc/listsite/internal/detector"
	"github.com/MrSnakeDoc/listsite/internal/logger"
	"github.com/MrSnakeDoc/listsite/internal/pipeline"
	"github.com/olekukonko/tablewriter"
)

// Render writes one row per side and a line with the verdict.
func Render(log *logger.Logger, st pipeline.Status) error {
	table := log.CreateTable([]string{"Side", "Location", "Modified", "Hash"})

	rows := [][]string{
		{"source", st.Source, when(st.SourceModified), orDash(sourceHash(st))},
		{"destination", st.Destination, when(st.DestinationModified), orDash(st.DestinationHash)},
	}
	for _, r := range rows {
		if err := renderRow(table, r); err != nil {
			return fmt.Errorf("an error occurred while appending to the table: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("an error occurred while rendering the table: %w", err)
	}

	switch st.Decision {
	case detector.Skip:
		log.Success("%s is up to date", st.Destination)
	case detector.FetchAndCompare:
		log.Warn("%s may be stale, update will download and compare", st.Destination)
	default:
		log.Info("%s: %s", st.Destination, st.Decision)
	}
	return nil
}

func renderRow(table *tablewriter.Table, cells []string) error {
	return table.Append(cells)
}

// sourceHash prefers the canonical hash when the source was downloaded, else
// the hash the provider reports.
func sourceHash(st pipeline.Status) string {
	if st.SourceHash != "" {
		return st.SourceHash
	}
	return st.SourceProviderHash
}

func when(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
