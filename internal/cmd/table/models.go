// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"

	"github.com/agentstation/tryouts/internal/textutil"
	"github.com/agentstation/tryouts/pkg/compile"
	"github.com/agentstation/tryouts/pkg/report"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Title           string
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ReportTableToData converts one report table to table format. Data columns
// are headed "<station> <category>" and right aligned.
func ReportTableToData(t report.Table) Data {
	headers := make([]string, 0, len(t.Columns)+2)
	align := make([]Align, 0, len(t.Columns)+2)

	headers = append(headers, "Player")
	align = append(align, AlignLeft)
	for _, c := range t.Columns {
		headers = append(headers, c.Station+" "+c.Heading)
		align = append(align, AlignRight)
	}
	headers = append(headers, "Comments")
	align = append(align, AlignLeft)

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, 0, len(headers))
		row = append(row, r.Label)
		row = append(row, r.Cells...)
		row = append(row, r.Comments)
		rows = append(rows, row)
	}

	return Data{
		Title:           t.Signature,
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: align,
	}
}

// StatsToTableData converts run counters to a two column table.
func StatsToTableData(s compile.Stats) Data {
	counters := []struct {
		name  string
		value int
	}{
		{"files accepted", s.FilesAccepted},
		{"files rejected", s.FilesRejected},
		{"version resets", s.Resets},
		{"sheets compiled", s.SheetsCompiled},
		{"duplicate sheets", s.SheetsDuplicate},
		{"sheets skipped", s.SheetsSkipped},
		{"players recorded", s.PlayersRecorded},
		{"players skipped", s.PlayersSkipped},
		{"extra scores", s.ExtraScores},
		{"stations renamed", s.StationsRenamed},
		{"ratings rounded", s.RatingsRounded},
		{"ratings invalid", s.RatingsInvalid},
	}

	rows := make([][]string, 0, len(counters))
	for _, c := range counters {
		rows = append(rows, []string{textutil.Title(c.name), strconv.Itoa(c.value)})
	}
	return Data{
		Title:           "Summary",
		Headers:         []string{"Counter", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}
