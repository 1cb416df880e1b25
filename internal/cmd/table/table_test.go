package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tryouts/pkg/compile"
	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/report"
)

func TestReportTableToData(t *testing.T) {
	data := ReportTableToData(report.Table{
		Signature: "8GirlsNight1",
		Columns: []report.Column{
			{Station: "S5", Heading: "A"},
			{Station: "S5", Heading: "Total"},
		},
		Rows: []report.Row{{Label: "g34", Cells: []string{"4", "4"}, Comments: "note"}},
	})

	assert.Equal(t, "8GirlsNight1", data.Title)
	assert.Equal(t, []string{"Player", "S5 A", "S5 Total", "Comments"}, data.Headers)
	assert.Equal(t, [][]string{{"g34", "4", "4", "note"}}, data.Rows)
	assert.Equal(t, []Align{AlignLeft, AlignRight, AlignRight, AlignLeft}, data.ColumnAlignment)
}

func TestStatsToTableData(t *testing.T) {
	data := StatsToTableData(compile.Stats{FilesAccepted: 2, StationsRenamed: 1})
	require.Len(t, data.Rows, 12)
	assert.Equal(t, []string{"Files Accepted", "2"}, data.Rows[0])
	assert.Contains(t, data.Rows, []string{"Stations Renamed", "1"})
}

func TestDiagnosticsToTableData(t *testing.T) {
	events := []diag.Event{
		{Severity: diag.Debug, Message: "hidden"},
		{Severity: diag.Warning, Kind: diag.KindCollision, Location: diag.Location{File: "a.csv"}, Message: "duplicate"},
		{Severity: diag.Error, Kind: diag.KindFormat, Message: "bad file"},
	}
	data := DiagnosticsToTableData(events, diag.Warning)
	assert.Equal(t, [][]string{
		{"warning", "collision", "File a.csv", "duplicate"},
		{"error", "format", "-", "bad file"},
	}, data.Rows)
}
