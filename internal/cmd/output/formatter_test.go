package output

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/tryouts/internal/cmd/table"
	"github.com/agentstation/tryouts/pkg/compile"
	"github.com/agentstation/tryouts/pkg/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		Tables: []report.Table{{
			Signature:  "8GirlsNight1",
			Stations:   []string{"S5"},
			Categories: []string{"A", "B"},
			ShowTotal:  true,
			Columns: []report.Column{
				{Station: "S5", Heading: "A"},
				{Station: "S5", Heading: "B"},
				{Station: "S5", Heading: report.TotalHeading},
			},
			Rows: []report.Row{
				{Label: "g34", Team: "Girls", ID: "34", Cells: []string{"4", "4", "8"}, Comments: "Decimal rating was rounded. "},
				{Label: "g9", Team: "Girls", ID: "9", Cells: []string{"", "", ""}},
			},
			Comments: []string{"Program: Renamed S5 to S5-1"},
		}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", "", false},
		{"text", FormatText, false},
		{"CSV", FormatText, false},
		{"table", FormatTable, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"xlsx", FormatXLSX, false},
		{"wide", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("JSON"))
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatTable))
	assert.IsType(t, &MarkdownFormatter{}, NewFormatter(FormatMarkdown))
	assert.IsType(t, &XLSXFormatter{}, NewFormatter(FormatXLSX))

	text, ok := NewFormatter(FormatText, WithLogFile("run.log")).(*TextFormatter)
	require.True(t, ok)
	assert.Equal(t, "run.log", text.LogFile)

	def, ok := NewFormatter("").(*TextFormatter)
	require.True(t, ok)
	assert.Equal(t, "tryouts.log", def.LogFile)
}

func TestFormatterFunc(t *testing.T) {
	var buf bytes.Buffer
	f := FormatterFunc(func(w io.Writer, data any) error {
		_, err := w.Write([]byte("ok"))
		return err
	})
	require.NoError(t, f.Format(&buf, nil))
	assert.Equal(t, "ok", buf.String())
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{LogFile: "tryouts.log"}
	require.NoError(t, f.Format(&buf, sampleReport()))

	want := strings.Join([]string{
		"8GirlsNight1,",
		"id, S5, S5, S5, Comments (see tryouts.log for details),",
		", A, B, Total, ,",
		"g34, 4, 4, 8, Decimal rating was rounded. ,",
		"g9, , , , ,",
		"Comments:",
		`"  Program: Renamed S5 to S5-1",`,
		",",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestTextFormatterWithoutComments(t *testing.T) {
	r := sampleReport()
	r.Tables[0].Comments = nil

	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{LogFile: "x.log"}).Format(&buf, r))
	assert.NotContains(t, buf.String(), "Comments:")
	assert.True(t, strings.HasSuffix(buf.String(), "g9, , , , ,\n,\n"))
}

func TestTextFormatterRejectsOtherData(t *testing.T) {
	err := (&TextFormatter{}).Format(&bytes.Buffer{}, table.Data{})
	assert.Error(t, err)
}

func TestJSONAndYAML(t *testing.T) {
	r := sampleReport()

	var jbuf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&jbuf, r))
	var fromJSON report.Report
	require.NoError(t, json.Unmarshal(jbuf.Bytes(), &fromJSON))
	assert.Equal(t, "8GirlsNight1", fromJSON.Tables[0].Signature)

	var ybuf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&ybuf, r))
	assert.Contains(t, ybuf.String(), "signature: 8GirlsNight1")
	var fromYAML report.Report
	require.NoError(t, yaml.Unmarshal(ybuf.Bytes(), &fromYAML))
	assert.Equal(t, []string{"4", "4", "8"}, fromYAML.Tables[0].Rows[0].Cells)
}

func TestTableFormatter(t *testing.T) {
	r := sampleReport()
	r.Stats = &compile.Stats{FilesAccepted: 2}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, r))
	out := buf.String()
	assert.Contains(t, out, "8GirlsNight1")
	assert.Contains(t, out, "g34")
	assert.Contains(t, out, "Program: Renamed S5 to S5-1")
	assert.Contains(t, out, "Files Accepted")
}

func TestTableFormatterEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, &report.Report{}))
	assert.Equal(t, "No usable data.\n", buf.String())
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, buf.String())
}

func TestMarkdownFormatter(t *testing.T) {
	r := sampleReport()
	r.Tables[0].Rows[0].Comments = "a|b"

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatMarkdown).Format(&buf, r))
	out := buf.String()
	assert.Contains(t, out, "# Tryouts Report")
	assert.Contains(t, out, "## 8GirlsNight1")
	assert.Contains(t, out, "### Comments")
	assert.Contains(t, out, `a\|b`)
	assert.Contains(t, out, "Program: Renamed S5 to S5-1")
}

func TestMarkdownFormatterEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatMarkdown).Format(&buf, &report.Report{}))
	assert.Contains(t, buf.String(), "No usable data.")
}

func TestXLSXFormatter(t *testing.T) {
	r := sampleReport()
	r.Stats = &compile.Stats{SheetsCompiled: 3}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatXLSX).Format(&buf, r))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	assert.Equal(t, []string{"8GirlsNight1", "Summary"}, wb.GetSheetList())

	rows, err := wb.GetRows("8GirlsNight1")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)
	assert.Equal(t, []string{"id", "S5", "S5", "S5", "Comments"}, rows[0])
	assert.Equal(t, []string{"", "A", "B", "Total"}, rows[1])
	assert.Equal(t, "g34", rows[2][0])
	assert.Equal(t, "8", rows[2][3])
	assert.Equal(t, "Comments:", rows[len(rows)-2][0])

	summary, err := wb.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"Counter", "Value"}, summary[0])
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, "a_b", sheetName("a/b", used))
	assert.Equal(t, "a_b-2", sheetName("a:b", used))

	long := strings.Repeat("x", 40)
	first := sheetName(long, used)
	second := sheetName(long, used)
	assert.Len(t, first, maxSheetName)
	assert.Len(t, second, maxSheetName)
	assert.NotEqual(t, first, second)
}
