package output

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/tryouts/internal/cmd/table"
	"github.com/agentstation/tryouts/pkg/report"
)

// MarkdownFormatter writes a report as a markdown document with one section
// per bucket.
type MarkdownFormatter struct{}

// Format writes a *report.Report or a table.Data.
func (f *MarkdownFormatter) Format(w io.Writer, data any) error {
	m := md.NewMarkdown(w)

	switch v := data.(type) {
	case *report.Report:
		m.H1("Tryouts Report")
		if v.Empty() {
			m.PlainText("No usable data.")
		}
		for _, t := range v.Tables {
			tableSection(m, table.ReportTableToData(t), 2)
			if len(t.Comments) > 0 {
				m.H3("Comments")
				m.BulletList(escapeCells(t.Comments)...)
			}
		}
		if v.Stats != nil {
			tableSection(m, table.StatsToTableData(*v.Stats), 2)
		}
	case table.Data:
		tableSection(m, v, 1)
	default:
		return fmt.Errorf("markdown format needs a report or table, got %T", data)
	}

	return m.Build()
}

func tableSection(m *md.Markdown, data table.Data, level int) {
	if data.Title != "" {
		if level == 1 {
			m.H1(data.Title)
		} else {
			m.H2(data.Title)
		}
	}
	rows := make([][]string, 0, len(data.Rows))
	for _, r := range data.Rows {
		rows = append(rows, escapeCells(r))
	}
	m.Table(md.TableSet{
		Header: escapeCells(data.Headers),
		Rows:   rows,
	})
	m.LF()
}

// escapeCells keeps pipes in comments from splitting table cells.
func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}
