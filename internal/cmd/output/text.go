package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/tryouts/pkg/report"
)

// TextFormatter writes the printable layout: every item ends in a comma and
// items are separated by a space, so the output loads as CSV.
//
//	8GirlsNight1,
//	id, Station5, Station5, Station5, Comments (see tryouts.log for details),
//	, A, B, Total, ,
//	g34, 4, 4, 8, ,
//	Comments:
//	"  File a.csv: Session 0601: Sheet 8GirlsNight1Station5: Has comment - Thanks",
//	,
type TextFormatter struct {
	LogFile string
}

// Format writes a *report.Report.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	r, ok := data.(*report.Report)
	if !ok {
		return fmt.Errorf("text format needs a report, got %T", data)
	}

	bw := bufio.NewWriter(w)
	for _, t := range r.Tables {
		f.writeTable(bw, t)
	}
	return bw.Flush()
}

func (f *TextFormatter) writeTable(w *bufio.Writer, t report.Table) {
	line(w, t.Signature+",")

	first := []string{"id,"}
	second := []string{","}
	for _, c := range t.Columns {
		first = append(first, c.Station+",")
		second = append(second, c.Heading+",")
	}
	first = append(first, "Comments (see "+f.LogFile+" for details),")
	second = append(second, ",")
	line(w, first...)
	line(w, second...)

	for _, r := range t.Rows {
		items := make([]string, 0, len(r.Cells)+2)
		items = append(items, r.Label+",")
		for _, c := range r.Cells {
			items = append(items, c+",")
		}
		items = append(items, r.Comments+",")
		line(w, items...)
	}

	if len(t.Comments) > 0 {
		line(w, "Comments:")
		for _, c := range t.Comments {
			line(w, `"  `+c+`",`)
		}
	}
	line(w, ",")
}

// line writes items separated by single spaces. Write errors are reported
// by the final Flush.
func line(w *bufio.Writer, items ...string) {
	_, _ = w.WriteString(strings.Join(items, " "))
	_ = w.WriteByte('\n')
}
