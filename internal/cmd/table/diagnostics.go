package table

import (
	"github.com/agentstation/tryouts/pkg/diag"
)

// DiagnosticsToTableData lists events at or above min severity, in the
// order they were emitted.
func DiagnosticsToTableData(events []diag.Event, min diag.Severity) Data {
	var rows [][]string
	for _, e := range events {
		if e.Severity < min {
			continue
		}
		where := e.Location.String()
		if where == "" {
			where = "-"
		}
		rows = append(rows, []string{e.Severity.String(), string(e.Kind), where, e.Message})
	}

	return Data{
		Title:   "Diagnostics",
		Headers: []string{"Severity", "Kind", "Where", "Message"},
		Rows:    rows,
	}
}
