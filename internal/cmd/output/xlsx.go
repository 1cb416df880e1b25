package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/tryouts/internal/cmd/table"
	"github.com/agentstation/tryouts/pkg/report"
)

// maxSheetName is the longest worksheet name Excel accepts.
const maxSheetName = 31

// XLSXFormatter writes a report as a workbook with one worksheet per
// bucket, laid out like the text format.
type XLSXFormatter struct{}

// Format writes a *report.Report.
func (f *XLSXFormatter) Format(w io.Writer, data any) error {
	r, ok := data.(*report.Report)
	if !ok {
		return fmt.Errorf("xlsx format needs a report, got %T", data)
	}

	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	headerStyle, err := wb.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	used := map[string]bool{}
	first := true
	for _, t := range r.Tables {
		name := sheetName(t.Signature, used)
		if first {
			if err := wb.SetSheetName("Sheet1", name); err != nil {
				return err
			}
			first = false
		} else if _, err := wb.NewSheet(name); err != nil {
			return err
		}
		if err := writeSheet(wb, name, t, headerStyle); err != nil {
			return err
		}
	}

	if r.Stats != nil {
		name := sheetName("Summary", used)
		if first {
			if err := wb.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := wb.NewSheet(name); err != nil {
			return err
		}
		data := table.StatsToTableData(*r.Stats)
		if err := setRow(wb, name, 1, toCells(data.Headers)); err != nil {
			return err
		}
		for i, row := range data.Rows {
			if err := setRow(wb, name, i+2, toCells(row)); err != nil {
				return err
			}
		}
	}

	return wb.Write(w)
}

func writeSheet(wb *excelize.File, name string, t report.Table, headerStyle int) error {
	first := []any{"id"}
	second := []any{""}
	for _, c := range t.Columns {
		first = append(first, c.Station)
		second = append(second, c.Heading)
	}
	first = append(first, "Comments")
	second = append(second, "")

	if err := setRow(wb, name, 1, first); err != nil {
		return err
	}
	if err := setRow(wb, name, 2, second); err != nil {
		return err
	}
	if err := wb.SetRowStyle(name, 1, 2, headerStyle); err != nil {
		return err
	}

	n := 3
	for _, r := range t.Rows {
		cells := []any{r.Label}
		cells = append(cells, toCells(r.Cells)...)
		cells = append(cells, r.Comments)
		if err := setRow(wb, name, n, cells); err != nil {
			return err
		}
		n++
	}

	if len(t.Comments) > 0 {
		n++
		if err := setRow(wb, name, n, []any{"Comments:"}); err != nil {
			return err
		}
		for _, c := range t.Comments {
			n++
			if err := setRow(wb, name, n, []any{c}); err != nil {
				return err
			}
		}
	}
	return nil
}

func setRow(wb *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return wb.SetSheetRow(sheet, cell, &cells)
}

// toCells stores integer strings as numbers so spreadsheets can sum them.
func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		if n, err := strconv.Atoi(v); err == nil {
			out[i] = n
		} else {
			out[i] = v
		}
	}
	return out
}

// sheetName returns a unique worksheet name for title.
func sheetName(title string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, title)
	if name == "" {
		name = "Sheet"
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	base := name
	for i := 2; used[name]; i++ {
		suffix := "-" + strconv.Itoa(i)
		if len(base)+len(suffix) > maxSheetName {
			name = base[:maxSheetName-len(suffix)] + suffix
		} else {
			name = base + suffix
		}
	}
	used[name] = true
	return name
}
