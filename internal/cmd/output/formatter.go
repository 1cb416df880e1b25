// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/tryouts/internal/cmd/table"
	"github.com/agentstation/tryouts/pkg/constants"
	"github.com/agentstation/tryouts/pkg/report"
)

// Format types for output.
type Format string

const (
	// FormatText is the printable comma-terminated layout, ready to be
	// saved as a .csv and opened in a spreadsheet.
	FormatText Format = "text"
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatMarkdown represents a markdown document.
	FormatMarkdown Format = "markdown"
	// FormatXLSX represents an Excel workbook.
	FormatXLSX Format = "xlsx"
)

// Binary reports whether the format should not be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatXLSX
}

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// Option configures formatters built by NewFormatter.
type Option func(*options)

type options struct {
	logFile string
}

// WithLogFile names the log file the text layout points readers to.
func WithLogFile(name string) Option {
	return func(o *options) {
		o.logFile = name
	}
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format, opts ...Option) Formatter {
	o := options{logFile: constants.DefaultLogFile}
	for _, opt := range opts {
		opt(&o)
	}

	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return &TableFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	case FormatXLSX:
		return &XLSXFormatter{}
	default:
		return &TextFormatter{LogFile: o.logFile}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct{}

// Format outputs data in table format.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case table.Data:
		return f.formatTable(w, v)
	case *report.Report:
		return f.formatReport(w, v)
	default:
		// Fall back to JSON for non-table data
		jsonFormatter := &JSONFormatter{Indent: "  "}
		return jsonFormatter.Format(w, data)
	}
}

func (f *TableFormatter) formatReport(w io.Writer, r *report.Report) error {
	if r.Empty() {
		_, err := fmt.Fprintln(w, "No usable data.")
		return err
	}
	for i, t := range r.Tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := f.formatTable(w, table.ReportTableToData(t)); err != nil {
			return err
		}
		for _, c := range t.Comments {
			if _, err := fmt.Fprintf(w, "  %s\n", c); err != nil {
				return err
			}
		}
	}
	if r.Stats != nil {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return f.formatTable(w, table.StatsToTableData(*r.Stats))
	}
	return nil
}

func (f *TableFormatter) formatTable(w io.Writer, data table.Data) error {
	if data.Title != "" {
		if _, err := fmt.Fprintln(w, data.Title); err != nil {
			return err
		}
	}

	opts := []tablewriter.Option{}

	// Build config
	config := tablewriter.Config{}

	// Apply column alignment if specified
	if len(data.ColumnAlignment) > 0 {
		// Translate table.Align type to tablewriter's tw.Align type
		twAlign := make([]tw.Align, len(data.ColumnAlignment))
		for i, align := range data.ColumnAlignment {
			switch align {
			case table.AlignLeft:
				twAlign[i] = tw.AlignLeft
			case table.AlignCenter:
				twAlign[i] = tw.AlignCenter
			case table.AlignRight:
				twAlign[i] = tw.AlignRight
			default: // table.AlignDefault
				twAlign[i] = tw.Skip
			}
		}

		config.Header.Alignment = tw.CellAlignment{PerColumn: twAlign}
		config.Row.Alignment = tw.CellAlignment{PerColumn: twAlign}
	}

	opts = append(opts, tablewriter.WithConfig(config))
	tbl := tablewriter.NewTable(w, opts...)

	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		tbl.Header(headers...)
	}

	for _, row := range data.Rows {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := tbl.Append(rowData...); err != nil {
			return err
		}
	}

	return tbl.Render()
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	// Use explicit format if provided
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	// Boxed tables read better on a terminal
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}

	// The printable layout for pipes and redirects
	return FormatText
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatText, nil
	case FormatText, FormatTable, FormatJSON, FormatYAML, FormatMarkdown, FormatXLSX, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: text, table, json, yaml, markdown, xlsx", s)
	}
}
