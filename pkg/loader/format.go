package loader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the raw encoding of an input file, as far as its name tells.
type Format string

// Supported formats. FormatUnknown lets the loader try every decoder.
const (
	FormatUnknown Format = ""
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
)

// String returns the format name, "unknown" for FormatUnknown.
func (f Format) String() string {
	if f == FormatUnknown {
		return "unknown"
	}
	return string(f)
}

// DetectFormat guesses the format from a file name's extension.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv", ".txt":
		return FormatCSV
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatUnknown
	}
}

// ParseFormat parses a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "unknown":
		return FormatUnknown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv", "tabular":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return FormatUnknown, fmt.Errorf("unsupported input format %q", s)
	}
}
