// Package inputs turns command-line file arguments into loader inputs.
package inputs

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/errors"
	"github.com/agentstation/tryouts/pkg/loader"
)

// Expand resolves each argument as a glob pattern and returns the matches
// sorted and without duplicates. A pattern matching nothing is reported to
// sink and skipped.
func Expand(patterns []string, sink diag.Sink) ([]string, error) {
	sink = diag.OrDiscard(sink)

	var paths []string
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, errors.WrapIO("glob", p, err)
		}
		if len(matches) == 0 {
			sink.Emit(diag.Event{
				Severity: diag.Warning,
				Kind:     diag.KindFormat,
				Location: diag.Location{File: p},
				Message:  "No files match this argument",
			})
			continue
		}
		paths = append(paths, matches...)
	}

	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// Read loads every path into memory. When format is FormatUnknown it is
// detected from each file's extension. A path that cannot be read, such as a
// directory matched by a glob, keeps its error on the Input so the run can
// reject that one file and go on.
func Read(paths []string, format loader.Format) []loader.Input {
	out := make([]loader.Input, 0, len(paths))
	for _, p := range paths {
		f := format
		if f == loader.FormatUnknown {
			f = loader.DetectFormat(p)
		}
		in := loader.Input{Name: p, Format: f}
		content, err := os.ReadFile(p) //nolint:gosec // paths come from the operator's own arguments
		if err != nil {
			in.Err = errors.WrapIO("read", p, err)
		} else {
			in.Content = content
		}
		out = append(out, in)
	}
	return out
}
