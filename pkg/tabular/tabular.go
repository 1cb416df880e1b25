// Package tabular turns the flat, comma-delimited sheet export of the tablet
// app back into the canonical nested record format.
//
// A tabular file carries no explicit nesting. Structure is recovered from
// keyword rows (version, sessionName, sheetName and the sheet properties) and
// from a "team,id,<categories...>" heading row that opens the player-data
// section of the current sheet. The parser is a small state machine: every
// non-blank row is classified, and the (state, class) pair selects the
// transition that handles it.
package tabular

import (
	"encoding/csv"
	"io"

	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/errors"
	"github.com/agentstation/tryouts/pkg/records"
)

// Option configures a parse.
type Option func(*parser)

// WithSink sends diagnostics to sink.
func WithSink(sink diag.Sink) Option {
	return func(p *parser) {
		p.sink = diag.OrDiscard(sink)
	}
}

// Parse builds a FileRecord from the rows of one tabular file. Rows are
// numbered from 1 in diagnostics. A structural error rejects the whole file
// and no partial record is returned.
func Parse(origin string, rows [][]string, opts ...Option) (*records.FileRecord, error) {
	p := newParser(origin, opts...)
	for i, cells := range rows {
		if err := p.step(i+1, cells); err != nil {
			return nil, err
		}
	}
	return p.finish(), nil
}

// ParseCSV reads comma-delimited rows from r and parses them. Rows may have
// any number of fields.
func ParseCSV(origin string, r io.Reader, opts ...Option) (*records.FileRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	p := newParser(origin, opts...)
	for n := 1; ; n++ {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", origin, err)
		}
		if err := p.step(n, cells); err != nil {
			return nil, err
		}
	}
	return p.finish(), nil
}
