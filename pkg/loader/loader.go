// Package loader turns the raw bytes of one input file into a canonical
// FileRecord. Canonical JSON or YAML documents are used as they are; anything
// else is handed to the tabular parser. A file that neither path accepts is
// rejected with a FormatError, which never stops the run.
package loader

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/goccy/go-yaml"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/errors"
	"github.com/agentstation/tryouts/pkg/records"
	"github.com/agentstation/tryouts/pkg/tabular"
)

// Input is one file handed to the loader.
// Err is set when the file could not be read; Load then rejects it
// without decoding.
type Input struct {
	Name    string
	Content []byte
	Format  Format
	Err     error
}

// Loader decodes input files. It is not safe for concurrent use.
type Loader struct {
	sink  diag.Sink
	cache *recordCache
}

// Option configures a Loader.
type Option func(*Loader)

// WithSink sends loader and parser diagnostics to sink.
func WithSink(sink diag.Sink) Option {
	return func(l *Loader) {
		l.sink = diag.OrDiscard(sink)
	}
}

// WithCache turns the content cache on or off. It is on by default.
func WithCache(enabled bool) Option {
	return func(l *Loader) {
		if enabled {
			l.cache = newRecordCache()
		} else {
			l.cache = nil
		}
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		sink:  diag.Discard,
		cache: newRecordCache(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// errNotCanonical means the content is not a canonical document at all, as
// opposed to a canonical document with bad contents.
var errNotCanonical = errors.New("not a canonical document")

// Load decodes one file.
func (l *Loader) Load(ctx context.Context, in Input) (*records.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	where := diag.Location{File: in.Name}
	l.emit(diag.Info, diag.KindProgress, where, "Processing...", nil)
	if in.Err != nil {
		l.emit(diag.Error, diag.KindFormat, where, "Could not be opened.", in.Err)
		return nil, in.Err
	}

	var key string
	if l.cache != nil {
		key = cacheKey(in.Format, in.Content)
		if rec, ok := l.cache.get(key); ok {
			rec.Origin = in.Name
			l.emit(diag.Debug, diag.KindProgress, where, "Content already parsed in this run; using cached record", nil)
			return rec, nil
		}
	}

	rec, err := l.decode(in)
	if err != nil {
		l.emit(diag.Error, kindOf(err), where, "Is not a valid json or csv file.", err)
		return nil, err
	}
	rec.Origin = in.Name
	if l.cache != nil {
		l.cache.set(key, rec)
	}
	return rec, nil
}

// Cached returns the number of records in the content cache.
func (l *Loader) Cached() int {
	if l.cache == nil {
		return 0
	}
	return l.cache.len()
}

// Reset forgets cached records.
func (l *Loader) Reset() {
	if l.cache != nil {
		l.cache.clear()
	}
}

func (l *Loader) decode(in Input) (*records.FileRecord, error) {
	if in.Format == FormatXLSX {
		return l.decodeXLSX(in)
	}

	where := diag.Location{File: in.Name}
	var (
		rec *records.FileRecord
		err error
	)
	if in.Format == FormatYAML {
		l.emit(diag.Debug, diag.KindProgress, where, "Trying to load as yaml file...", nil)
		rec, err = decodeYAML(in)
	} else {
		l.emit(diag.Debug, diag.KindProgress, where, "Trying to load as json file...", nil)
		rec, err = decodeJSON(in)
	}
	switch {
	case err == nil:
		return rec, nil
	case !errors.Is(err, errNotCanonical):
		return nil, err
	}
	l.emit(diag.Debug, diag.KindProgress, where, "Not a canonical document", err)

	l.emit(diag.Debug, diag.KindProgress, where, "Trying to load as csv file...", nil)
	rec, err = tabular.ParseCSV(in.Name, bytes.NewReader(in.Content), tabular.WithSink(l.sink))
	if err != nil {
		return nil, wrapTabular(in.Name, err)
	}
	return checkTabular(in.Name, rec)
}

// decodeJSON reads a canonical JSON document. Content that is not a JSON
// object reports errNotCanonical; an object without "sessions" is a canonical
// document with a missing key and is rejected outright.
func decodeJSON(in Input) (*records.FileRecord, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(in.Content, &probe); err != nil {
		return nil, errors.Join(errNotCanonical, err)
	}
	if _, ok := probe["sessions"]; !ok {
		return nil, errors.NewFormatError(in.Name, `Has no "sessions" key`, nil)
	}

	var rec records.FileRecord
	if err := json.Unmarshal(in.Content, &rec); err != nil {
		return nil, errors.NewFormatError(in.Name, "invalid canonical record", errors.WrapParse("json", in.Name, err))
	}
	return finishCanonical(in.Name, &rec)
}

// decodeYAML is decodeJSON for YAML documents.
func decodeYAML(in Input) (*records.FileRecord, error) {
	var probe map[string]any
	if err := yaml.Unmarshal(in.Content, &probe); err != nil || probe == nil {
		if err == nil {
			err = errors.New("empty document")
		}
		return nil, errors.Join(errNotCanonical, err)
	}
	if _, ok := probe["sessions"]; !ok {
		return nil, errors.NewFormatError(in.Name, `Has no "sessions" key`, nil)
	}

	var rec records.FileRecord
	if err := yaml.Unmarshal(in.Content, &rec); err != nil {
		return nil, errors.NewFormatError(in.Name, "invalid canonical record", errors.WrapParse("yaml", in.Name, err))
	}
	return finishCanonical(in.Name, &rec)
}

func finishCanonical(name string, rec *records.FileRecord) (*records.FileRecord, error) {
	rec.Origin = name
	rec.Source = records.SourceCanonical
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// decodeXLSX parses the first worksheet of a workbook as tabular rows.
func (l *Loader) decodeXLSX(in Input) (*records.FileRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(in.Content))
	if err != nil {
		return nil, errors.NewFormatError(in.Name, "cannot open workbook", errors.WrapParse("xlsx", in.Name, err))
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewFormatError(in.Name, "workbook has no worksheets", nil)
	}
	if len(sheets) > 1 {
		l.emit(diag.Warning, diag.KindProgress, diag.Location{File: in.Name},
			"Workbook has several worksheets; only "+sheets[0]+" is read", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewFormatError(in.Name, "cannot read worksheet "+sheets[0], errors.WrapParse("xlsx", in.Name, err))
	}

	rec, err := tabular.Parse(in.Name, rows, tabular.WithSink(l.sink))
	if err != nil {
		return nil, wrapTabular(in.Name, err)
	}
	return checkTabular(in.Name, rec)
}

// wrapTabular keeps structural errors as they are and turns read failures
// into format errors.
func wrapTabular(name string, err error) error {
	if errors.IsStructural(err) {
		return err
	}
	return errors.NewFormatError(name, "not a valid json or csv file", err)
}

// checkTabular rejects a parse that found no tabular structure at all.
func checkTabular(name string, rec *records.FileRecord) (*records.FileRecord, error) {
	if len(rec.Sessions) == 0 && rec.Version.IsBlank() {
		return nil, errors.NewFormatError(name, "not a valid json or csv file", nil)
	}
	return rec, nil
}

func kindOf(err error) diag.Kind {
	switch {
	case errors.IsStructural(err):
		return diag.KindStructural
	default:
		return diag.KindFormat
	}
}

func (l *Loader) emit(sev diag.Severity, kind diag.Kind, where diag.Location, msg string, err error) {
	l.sink.Emit(diag.Event{Severity: sev, Kind: kind, Location: where, Message: msg, Err: err})
}
