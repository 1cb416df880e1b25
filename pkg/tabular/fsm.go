package tabular

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/tryouts/internal/textutil"
	"github.com/agentstation/tryouts/pkg/constants"
	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/errors"
	"github.com/agentstation/tryouts/pkg/records"
)

// state is the parser position within the implicit file structure.
type state int

const (
	stateNoSession state = iota
	stateInSession
	stateInSheetHeader
	stateInPlayerData
)

func (s state) String() string {
	switch s {
	case stateNoSession:
		return "NoSession"
	case stateInSession:
		return "InSession"
	case stateInSheetHeader:
		return "InSheetHeader"
	case stateInPlayerData:
		return "InPlayerData"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// rowClass is what a non-blank row looks like, independent of state.
type rowClass int

const (
	classCharset rowClass = iota
	classIgnorable
	classHeading
	classVersion
	classSession
	classSheet
	classProperty
	classData
)

// row is one trimmed, non-blank input row.
type row struct {
	num     int
	cells   []string
	first   int    // index of the first non-empty cell
	keyword string // value of the first non-empty cell
	heading int    // index of the "team" heading, or -1
}

// value returns the cell after the keyword, or def when there is none.
func (r row) value(def string) string {
	if r.first+1 < len(r.cells) {
		return r.cells[r.first+1]
	}
	return def
}

// remainder returns the cells after the keyword's value.
func (r row) remainder() []string {
	if r.first+2 < len(r.cells) {
		return r.cells[r.first+2:]
	}
	return nil
}

func (r row) cell(i int) string {
	if i >= 0 && i < len(r.cells) {
		return r.cells[i]
	}
	return ""
}

type transition func(p *parser, r row) (state, error)

var (
	scalarProperties = []string{
		constants.PropertyEType, constants.PropertyGrade, constants.PropertyGender,
		constants.PropertyField, constants.PropertyGroup, constants.PropertyComments,
		constants.PropertyRatingTip,
	}
	listProperties = []string{
		constants.PropertyTeams, constants.PropertyCategories, constants.PropertyRatingValues,
	}
	ignorableKeywords = []string{constants.KeywordLastRatingsChange}
)

// transitions is the full table. Every state handles every class.
var transitions = map[state]map[rowClass]transition{
	stateNoSession: {
		classCharset:   rejectCharset,
		classIgnorable: skip,
		classHeading:   rejectHeaderBeforeSheet,
		classVersion:   (*parser).onVersion,
		classSession:   (*parser).onSession,
		classSheet:     (*parser).onSheet,
		classProperty:  rejectNoOpenSheet,
		classData:      (*parser).onUnknown,
	},
	stateInSession: {
		classCharset:   rejectCharset,
		classIgnorable: skip,
		classHeading:   rejectHeaderBeforeSheet,
		classVersion:   (*parser).onVersion,
		classSession:   (*parser).onSession,
		classSheet:     (*parser).onSheet,
		classProperty:  rejectNoOpenSheet,
		classData:      (*parser).onUnknown,
	},
	stateInSheetHeader: {
		classCharset:   rejectCharset,
		classIgnorable: skip,
		classHeading:   (*parser).onHeading,
		classVersion:   (*parser).onVersion,
		classSession:   (*parser).onSession,
		classSheet:     (*parser).onSheet,
		classProperty:  (*parser).onProperty,
		classData:      (*parser).onUnknown,
	},
	stateInPlayerData: {
		classCharset:   rejectCharset,
		classIgnorable: skip,
		classHeading:   (*parser).onRepeatedHeading,
		classVersion:   (*parser).onVersion,
		classSession:   (*parser).onSession,
		classSheet:     (*parser).onSheet,
		classProperty:  rejectPropertyAfterHeader,
		classData:      (*parser).onPlayer,
	},
}

type parser struct {
	origin string
	sink   diag.Sink

	state   state
	rec     *records.FileRecord
	session *records.Session
	sheet   *records.Sheet
	column  int    // index of the "team" column while in player data
	team    string // team inherited by rows that leave it blank
}

func newParser(origin string, opts ...Option) *parser {
	p := &parser{
		origin: origin,
		sink:   diag.Discard,
		state:  stateNoSession,
		rec: &records.FileRecord{
			Origin: origin,
			Source: records.SourceTabular,
		},
		column: -1,
		team:   constants.UnsetTeam,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// step classifies one raw row and applies the matching transition.
func (p *parser) step(num int, raw []string) error {
	r, ok := p.prepare(num, raw)
	if !ok {
		return nil
	}
	next, err := transitions[p.state][classify(r)](p, r)
	if err != nil {
		return err
	}
	p.state = next
	return nil
}

// prepare trims a raw row. Blank rows report false. Character checks run on
// the raw cells, so a row with bad data is kept for classification.
func (p *parser) prepare(num int, raw []string) (row, bool) {
	r := row{num: num, heading: -1}
	if slices.ContainsFunc(raw, textutil.IsNonASCIIOrCRLF) {
		r.first = -1
		return r, true
	}

	cells := make([]string, len(raw))
	for i, c := range raw {
		cells[i] = strings.TrimSpace(c)
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	if len(cells) == 0 {
		return r, false
	}

	r.cells = cells
	r.first = slices.IndexFunc(cells, func(c string) bool { return c != "" })
	r.keyword = cells[r.first]
	r.heading = headingIndex(cells)
	return r, true
}

// headingIndex returns the index of the "team" heading when the first "team"
// cell sits past column 0 and is directly followed by the first "id" cell.
func headingIndex(cells []string) int {
	team := slices.Index(cells, constants.HeadingTeam)
	id := slices.Index(cells, constants.HeadingID)
	if team > 0 && team+1 == id {
		return team
	}
	return -1
}

// classify applies the row rules in priority order.
func classify(r row) rowClass {
	switch {
	case r.first < 0:
		return classCharset
	case slices.Contains(ignorableKeywords, r.keyword):
		return classIgnorable
	case r.heading > 0:
		return classHeading
	case r.keyword == constants.KeywordVersion:
		return classVersion
	case r.keyword == constants.KeywordSession:
		return classSession
	case r.keyword == constants.KeywordSheet:
		return classSheet
	case slices.Contains(scalarProperties, r.keyword), slices.Contains(listProperties, r.keyword):
		return classProperty
	default:
		return classData
	}
}

// finish flushes any open sheet and session and returns the record.
func (p *parser) finish() *records.FileRecord {
	p.flushSheet()
	p.flushSession()
	return p.rec
}

func (p *parser) flushSheet() {
	if p.sheet == nil {
		return
	}
	p.session.Sheets = append(p.session.Sheets, *p.sheet)
	p.sheet = nil
}

func (p *parser) flushSession() {
	if p.session == nil {
		return
	}
	p.rec.Sessions = append(p.rec.Sessions, *p.session)
	p.session = nil
}

func (p *parser) where(r row) diag.Location {
	loc := diag.Location{File: p.origin, Row: r.num}
	if p.session != nil {
		loc.Session = p.session.Name
	}
	if p.sheet != nil {
		loc.Sheet = p.sheet.Name
	}
	return loc
}

func (p *parser) emit(sev diag.Severity, kind diag.Kind, r row, format string, args ...any) {
	p.sink.Emit(diag.Event{
		Severity: sev,
		Kind:     kind,
		Location: p.where(r),
		Message:  fmt.Sprintf(format, args...),
	})
}

// fail reports a structural error and returns it.
func (p *parser) fail(r row, code errors.StructuralCode, msg string) (state, error) {
	err := errors.NewStructuralError(code, p.origin, r.num, msg)
	p.sink.Emit(diag.Event{
		Severity: diag.Error,
		Kind:     diag.KindStructural,
		Location: p.where(r),
		Message:  msg,
		Err:      err,
	})
	return p.state, err
}

func (p *parser) warnRemainder(r row) {
	if rest := r.remainder(); len(rest) > 0 {
		p.emit(diag.Warning, diag.KindProgress, r, "Ignoring cells %q", rest)
	}
}
