// Package compile merges the records of many input files into one set of
// report buckets, one per grade+gender+eType signature.
//
// The Engine owns all compile state: the buckets, the index of sheets
// already compiled and the latest data-format version seen. Records are
// added one file at a time, in file name order, because a newer version
// discards everything compiled before it.
package compile

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/agentstation/tryouts/internal/textutil"
	"github.com/agentstation/tryouts/pkg/constants"
	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/records"
)

// DefaultLegacyScales maps eTypes to the number of ratingValues a current
// canonical sheet declares. Canonical sheets with another count predate the
// current rating scale and are skipped.
func DefaultLegacyScales() map[string]int {
	return map[string]int{
		constants.ETypeNight1: constants.NightRatingScale,
		constants.ETypeNight2: constants.NightRatingScale,
		constants.ETypeBubble: constants.BubbleRatingScale,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink sends compile diagnostics to sink.
func WithSink(sink diag.Sink) Option {
	return func(e *Engine) {
		e.sink = diag.OrDiscard(sink)
	}
}

// WithOldSessionThreshold sets the session number below which a session is
// flagged as possibly old. Zero or less disables the check.
func WithOldSessionThreshold(n int) Option {
	return func(e *Engine) {
		e.oldSessionThreshold = n
	}
}

// WithLegacyScales replaces the rating scale sizes used to spot old
// canonical sheets. A nil or empty map disables the check.
func WithLegacyScales(scales map[string]int) Option {
	return func(e *Engine) {
		e.legacyScales = maps.Clone(scales)
	}
}

// Engine compiles file records into buckets. It is not safe for concurrent use.
type Engine struct {
	sink                diag.Sink
	oldSessionThreshold int
	legacyScales        map[string]int

	latest int
	state  *compiled
	stats  Stats
}

// compiled is the state a newer version discards. It is replaced as a whole.
type compiled struct {
	buckets map[records.Signature]*Bucket
	seen    map[sheetKey][]records.Sheet
}

type sheetKey struct {
	session string
	sheet   string
}

func newCompiled() *compiled {
	return &compiled{
		buckets: make(map[records.Signature]*Bucket),
		seen:    make(map[sheetKey][]records.Sheet),
	}
}

// New creates an Engine with no compiled data.
func New(opts ...Option) *Engine {
	e := &Engine{
		sink:                diag.Discard,
		oldSessionThreshold: constants.DefaultOldSessionThreshold,
		legacyScales:        DefaultLegacyScales(),
		state:               newCompiled(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Add gates one file record on its version and merges its sheets. The
// returned error reports a record the version gate rejected; per-sheet and
// per-player problems are diagnosed and skipped, never returned.
func (e *Engine) Add(ctx context.Context, rec *records.FileRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.admit(rec); err != nil {
		e.stats.FilesRejected++
		return err
	}
	e.stats.FilesAccepted++

	for _, sess := range rec.Sessions {
		e.emit(diag.Info, diag.KindProgress, diag.Location{File: rec.Origin, Session: sess.Name}, "Processing...")
		for i := range sess.Sheets {
			e.addSheet(rec, sess.Name, &sess.Sheets[i])
		}
	}
	return nil
}

// Buckets returns the compiled buckets in signature order.
func (e *Engine) Buckets() []*Bucket {
	keys := slices.Sorted(maps.Keys(e.state.buckets))
	out := make([]*Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.state.buckets[k])
	}
	return out
}

// Bucket returns the bucket for one signature.
func (e *Engine) Bucket(sig records.Signature) (*Bucket, bool) {
	b, ok := e.state.buckets[sig]
	return b, ok
}

// LatestVersion returns the highest data-format version accepted so far,
// 0 when none has been seen.
func (e *Engine) LatestVersion() int {
	return e.latest
}

// Stats returns the run counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Reset discards all compiled data, the version seen and the counters.
func (e *Engine) Reset() {
	e.state = newCompiled()
	e.latest = 0
	e.stats = Stats{}
}

// addSheet runs one sheet through the compile pipeline.
func (e *Engine) addSheet(rec *records.FileRecord, session string, sh *records.Sheet) {
	where := diag.Location{File: rec.Origin, Session: session, Sheet: sh.Name}
	e.emit(diag.Info, diag.KindProgress, where, "Processing...")

	if e.duplicate(session, sh) {
		e.emit(diag.Warning, diag.KindCollision, where, "Skipping because it is a duplicate.")
		e.stats.SheetsDuplicate++
		return
	}
	if len(sh.PlayerData) == 0 {
		e.emit(diag.Warning, diag.KindDataQuality, where, "Skipping since it contains no players")
		e.stats.SheetsSkipped++
		return
	}
	if rec.Source == records.SourceCanonical && e.hasLegacyScale(sh) {
		e.emit(diag.Warning, diag.KindVersion, where, "Skipping since ratingsValues are old")
		e.stats.SheetsSkipped++
		return
	}
	e.checkOldSession(where, session)

	sig := sh.Signature()
	b, ok := e.state.buckets[sig]
	if !ok {
		e.emit(diag.Debug, diag.KindProgress, where, fmt.Sprintf("Adding compilation[%s]", sig))
		b = newBucket(sig)
		e.state.buckets[sig] = b
	}

	station := e.stationFor(b, where, sh)

	if comment := textutil.SanitizeASCII(sh.Comments); comment != "" {
		c := where.String() + ": Has comment - " + comment
		e.emit(diag.Info, diag.KindProgress, where, "Has comment - "+comment)
		b.addComment(c)
	}

	if len(b.Categories) > 0 && !slices.Equal(b.Categories, sh.Categories) {
		e.emit(diag.Error, diag.KindStructural, where, fmt.Sprintf("Categories mismatch - %s != %s",
			strings.Join(b.Categories, ","), strings.Join(sh.Categories, ",")))
		e.stats.SheetsSkipped++
		return
	}
	if len(b.Categories) == 0 {
		b.Categories = slices.Clone(sh.Categories)
	}

	station = e.avoidPlayerCollisions(b, where, sh, station)

	for _, p := range sh.PlayerData {
		e.addPlayer(rec, b, where, sh.Categories, station, p)
	}
	e.stats.SheetsCompiled++
}

// duplicate reports whether an identical sheet of the same session was
// already compiled, and remembers the sheet otherwise.
func (e *Engine) duplicate(session string, sh *records.Sheet) bool {
	key := sheetKey{session: session, sheet: sh.Name}
	for _, prev := range e.state.seen[key] {
		if cmp.Equal(prev, *sh, cmpopts.EquateEmpty()) {
			return true
		}
	}
	e.state.seen[key] = append(e.state.seen[key], sh.Clone())
	return false
}

func (e *Engine) hasLegacyScale(sh *records.Sheet) bool {
	want, ok := e.legacyScales[sh.EType]
	return ok && len(sh.RatingValues) != want
}

// checkOldSession warns about sessions whose name starts with four digits
// and whose session number, digits two to four, is below the threshold.
func (e *Engine) checkOldSession(where diag.Location, name string) {
	if e.oldSessionThreshold <= 0 || len(name) < 4 {
		return
	}
	n := 0
	for i := 0; i < 4; i++ {
		c := name[i]
		if c < '0' || c > '9' {
			return
		}
		if i > 0 {
			n = n*10 + int(c-'0')
		}
	}
	if n < e.oldSessionThreshold {
		e.emit(diag.Warning, diag.KindVersion, where, "Possibly an old session; consider removing it,")
	}
}

func (e *Engine) emit(sev diag.Severity, kind diag.Kind, where diag.Location, msg string) {
	e.sink.Emit(diag.Event{Severity: sev, Kind: kind, Location: where, Message: msg})
}
