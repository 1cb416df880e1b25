// Package diag carries the structured diagnostic events emitted while files
// are parsed and compiled. Every skip, rejection, rename or rounding produces
// one Event; sinks decide where events go (the run log, an in-memory
// collector for tests and summaries, or nowhere).
package diag

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Severity of a diagnostic event.
type Severity int

// Severities, least to most serious.
const (
	Debug Severity = iota
	Info
	Warning
	Error
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity parses a severity name as printed by String. "warn" is
// accepted for warning.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warning, nil
	case "error":
		return Error, nil
	default:
		return Debug, fmt.Errorf("unknown severity %q: must be one of: debug, info, warning, error", s)
	}
}

// Level maps the severity onto a zerolog level.
func (s Severity) Level() zerolog.Level {
	switch s {
	case Debug:
		return zerolog.DebugLevel
	case Info:
		return zerolog.InfoLevel
	case Warning:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Kind classifies what an event is about.
type Kind string

// Event kinds. They follow the error taxonomy in pkg/errors, plus Progress
// for plain bookkeeping messages.
const (
	KindProgress    Kind = "progress"
	KindFormat      Kind = "format"
	KindStructural  Kind = "structural"
	KindVersion     Kind = "version"
	KindDataQuality Kind = "data_quality"
	KindCollision   Kind = "collision"
)

// Location pinpoints where in the input an event happened. Zero fields are
// omitted from the rendered form.
type Location struct {
	File    string `json:"file,omitempty"`
	Row     int    `json:"row,omitempty"`
	Session string `json:"session,omitempty"`
	Sheet   string `json:"sheet,omitempty"`
	Team    string `json:"team,omitempty"`
	Player  string `json:"player,omitempty"`
}

// String renders the location the way it prefixes log and comment lines,
// e.g. "File a.csv: Session 0522: Sheet 8GirlsNight1: Player Green34".
func (l Location) String() string {
	var parts []string
	if l.File != "" {
		parts = append(parts, "File "+l.File)
	}
	if l.Row > 0 {
		parts = append(parts, fmt.Sprintf("Row %d", l.Row))
	}
	if l.Session != "" {
		parts = append(parts, "Session "+l.Session)
	}
	if l.Sheet != "" {
		parts = append(parts, "Sheet "+l.Sheet)
	}
	if l.Team != "" || l.Player != "" {
		parts = append(parts, "Player "+l.Team+l.Player)
	}
	return strings.Join(parts, ": ")
}

// Event is one diagnostic.
type Event struct {
	Severity Severity
	Kind     Kind
	Location Location
	Message  string
	Err      error
}

// String renders "<location>: <message>".
func (e Event) String() string {
	loc := e.Location.String()
	if loc == "" {
		return e.Message
	}
	return loc + ": " + e.Message
}

// Sink receives diagnostic events.
type Sink interface {
	Emit(Event)
}

// SinkFunc allows functions to implement Sink.
type SinkFunc func(Event)

// Emit implements Sink.
func (f SinkFunc) Emit(e Event) {
	f(e)
}

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// multi fans an event out to several sinks.
type multi []Sink

func (m multi) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}

// Multi returns a sink that forwards to every non-nil sink given.
func Multi(sinks ...Sink) Sink {
	var out multi
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// OrDiscard returns s, or Discard when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}

// Collector keeps events in memory.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Emit implements Sink.
func (c *Collector) Emit(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Events returns a copy of everything collected so far.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

// OfKind returns the events of the given kind.
func (c *Collector) OfKind(kind Kind) []Event {
	var out []Event
	for _, e := range c.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events have at least the given severity.
func (c *Collector) Count(min Severity) int {
	n := 0
	for _, e := range c.Events() {
		if e.Severity >= min {
			n++
		}
	}
	return n
}

// HasMessage reports whether any event message contains substr.
func (c *Collector) HasMessage(substr string) bool {
	for _, e := range c.Events() {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// Reset forgets collected events.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}
