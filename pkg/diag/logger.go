package diag

import "github.com/rs/zerolog"

// LoggerSink writes events to a zerolog logger at the event's severity.
type LoggerSink struct {
	logger *zerolog.Logger
}

// NewLoggerSink creates a sink that logs through logger.
func NewLoggerSink(logger *zerolog.Logger) *LoggerSink {
	return &LoggerSink{logger: logger}
}

// Emit implements Sink.
func (s *LoggerSink) Emit(e Event) {
	if s.logger == nil {
		return
	}
	ev := s.logger.WithLevel(e.Severity.Level()).Str("kind", string(e.Kind))
	loc := e.Location
	if loc.File != "" {
		ev = ev.Str("file", loc.File)
	}
	if loc.Row > 0 {
		ev = ev.Int("row", loc.Row)
	}
	if loc.Session != "" {
		ev = ev.Str("session", loc.Session)
	}
	if loc.Sheet != "" {
		ev = ev.Str("sheet", loc.Sheet)
	}
	if loc.Team != "" {
		ev = ev.Str("team", loc.Team)
	}
	if loc.Player != "" {
		ev = ev.Str("player", loc.Player)
	}
	if e.Err != nil {
		ev = ev.Err(e.Err)
	}
	ev.Msg(e.String())
}
