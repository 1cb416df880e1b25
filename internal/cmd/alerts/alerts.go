// Package alerts provides one-line status notifications for the terminal.
package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/tryouts/pkg/compile"
)

// Level represents the severity of an alert.
type Level int

const (
	// LevelError indicates a failure or error condition.
	LevelError Level = iota
	// LevelWarning indicates a potential issue or important notice.
	LevelWarning
	// LevelInfo indicates general informational messages.
	LevelInfo
	// LevelSuccess indicates successful completion of an operation.
	LevelSuccess
)

// String returns the string representation of the alert level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the appropriate icon for the alert level.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return "✗"
	case LevelWarning:
		return "!"
	case LevelInfo:
		return "i"
	case LevelSuccess:
		return "✓"
	default:
		return "?"
	}
}

// Color returns ANSI color codes for terminal output.
func (l Level) Color() string {
	switch l {
	case LevelError:
		return "\033[31m" // Red
	case LevelWarning:
		return "\033[33m" // Yellow
	case LevelInfo:
		return "\033[36m" // Cyan
	case LevelSuccess:
		return "\033[32m" // Green
	default:
		return resetColor
	}
}

const resetColor = "\033[0m"

// Alert represents a status notification.
type Alert struct {
	Level   Level
	Message string
	Details []string
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message}
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// WithDetails adds additional context details to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	return a.Level.Icon() + " " + a.Message
}

// FromStats summarises a compile run. Anything skipped points the reader to
// the log file.
func FromStats(s compile.Stats, logFile string) *Alert {
	files := s.FilesAccepted + s.FilesRejected
	if s.SheetsCompiled == 0 {
		return NewWarning(fmt.Sprintf("No usable data in %s", plural(files, "file"))).
			WithDetails("see " + logFile + " for why")
	}

	a := NewSuccess(fmt.Sprintf("Compiled %s for %s from %s",
		plural(s.SheetsCompiled, "sheet"), plural(s.PlayersRecorded, "player"), plural(s.FilesAccepted, "file")))

	skipped := s.FilesRejected + s.SheetsSkipped + s.SheetsDuplicate + s.PlayersSkipped
	if skipped > 0 || s.Resets > 0 {
		a.Level = LevelWarning
		if s.FilesRejected > 0 {
			a.WithDetails(plural(s.FilesRejected, "file") + " skipped")
		}
		if n := s.SheetsSkipped + s.SheetsDuplicate; n > 0 {
			a.WithDetails(plural(n, "sheet") + " skipped")
		}
		if s.PlayersSkipped > 0 {
			a.WithDetails(plural(s.PlayersSkipped, "player") + " skipped")
		}
		if s.Resets > 0 {
			a.WithDetails("older data discarded by a newer version " + plural(s.Resets, "time"))
		}
		a.WithDetails("see " + logFile + " for details")
	}
	return a
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Writer writes alerts to an io.Writer, colored when it is a terminal.
type Writer struct {
	w        io.Writer
	useColor bool
}

// NewWriter creates a Writer. Color is used only on a terminal and never
// when noColor is set.
func NewWriter(w io.Writer, noColor bool) *Writer {
	return &Writer{w: w, useColor: !noColor && IsTerminal(w)}
}

// WriteAlert writes the alert and its indented details.
func (aw *Writer) WriteAlert(a *Alert) error {
	message := a.String()
	if aw.useColor {
		message = a.Level.Color() + message + resetColor
	}
	if _, err := fmt.Fprintln(aw.w, message); err != nil {
		return err
	}
	for _, detail := range a.Details {
		if _, err := fmt.Fprintf(aw.w, "   %s\n", detail); err != nil {
			return err
		}
	}
	return nil
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
