package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/tryouts"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	TryoutsFunc      func(...tryouts.Option) (tryouts.Tryouts, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	LogOutputFunc    func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Tryouts returns a run from the mock function, or a default run.
func (m *Mock) Tryouts(opts ...tryouts.Option) (tryouts.Tryouts, error) {
	if m.TryoutsFunc != nil {
		return m.TryoutsFunc(opts...)
	}
	return tryouts.New(opts...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return ""
}

// LogOutput returns the log destination using the mock function or "tryouts.log".
func (m *Mock) LogOutput() string {
	if m.LogOutputFunc != nil {
		return m.LogOutputFunc()
	}
	return "tryouts.log"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
