// Package appcontext provides the shared application context interface
// used by all commands, so command packages depend on an interface rather
// than on the concrete App.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/tryouts"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/tryouts/app implements it; tests use Mock.
type Interface interface {
	// Tryouts creates a compile run configured from the application
	// settings. Extra options are applied after the configured ones.
	Tryouts(...tryouts.Option) (tryouts.Tryouts, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format, empty for
	// auto-detection.
	OutputFormat() string

	// LogOutput returns where diagnostics are logged, usually a file name.
	LogOutput() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
