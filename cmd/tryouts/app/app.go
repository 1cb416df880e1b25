// Package app provides the application context and dependency management
// for the tryouts CLI. It centralizes configuration, logging and the
// construction of compile runs so commands receive them through
// appcontext.Interface.
package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/tryouts"
	"github.com/agentstation/tryouts/internal/appcontext"
)

// App represents the tryouts application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration from files and the environment,
// and can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	// Log to stderr until flags are parsed; setupCommand opens the run log.
	boot := *config
	boot.LogOutput = "stderr"
	logger := NewLogger(&boot)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// LogOutput returns where the run log is written.
func (a *App) LogOutput() string {
	return a.config.LogOutput
}

// Tryouts creates a compile run from the application configuration.
func (a *App) Tryouts(extra ...tryouts.Option) (tryouts.Tryouts, error) {
	opts := []tryouts.Option{
		tryouts.WithLogger(a.logger),
		tryouts.WithCache(!a.config.NoCache),
		tryouts.WithOldSessionThreshold(a.config.OldSessionThreshold),
	}
	if a.config.LegacyScales != nil {
		opts = append(opts, tryouts.WithLegacyScales(a.config.LegacyScales))
	}
	opts = append(opts, extra...)

	run, err := tryouts.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating compile run: %w", err)
	}
	return run, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
