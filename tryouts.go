// Package tryouts compiles evaluation-day rating files into printable tables,
// one per grade, gender and evaluation type.
//
// A Tryouts value owns one compile run. Files are added in order; each is
// decoded, gated on its data-format version and merged into the run's
// buckets. Problems with a file, sheet or player are diagnosed and skipped,
// so a run always produces a report from whatever data was usable.
package tryouts

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/tryouts/pkg/compile"
	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/loader"
	"github.com/agentstation/tryouts/pkg/logging"
	"github.com/agentstation/tryouts/pkg/report"
)

// Tryouts manages one compile run with event hooks.
type Tryouts interface {
	// Add loads and compiles one file. The error reports a file that was
	// rejected as a whole; the run can continue with the next file.
	Add(ctx context.Context, in loader.Input) error

	// Run adds every input in order and returns the report. Rejected files
	// do not stop the run; only cancellation does.
	Run(ctx context.Context, inputs []loader.Input) (*report.Report, error)

	// Report lays out everything compiled so far.
	Report() *report.Report

	// Stats returns the run counters, including files the loader rejected.
	Stats() compile.Stats

	// RunID identifies the run in log output.
	RunID() string

	// Reset discards compiled data, counters and cached records.
	Reset()

	// OnFileAccepted registers a callback for files that were compiled
	OnFileAccepted(FileAcceptedHook)

	// OnFileRejected registers a callback for files that were skipped
	OnFileRejected(FileRejectedHook)

	// OnVersionReset registers a callback for newer versions discarding data
	OnVersionReset(VersionResetHook)
}

// tryouts is the internal implementation of the Tryouts interface
type tryouts struct {
	mu     sync.Mutex
	config *config
	logger zerolog.Logger

	loader *loader.Loader
	engine *compile.Engine

	// unreadable counts files the loader could not decode
	unreadable int

	// Event hooks
	hooks *hooks
}

// New creates a new Tryouts run with the given options
func New(opts ...Option) (Tryouts, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	if cfg.runID == "" {
		cfg.runID = uuid.NewString()
	}

	logger := zerolog.Nop()
	if cfg.logger != nil {
		logger = cfg.logger.With().Str("run_id", cfg.runID).Logger()
	}

	sink := cfg.sink
	if cfg.logger != nil {
		sink = diag.Multi(sink, diag.NewLoggerSink(&logger))
	}
	sink = diag.OrDiscard(sink)

	engineOpts := []compile.Option{
		compile.WithSink(sink),
		compile.WithOldSessionThreshold(cfg.oldSessionThreshold),
	}
	if cfg.legacyScales != nil {
		engineOpts = append(engineOpts, compile.WithLegacyScales(cfg.legacyScales))
	}

	return &tryouts{
		config: cfg,
		logger: logger,
		loader: loader.New(loader.WithSink(sink), loader.WithCache(cfg.cache)),
		engine: compile.New(engineOpts...),
		hooks:  newHooks(),
	}, nil
}

// Add implements Tryouts.
func (t *tryouts) Add(ctx context.Context, in loader.Input) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.add(t.context(ctx), in)
}

// Run implements Tryouts.
func (t *tryouts) Run(ctx context.Context, inputs []loader.Input) (*report.Report, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ctx = t.context(ctx)
	logging.Ctx(ctx).Info().Int("files", len(inputs)).Msg("compile run started")

	for _, in := range inputs {
		if err := t.add(ctx, in); err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	stats := t.stats()
	logging.Ctx(ctx).Info().
		Int("accepted", stats.FilesAccepted).
		Int("rejected", stats.FilesRejected).
		Int("sheets", stats.SheetsCompiled).
		Msg("compile run finished")

	return t.report(), nil
}

func (t *tryouts) add(ctx context.Context, in loader.Input) error {
	log := logging.Ctx(ctx).With().Str("file", in.Name).Logger()

	rec, err := t.loader.Load(ctx, in)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		t.unreadable++
		log.Debug().Err(err).Msg("file not decoded")
		t.hooks.fileRejected(in.Name, err)
		return err
	}

	resets := t.engine.Stats().Resets
	if err := t.engine.Add(ctx, rec); err != nil {
		if ctx.Err() != nil {
			return err
		}
		log.Debug().Err(err).Msg("file rejected by version gate")
		t.hooks.fileRejected(in.Name, err)
		return err
	}
	if t.engine.Stats().Resets > resets {
		t.hooks.versionReset(in.Name, t.engine.LatestVersion())
	}

	log.Debug().Int("sessions", len(rec.Sessions)).Int("sheets", rec.SheetCount()).Msg("file compiled")
	t.hooks.fileAccepted(in.Name)
	return nil
}

// context attaches the run's logger and id.
func (t *tryouts) context(ctx context.Context) context.Context {
	ctx = logging.WithLogger(ctx, &t.logger)
	return logging.WithRunID(ctx, t.config.runID)
}

// Report implements Tryouts.
func (t *tryouts) Report() *report.Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.report()
}

func (t *tryouts) report() *report.Report {
	return report.Build(t.engine.Buckets(), report.WithStats(t.stats()))
}

// Stats implements Tryouts.
func (t *tryouts) Stats() compile.Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats()
}

func (t *tryouts) stats() compile.Stats {
	s := t.engine.Stats()
	s.FilesRejected += t.unreadable
	return s
}

// RunID implements Tryouts.
func (t *tryouts) RunID() string {
	return t.config.runID
}

// Reset implements Tryouts.
func (t *tryouts) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.engine.Reset()
	t.loader.Reset()
	t.unreadable = 0
}

// OnFileAccepted implements Tryouts.
func (t *tryouts) OnFileAccepted(fn FileAcceptedHook) {
	t.hooks.OnFileAccepted(fn)
}

// OnFileRejected implements Tryouts.
func (t *tryouts) OnFileRejected(fn FileRejectedHook) {
	t.hooks.OnFileRejected(fn)
}

// OnVersionReset implements Tryouts.
func (t *tryouts) OnVersionReset(fn VersionResetHook) {
	t.hooks.OnVersionReset(fn)
}
