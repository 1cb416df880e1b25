package tryouts

import (
	"fmt"
	"maps"

	"github.com/rs/zerolog"

	"github.com/agentstation/tryouts/pkg/constants"
	"github.com/agentstation/tryouts/pkg/diag"
)

// Option is a function that configures a Tryouts instance
type Option func(*config) error

// config holds the configuration for a Tryouts instance
type config struct {
	sink                diag.Sink
	logger              *zerolog.Logger
	runID               string
	cache               bool
	oldSessionThreshold int
	legacyScales        map[string]int
}

func defaultConfig() *config {
	return &config{
		cache:               true,
		oldSessionThreshold: constants.DefaultOldSessionThreshold,
	}
}

// WithSink configures where diagnostics are delivered
func WithSink(sink diag.Sink) Option {
	return func(c *config) error {
		c.sink = sink
		return nil
	}
}

// WithLogger writes every diagnostic to logger, tagged with the run id
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithRunID sets the run id instead of generating one
func WithRunID(id string) Option {
	return func(c *config) error {
		if id == "" {
			return fmt.Errorf("run id must not be empty")
		}
		c.runID = id
		return nil
	}
}

// WithCache configures whether identical file contents are parsed once
func WithCache(enabled bool) Option {
	return func(c *config) error {
		c.cache = enabled
		return nil
	}
}

// WithOldSessionThreshold configures the numeric session prefix below which
// a session is flagged as old. Zero disables the check.
func WithOldSessionThreshold(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return fmt.Errorf("old session threshold must not be negative, got %d", n)
		}
		c.oldSessionThreshold = n
		return nil
	}
}

// WithLegacyScales configures the ratingValues count expected per eType for
// canonical records
func WithLegacyScales(scales map[string]int) Option {
	return func(c *config) error {
		c.legacyScales = maps.Clone(scales)
		return nil
	}
}
