package skyb

import (
	"github.com/rs/zerolog"

	"github.com/dronecore/skyb/stats"
)

// config collects the knobs Open accepts via functional Options,
// adapted from the teacher's Options/FrameOptions struct-of-knobs
// convention to the functional-option idiom the rest of this module's
// optional cross-cutting concerns (logger, config) already use.
type config struct {
	log         *zerolog.Logger
	statsConfig stats.Config
}

// Option configures Open.
type Option func(*config)

// WithLogger attaches a structured logger, threaded into the container
// parser and the trajectory/light players for diagnostic events.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithStatsConfig overrides the default statistics configuration used
// to compute the Show's trajectory statistics.
func WithStatsConfig(sc stats.Config) Option {
	return func(c *config) { c.statsConfig = sc }
}
