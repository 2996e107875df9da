package lineprof

import "github.com/ardnew/lineprof/log"

// config holds the configuration options for a Session.
type config struct {
	clock  Clock
	logger log.Logger
	slack  int
}

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// makeConfig creates a new config with defaults applied, overridden by any
// provided options.
func makeConfig(opts ...Option) config {
	cfg := config{
		clock: sysClock{},
		slack: DefaultSlack,
	}

	return apply(cfg, opts...)
}

// WithClock returns a functional option that replaces the session clock.
// Tests and trace replay hosts use this to supply deterministic timestamps.
// A nil clock restores the default monotonic clock.
func WithClock(c Clock) Option {
	return func(cfg config) config {
		if c == nil {
			c = sysClock{}
		}

		cfg.clock = c

		return cfg
	}
}

// WithLogger returns a functional option that sets the logger used for
// session lifecycle and selector events. The zero value [log.Logger]
// disables logging.
func WithLogger(l log.Logger) Option {
	return func(cfg config) config {
		cfg.logger = l

		return cfg
	}
}

// WithSlack returns a functional option that sets the extra capacity added
// beyond the highest observed line number when growing a line-time table.
// Values less than 1 are replaced with [DefaultSlack].
func WithSlack(n int) Option {
	return func(cfg config) config {
		if n < 1 {
			n = DefaultSlack
		}

		cfg.slack = n

		return cfg
	}
}
