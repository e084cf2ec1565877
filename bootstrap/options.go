package bootstrap

import (
	"time"

	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/observability"
)

// Option configures the App during creation. Options are non-generic
// so they can be used with any item and config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	metrics         *observability.Metrics
	gracefulTimeout *time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. If not set, the global logger is
// initialized from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithMetrics enables run metric recording through the given instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *appOptions) {
		o.metrics = m
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}
