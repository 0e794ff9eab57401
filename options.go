package profile

import (
	"io"
	"log/slog"
)

// Option configures Traverse and New.
type Option interface {
	apply(*config)
}

type config struct {
	logger *slog.Logger
	node   string
}

func newConfig(opts []Option) *config {
	c := &config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		node:   "local",
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	return c
}

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(c *config) {
	if o.logger != nil {
		c.logger = o.logger
	}
}

// WithLogger routes the debug records of skipped patch values to logger.
// Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger}
}

type nodeOption string

func (o nodeOption) apply(c *config) {
	c.node = string(o)
}

// WithNode names the writer that stamps the batches a Profile flushes.
// It has no effect on Traverse.
func WithNode(id string) Option {
	return nodeOption(id)
}
