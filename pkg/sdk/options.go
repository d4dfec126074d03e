package docrepo

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Clock supplies the time stamped on newly created documents.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces IDs for documents saved without one.
type IDGenerator interface {
	NewID() string
}

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	clock Clock
	ids   IDGenerator

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithClock overrides the time source. Defaults to time.Now.
func WithClock(c Clock) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.clock = c
	})
}

// WithIDGenerator overrides ID generation. Defaults to random UUIDs.
func WithIDGenerator(g IDGenerator) Option {
	return optionFunc(func(cfg *clientConfig) {
		cfg.ids = g
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
