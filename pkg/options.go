package jsheap

// options.go defines the internal configuration object and the functional
// options New accepts. Options never allocate unless strictly necessary —
// they just capture pointers to external collaborators (registry, logger)
// or copy in a value — and the struct itself stays unexported so callers
// can only influence behavior through Option.

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/corvid-rt/jsheap/internal/gc"
)

// Option is the functional option passed to New.
type Option func(*config)

// config bundles every knob that influences machine behavior.
type config struct {
	registry *prometheus.Registry
	logger   *zap.Logger
	gcConfig gc.Config
}

func defaultConfig() *config {
	return &config{
		logger:   zap.NewNop(),
		gcConfig: gc.DefaultConfig(),
	}
}

// WithMetrics enables Prometheus metrics collection for the machine
// instance. Passing nil disables metrics (default).
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) { c.registry = reg }
}

// WithLogger plugs an external zap.Logger. The machine never logs on the
// hot path; only collection boundaries are logged, and only when
// Config.Verbose is set.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithGCConfig overrides the collector's starting configuration. Further
// changes after construction go through Machine.Configure.
func WithGCConfig(gcCfg gc.Config) Option {
	return func(c *config) { c.gcConfig = gcCfg }
}

// applyOptions copies user-supplied options into cfg.
func applyOptions(cfg *config, opts []Option) {
	for _, opt := range opts {
		opt(cfg)
	}
}
