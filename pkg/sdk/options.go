package verity

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	artifactPath string
	lazy         bool

	auditDriver   string // "valkey", "redis" or "sqlite"; empty disables auditing
	auditAddrs    []string
	auditPassword string
	auditDSN      string
	auditBuffer   int
	textLimit     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithArtifact sets the trained artifact path. Without it the client serves heuristics.
func WithArtifact(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.artifactPath = path
	})
}

// WithLazyLoad defers loading the artifact until the first prediction.
func WithLazyLoad() Option {
	return optionFunc(func(c *clientConfig) {
		c.lazy = true
	})
}

// WithValkeyAudit appends every prediction to a Valkey stream.
func WithValkeyAudit(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.auditDriver = "valkey"
		c.auditAddrs = []string{addr}
		c.auditPassword = password
	})
}

// WithRedisAudit appends every prediction to a Redis stream.
func WithRedisAudit(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.auditDriver = "redis"
		c.auditAddrs = []string{addr}
		c.auditPassword = password
	})
}

// WithSQLiteAudit records every prediction in a SQLite database.
func WithSQLiteAudit(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.auditDriver = "sqlite"
		c.auditDSN = dsn
	})
}

// WithAuditBuffer sets how many audit entries may wait for the writer.
// Entries beyond it are dropped. Default: 1024.
func WithAuditBuffer(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.auditBuffer = n
	})
}

// WithAuditTextLimit sets how many characters of input are kept per audit entry. Default: 500.
func WithAuditTextLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.textLimit = n
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
