package config

import (
	"context"
	"time"
)

// ListenerConfig holds the network settings for the HTTP listener.
type ListenerConfig struct {
	Port              int
	ReadHeaderTimeout time.Duration
}

type contextKey struct{}

// WithContext returns a new context carrying the given Config.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext retrieves the Config from the context.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(contextKey{}).(*Config)
	return cfg
}

// Config holds all configuration for the docmodel service.
type Config struct {
	// Database
	DBURL string

	// DB pool
	DBMaxOpenConns int
	DBMaxIdleConns int

	// How long to wait for the initial connection + ping.
	DBConnectTimeout time.Duration

	// Server
	Listener ListenerConfig
	// Management is the dedicated listener for /health, /ready and /metrics.
	// Only used when ManagementListenerEnabled is set; otherwise those routes
	// are served on Listener.
	Management                ListenerConfig
	ManagementListenerEnabled bool
	// ManagementAccessLog enables HTTP access logging for /health, /ready and /metrics.
	ManagementAccessLog bool

	// CORSOrigins is a comma-separated origin allow list. Empty disables CORS;
	// "*" allows any origin.
	CORSOrigins string

	// Body size limit (bytes)
	MaxBodySize int64

	// Graceful shutdown drain timeout (seconds)
	DrainTimeout int

	// MetricsLabels is a comma-separated list of key=value pairs added as
	// constant labels to all Prometheus metrics. Values support ${VAR} expansion.
	MetricsLabels string

	// Tenant used by the seed command. Empty means the root context's tenant.
	SeedTenantID string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DBURL:            "mongodb://localhost:27017",
		DBMaxOpenConns:   25,
		DBMaxIdleConns:   5,
		DBConnectTimeout: 10 * time.Second,
		Listener: ListenerConfig{
			Port:              8080,
			ReadHeaderTimeout: 5 * time.Second,
		},
		Management: ListenerConfig{
			Port:              9090,
			ReadHeaderTimeout: 5 * time.Second,
		},
		MaxBodySize:   4 * 1024 * 1024,
		DrainTimeout:  30,
		MetricsLabels: "service=docmodel",
	}
}
