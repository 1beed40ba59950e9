// Package config contains the server's runtime configuration and its
// validation rules.
package config

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultMaxConcurrentRangeReads bounds the fan-out of a single spatial
	// search across planned key ranges.
	DefaultMaxConcurrentRangeReads = 8

	// DefaultCacheLimit is the maximum number of entries held by the
	// datastore record cache.
	DefaultCacheLimit = 10_000
)

// DatastoreMetricsConfig defines whether DB stats are exported.
type DatastoreMetricsConfig struct {
	// Enabled enables export of the database connection pool stats.
	Enabled bool
}

// DatastoreConfig defines the datastore engine and its connection settings.
type DatastoreConfig struct {
	// Engine is the datastore engine to use (memory, sqlite, postgres).
	Engine string
	URI    string

	// MaxOpenConns is the maximum number of open connections to the
	// database.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of connections to the datastore in
	// the idle connection pool.
	MaxIdleConns int

	// ConnMaxIdleTime is the maximum amount of time a connection to the
	// datastore may be idle.
	ConnMaxIdleTime time.Duration

	// ConnMaxLifetime is the maximum amount of time a connection to the
	// datastore may be reused.
	ConnMaxLifetime time.Duration

	Metrics DatastoreMetricsConfig
}

// CacheConfig defines the record cache in front of the datastore.
type CacheConfig struct {
	Enabled bool
	Limit   int
}

// HTTPConfig defines the HTTP listener.
type HTTPConfig struct {
	Enabled bool
	Addr    string

	CORSAllowedOrigins []string
	CORSAllowedHeaders []string
}

// MetricsConfig defines the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// TraceConfig defines OTLP trace export.
type TraceConfig struct {
	Enabled      bool
	OTLPEndpoint string
	SampleRatio  float64
	ServiceName  string
}

// LogConfig defines logging.
type LogConfig struct {
	// Format is the log format (text or json).
	Format string

	// Level is the log level (none, debug, info, warn, error, panic, fatal).
	Level string
}

// Config is the server's runtime configuration.
type Config struct {
	// RequestTimeout configures the maximum time a request may run. Zero
	// disables the limit.
	RequestTimeout time.Duration

	// MaxConcurrentRangeReads bounds the fan-out of one spatial search.
	MaxConcurrentRangeReads int

	Datastore DatastoreConfig
	Cache     CacheConfig
	HTTP      HTTPConfig
	Metrics   MetricsConfig
	Trace     TraceConfig
	Log       LogConfig
}

// Verify checks the config for invalid combinations before the server
// starts.
func (cfg *Config) Verify() error {
	switch cfg.Datastore.Engine {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("config 'datastore.engine' must be one of 'memory', 'sqlite' or 'postgres', got %q", cfg.Datastore.Engine)
	}

	if cfg.Datastore.Engine != "memory" && cfg.Datastore.URI == "" {
		return fmt.Errorf("config 'datastore.uri' is required for engine %q", cfg.Datastore.Engine)
	}

	if cfg.MaxConcurrentRangeReads <= 0 {
		return fmt.Errorf("config 'maxConcurrentRangeReads' must be positive")
	}

	if cfg.Cache.Enabled && cfg.Cache.Limit <= 0 {
		return fmt.Errorf("config 'cache.limit' must be positive when the cache is enabled")
	}

	if cfg.Trace.Enabled {
		if cfg.Trace.SampleRatio < 0 || cfg.Trace.SampleRatio > 1 || math.IsNaN(cfg.Trace.SampleRatio) {
			return fmt.Errorf("config 'trace.sampleRatio' must be in [0, 1]")
		}
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config 'log.format' must be one of 'text' or 'json'")
	}

	switch cfg.Log.Level {
	case "none", "debug", "info", "warn", "error", "panic", "fatal":
	default:
		return fmt.Errorf("config 'log.level' must be one of 'none', 'debug', 'info', 'warn', 'error', 'panic' or 'fatal'")
	}

	return nil
}

// DefaultConfig is the server's default configuration. Flag, env and file
// overrides are layered on top of it.
func DefaultConfig() *Config {
	return &Config{
		RequestTimeout:          3 * time.Second,
		MaxConcurrentRangeReads: DefaultMaxConcurrentRangeReads,
		Datastore: DatastoreConfig{
			Engine:       "memory",
			MaxOpenConns: 30,
			MaxIdleConns: 10,
		},
		Cache: CacheConfig{
			Enabled: true,
			Limit:   DefaultCacheLimit,
		},
		HTTP: HTTPConfig{
			Enabled:            true,
			Addr:               "0.0.0.0:8080",
			CORSAllowedOrigins: []string{"*"},
			CORSAllowedHeaders: []string{"*"},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    "0.0.0.0:2112",
		},
		Trace: TraceConfig{
			Enabled:      false,
			OTLPEndpoint: "0.0.0.0:4317",
			SampleRatio:  0.2,
			ServiceName:  "shambalink",
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
	}
}
