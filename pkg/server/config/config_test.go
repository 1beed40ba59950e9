package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_is_valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Verify())
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{
			name:   "unknown_datastore_engine",
			mutate: func(cfg *Config) { cfg.Datastore.Engine = "mongodb" },
		},
		{
			name:   "sql_engine_without_uri",
			mutate: func(cfg *Config) { cfg.Datastore.Engine = "postgres" },
		},
		{
			name:   "non_positive_fanout",
			mutate: func(cfg *Config) { cfg.MaxConcurrentRangeReads = 0 },
		},
		{
			name:   "cache_enabled_with_zero_limit",
			mutate: func(cfg *Config) { cfg.Cache.Limit = 0 },
		},
		{
			name: "sample_ratio_out_of_range",
			mutate: func(cfg *Config) {
				cfg.Trace.Enabled = true
				cfg.Trace.SampleRatio = 1.5
			},
		},
		{
			name:   "unknown_log_format",
			mutate: func(cfg *Config) { cfg.Log.Format = "xml" },
		},
		{
			name:   "unknown_log_level",
			mutate: func(cfg *Config) { cfg.Log.Level = "verbose" },
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.mutate(cfg)
			require.Error(t, cfg.Verify())
		})
	}
}

func TestVerify_accepts_sql_engine_with_uri(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Datastore.Engine = "sqlite"
	cfg.Datastore.URI = "file:shambalink.db"
	require.NoError(t, cfg.Verify())
}
