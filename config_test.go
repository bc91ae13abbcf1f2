package flowhistory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flowhistory/policy"
	"github.com/viant/flowhistory/service/compression/codec"
)

func TestConfig_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		mutate      func(c *Config)
		valid       bool
	}{
		{description: "defaults", mutate: func(c *Config) {}, valid: true},
		{description: "unknown vendor", mutate: func(c *Config) { c.Store.Vendor = "s3" }},
		{description: "fs without base url", mutate: func(c *Config) { c.Store.Vendor = VendorFS }},
		{description: "fs with base url", mutate: func(c *Config) { c.Store.Vendor = VendorFS; c.Store.BaseURL = "/tmp/h" }, valid: true},
		{description: "redis without url", mutate: func(c *Config) { c.Store.Vendor = VendorRedis }},
		{description: "negative limit", mutate: func(c *Config) { c.Optimizer.LimitBytes = -1 }},
		{description: "unknown codec", mutate: func(c *Config) { c.Compression.Codec = "lz4" }},
		{description: "unknown redo strategy", mutate: func(c *Config) { c.History.RedoStrategy = "random" }},
		{description: "unknown log level", mutate: func(c *Config) { c.Log.Level = "verbose" }},
	}
	for _, testCase := range testCases {
		cfg := DefaultConfig()
		testCase.mutate(cfg)
		err := cfg.Validate()
		if testCase.valid {
			assert.NoError(t, err, testCase.description)
		} else {
			assert.Error(t, err, testCase.description)
		}
	}
	assert.NoError(t, (*Config)(nil).Validate())
}

func TestConfig_Policy(t *testing.T) {
	cfg := DefaultConfig()
	assert.Nil(t, cfg.Policy())

	cfg.Optimizer.StripNodeFields = []string{policy.FieldSelected}
	cfg.Optimizer.StripViewport = true
	p := cfg.Policy()
	require.NotNil(t, p)
	assert.True(t, p.Strips(policy.FieldSelected))
	assert.True(t, p.StripViewport)
}

func TestLoadConfig(t *testing.T) {
	location := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(location, []byte(`
history:
  redoStrategy: first
optimizer:
  limitBytes: 2048
  stripNodeFields: [selected, dragging, data.preview]
compression:
  worker: false
  timeout: 3s
  codec: gzip
store:
  vendor: fs
  baseURL: /tmp/flowhistory
log:
  level: debug
`), 0o644))

	cfg, err := LoadConfig(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.History.RedoStrategy)
	assert.Equal(t, 2048, cfg.Optimizer.LimitBytes)
	assert.Equal(t, []string{"selected", "dragging", "data.preview"}, cfg.Optimizer.StripNodeFields)
	assert.False(t, cfg.Compression.Worker)
	assert.Equal(t, 3*time.Second, cfg.Compression.Timeout)
	assert.Equal(t, codec.NameGzip, cfg.Compression.Codec)
	assert.Equal(t, 64, cfg.Compression.QueueBuffer, "unset values keep defaults")
	assert.Equal(t, VendorFS, cfg.Store.Vendor)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = LoadConfig(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("store:\n  vendor: s3\n"), 0o644))
	_, err = LoadConfig(context.Background(), invalid)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "warn", Production: true})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))

	_, err = NewLogger(LogConfig{Level: "verbose"})
	assert.Error(t, err)
}
