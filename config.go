package flowhistory

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/viant/afs"
	"github.com/viant/flowhistory/model/history"
	"github.com/viant/flowhistory/policy"
	"github.com/viant/flowhistory/service/compression"
	"github.com/viant/flowhistory/service/meta"
	"github.com/viant/flowhistory/service/optimizer"
)

// Store vendors.
const (
	VendorMemory = "memory"
	VendorFS     = "fs"
	VendorRedis  = "redis"
)

// Config is a serialisable representation of the engine configuration. It can
// be populated from JSON or YAML. Zero-valued fields inherit their package
// defaults.
type (
	Config struct {
		History     HistoryConfig      `json:"history" yaml:"history"`
		Optimizer   OptimizerConfig    `json:"optimizer" yaml:"optimizer"`
		Compression compression.Config `json:"compression" yaml:"compression"`
		Store       StoreConfig        `json:"store" yaml:"store"`
		Log         LogConfig          `json:"log" yaml:"log"`
	}

	HistoryConfig struct {
		RedoStrategy string `json:"redoStrategy,omitempty" yaml:"redoStrategy,omitempty" validate:"omitempty,oneof=mostRecent first"`
	}

	OptimizerConfig struct {
		LimitBytes      int      `json:"limitBytes,omitempty" yaml:"limitBytes,omitempty" validate:"gte=0"`
		StripNodeFields []string `json:"stripNodeFields,omitempty" yaml:"stripNodeFields,omitempty"`
		StripViewport   bool     `json:"stripViewport,omitempty" yaml:"stripViewport,omitempty"`
	}

	StoreConfig struct {
		Vendor   string        `json:"vendor" yaml:"vendor" validate:"required,oneof=memory fs redis"`
		BaseURL  string        `json:"baseURL,omitempty" yaml:"baseURL,omitempty" validate:"required_if=Vendor fs"`
		RedisURL string        `json:"redisURL,omitempty" yaml:"redisURL,omitempty" validate:"required_if=Vendor redis"`
		Prefix   string        `json:"prefix,omitempty" yaml:"prefix,omitempty"`
		TTL      time.Duration `json:"ttl,omitempty" yaml:"ttl,omitempty" validate:"gte=0"`
	}

	LogConfig struct {
		Level      string `json:"level,omitempty" yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
		Production bool   `json:"production,omitempty" yaml:"production,omitempty"`
	}
)

// DefaultConfig returns a Config populated with the package defaults. Callers
// may modify the returned struct before passing it to NewFromConfig.
func DefaultConfig() *Config {
	return &Config{
		History:     HistoryConfig{RedoStrategy: history.StrategyMostRecent},
		Optimizer:   OptimizerConfig{LimitBytes: optimizer.DefaultLimitBytes},
		Compression: compression.DefaultConfig(),
		Store:       StoreConfig{Vendor: VendorMemory},
		Log:         LogConfig{Level: "info"},
	}
}

var validate = validator.New()

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Policy returns the storage policy described by the optimizer section.
func (c *Config) Policy() *policy.Policy {
	p := policy.FromConfig(&policy.Config{StripNodeFields: c.Optimizer.StripNodeFields, StripViewport: c.Optimizer.StripViewport})
	if p.IsPassThrough() {
		return nil
	}
	return p
}

// LoadConfig reads a YAML configuration from any afs supported URL. ${env.KEY}
// expressions are expanded; settings missing from the document keep their
// DefaultConfig values.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(afs.New(), "").Load(ctx, URL, ret); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
