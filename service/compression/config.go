package compression

import (
	"time"

	"github.com/viant/flowhistory/service/compression/codec"
)

// Config controls the compression service
type Config struct {
	// Worker enables the background worker; when false every request runs
	// on the calling goroutine.
	Worker bool `json:"worker" yaml:"worker"`
	// Timeout bounds the wait for a worker reply.
	Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"gte=0"`
	// Codec names the codec, see codec.ByName.
	Codec string `json:"codec" yaml:"codec" validate:"omitempty,oneof=zstd gzip"`
	// QueueBuffer sizes the worker inbox.
	QueueBuffer int `json:"queueBuffer" yaml:"queueBuffer" validate:"gte=0"`
}

// DefaultConfig returns the default compression configuration
func DefaultConfig() Config {
	return Config{
		Worker:      true,
		Timeout:     10 * time.Second,
		Codec:       codec.NameZstd,
		QueueBuffer: 64,
	}
}

func (c *Config) init() {
	defaults := DefaultConfig()
	if c.Timeout <= 0 {
		c.Timeout = defaults.Timeout
	}
	if c.QueueBuffer <= 0 {
		c.QueueBuffer = defaults.QueueBuffer
	}
	if c.Codec == "" {
		c.Codec = defaults.Codec
	}
}
