package codec

import (
	"errors"
	"sync"
)

// Cache hands out one codec per name, creating it on first use.
type Cache struct {
	mu     sync.Mutex
	codecs map[string]Codec
	closed bool
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{codecs: make(map[string]Codec)}
}

// Get returns the cached codec for name; empty selects zstd.
func (c *Cache) Get(name string) (Codec, error) {
	if name == "" {
		name = NameZstd
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	if ret, ok := c.codecs[name]; ok {
		return ret, nil
	}
	ret, err := ByName(name)
	if err != nil {
		return nil, err
	}
	c.codecs[name] = ret
	return ret, nil
}

// Close closes every cached codec. Later Get calls fail with ErrClosed.
func (c *Cache) Close() error {
	c.mu.Lock()
	codecs := c.codecs
	c.codecs = make(map[string]Codec)
	c.closed = true
	c.mu.Unlock()
	var errs []error
	for _, codec := range codecs {
		if err := codec.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
