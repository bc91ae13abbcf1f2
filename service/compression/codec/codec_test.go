package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs(t *testing.T) {
	payload := `{"nodes":{"root":{"id":"root","label":"Initial state"}},"cursor":"root","root":"root"}` +
		strings.Repeat(`{"id":"n","type":"default","position":{"x":1,"y":2}}`, 200)

	for _, name := range []string{NameZstd, NameGzip, ""} {
		t.Run("codec "+name, func(t *testing.T) {
			c, err := ByName(name)
			require.NoError(t, err)

			compressed, err := c.Compress(payload)
			require.NoError(t, err)
			assert.Less(t, len(compressed), len(payload))

			restored, err := c.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, restored)

			empty, err := c.Compress("")
			require.NoError(t, err)
			restored, err = c.Decompress(empty)
			require.NoError(t, err)
			assert.Equal(t, "", restored)

			_, err = c.Compress("bad \xff\xfe")
			assert.ErrorIs(t, err, ErrMalformedInput)

			_, err = c.Decompress("%%% not base64")
			assert.ErrorIs(t, err, ErrMalformedInput)

			_, err = c.Decompress("aGVsbG8gd29ybGQ=")
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestByName(t *testing.T) {
	_, err := ByName("lz4")
	assert.ErrorIs(t, err, ErrUnknownCodec)

	c, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, NameZstd, c.Name())
}
