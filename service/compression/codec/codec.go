// Package codec provides the string-to-string encodings used to compress
// serialized history graphs. Output is base64 text so a compressed graph can
// be stored wherever the uncompressed JSON could.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Codec names.
const (
	NameZstd = "zstd"
	NameGzip = "gzip"
)

var (
	// ErrMalformedInput is returned for input a codec cannot process.
	ErrMalformedInput = errors.New("codec: malformed input")
	// ErrUnknownCodec is returned by ByName for an unsupported name.
	ErrUnknownCodec = errors.New("codec: unknown codec")
	// ErrClosed is returned by a closed Cache.
	ErrClosed = errors.New("codec: closed")
)

// Codec compresses and restores text. Close releases encoder resources; a
// closed codec must not be used again.
type Codec interface {
	Name() string
	Compress(data string) (string, error)
	Decompress(data string) (string, error)
	Close() error
}

// ByName returns the codec registered under name; empty selects zstd.
func ByName(name string) (Codec, error) {
	switch name {
	case "", NameZstd:
		return NewZstd()
	case NameGzip:
		return NewGzip(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

func checkText(data string) error {
	if !utf8.ValidString(data) {
		return fmt.Errorf("%w: input is not valid UTF-8", ErrMalformedInput)
	}
	return nil
}

func encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func decode(data string) ([]byte, error) {
	ret, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return ret, nil
}
