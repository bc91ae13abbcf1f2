package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Gzip compresses with gzip, for stores that must stay readable by
// standard tooling.
type Gzip struct {
	level int
}

// NewGzip creates a gzip codec using the default compression level.
func NewGzip() *Gzip {
	return &Gzip{level: gzip.DefaultCompression}
}

// Name returns "gzip".
func (g *Gzip) Name() string { return NameGzip }

// Compress encodes data.
func (g *Gzip) Compress(data string) (string, error) {
	if err := checkText(data); err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	w, err := gzip.NewWriterLevel(buf, g.level)
	if err != nil {
		return "", err
	}
	if _, err = io.WriteString(w, data); err != nil {
		return "", err
	}
	if err = w.Close(); err != nil {
		return "", err
	}
	return encode(buf.Bytes()), nil
}

// Decompress restores data produced by Compress.
func (g *Gzip) Decompress(data string) (string, error) {
	raw, err := decode(data)
	if err != nil {
		return "", err
	}
	r, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return string(out), nil
}

// Close is a no-op; gzip writers and readers live for one call.
func (g *Gzip) Close() error { return nil }
