package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Zstd compresses with Zstandard. Encoder and decoder are created once and
// are safe for concurrent EncodeAll/DecodeAll calls.
type Zstd struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewZstd creates a Zstandard codec.
func NewZstd() (*Zstd, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &Zstd{encoder: encoder, decoder: decoder}, nil
}

// Name returns "zstd".
func (z *Zstd) Name() string { return NameZstd }

// Compress encodes data.
func (z *Zstd) Compress(data string) (string, error) {
	if err := checkText(data); err != nil {
		return "", err
	}
	return encode(z.encoder.EncodeAll([]byte(data), nil)), nil
}

// Decompress restores data produced by Compress.
func (z *Zstd) Decompress(data string) (string, error) {
	raw, err := decode(data)
	if err != nil {
		return "", err
	}
	out, err := z.decoder.DecodeAll(raw, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return string(out), nil
}

// Close releases the encoder and decoder.
func (z *Zstd) Close() error {
	err := z.encoder.Close()
	z.decoder.Close()
	return err
}
