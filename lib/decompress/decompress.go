// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decompress

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies the framing of a compressed stream.
type Format uint8

const (
	// FormatNone passes the stream through unchanged.
	FormatNone Format = iota

	// FormatZstd is a Zstandard frame sequence (RFC 8878).
	FormatZstd

	// FormatLZ4 is an LZ4 frame sequence. Raw LZ4 blocks carry no
	// length and are not accepted.
	FormatLZ4
)

// String returns the name used on the command line.
func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// ParseFormat parses a format name. The empty string means none.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return FormatNone, nil
	case "zstd", "zst":
		return FormatZstd, nil
	case "lz4":
		return FormatLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression format %q (want none, zstd, or lz4)", name)
	}
}

// Magic numbers at the start of each frame format.
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect identifies the format from the first bytes of a stream.
// Anything unrecognized is FormatNone.
func Detect(header []byte) Format {
	switch {
	case hasPrefix(header, zstdMagic):
		return FormatZstd
	case hasPrefix(header, lz4Magic):
		return FormatLZ4
	default:
		return FormatNone
	}
}

func hasPrefix(header, magic []byte) bool {
	return len(header) >= len(magic) && string(header[:len(magic)]) == string(magic)
}

// NewReader returns a reader producing the decompressed content of
// source. Close releases decoder resources; it does not close source.
func NewReader(source io.Reader, format Format) (io.ReadCloser, error) {
	switch format {
	case FormatNone:
		return io.NopCloser(source), nil

	case FormatZstd:
		// One decoding goroutine per stream: the hashing pool already
		// spreads work across cores.
		decoder, err := zstd.NewReader(source,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
		)
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		return &zstdReader{decoder: decoder}, nil

	case FormatLZ4:
		return io.NopCloser(&lz4Reader{reader: lz4.NewReader(source)}), nil

	default:
		return nil, fmt.Errorf("unsupported compression format %s", format)
	}
}

// zstdReader adapts *zstd.Decoder, whose Close has no error result,
// and labels decode failures.
type zstdReader struct {
	decoder *zstd.Decoder
}

func (r *zstdReader) Read(p []byte) (int, error) {
	n, err := r.decoder.Read(p)
	if err != nil && err != io.EOF {
		err = fmt.Errorf("zstd decompress: %w", err)
	}
	return n, err
}

func (r *zstdReader) Close() error {
	r.decoder.Close()
	return nil
}

type lz4Reader struct {
	reader *lz4.Reader
}

func (r *lz4Reader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if err != nil && err != io.EOF {
		err = fmt.Errorf("lz4 decompress: %w", err)
	}
	return n, err
}
