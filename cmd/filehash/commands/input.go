// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/filehash/cmd/filehash/cli"
	"github.com/bureau-foundation/filehash/lib/decompress"
)

// stdinName is the FILE argument that reads standard input.
const stdinName = "-"

// input is an opened FILE argument, decompressed if requested.
type input struct {
	name      string
	mediaType string
	reader    io.Reader
	closers   []io.Closer
}

// Close releases the decoder and the file, in that order.
func (in *input) Close() error {
	var errs []error
	for _, closer := range in.closers {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

// openInput opens path (or standard input for "-") and applies the
// decompression named by format: none, zstd, lz4, or auto to detect
// the format from the first bytes.
func openInput(streams Streams, path, format string) (*input, error) {
	in := &input{name: path}

	var source io.Reader
	if path == stdinName {
		source = streams.In
	} else {
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, cli.NotFound("%s: no such file", path)
			}
			return nil, cli.Internal("opening %s: %w", path, err)
		}
		in.closers = append(in.closers, file)
		in.mediaType = mime.TypeByExtension(filepath.Ext(path))
		source = file
	}

	var compression decompress.Format
	if format == "auto" {
		detected, rewound, err := detectFormat(source)
		if err != nil {
			in.Close()
			return nil, cli.Internal("reading %s: %w", path, err)
		}
		compression, source = detected, rewound
	} else {
		parsed, err := decompress.ParseFormat(format)
		if err != nil {
			in.Close()
			return nil, cli.Validation("%w", err)
		}
		compression = parsed
	}

	// Uncompressed files are hashed as the *os.File itself so the
	// engine sees their size and can seek.
	if compression == decompress.FormatNone {
		in.reader = source
		return in, nil
	}

	decoder, err := decompress.NewReader(source, compression)
	if err != nil {
		in.Close()
		return nil, cli.Internal("%s: %w", path, err)
	}
	in.closers = append([]io.Closer{decoder}, in.closers...)
	in.reader = decoder
	// The media type describes the compressed container, not the
	// content being hashed.
	in.mediaType = ""
	return in, nil
}

// detectFormat reads the first bytes of source to identify its
// compression, then returns a reader positioned at the start again:
// source itself when it can seek back, otherwise the consumed bytes
// stitched in front of the remainder.
func detectFormat(source io.Reader) (decompress.Format, io.Reader, error) {
	header := make([]byte, 4)
	n, err := io.ReadFull(source, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, nil, err
	}
	header = header[:n]
	format := decompress.Detect(header)

	if seeker, ok := source.(io.Seeker); ok {
		if _, err := seeker.Seek(int64(-n), io.SeekCurrent); err == nil {
			return format, source, nil
		}
	}
	return format, io.MultiReader(bytes.NewReader(header), source), nil
}
