// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package filemeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/filehash/lib/chunkread"
	"github.com/bureau-foundation/filehash/lib/codec"
	"github.com/bureau-foundation/filehash/lib/hashalg"
	"github.com/bureau-foundation/filehash/lib/hashengine"
)

// DefaultAlgorithms are computed for outgoing files when the caller
// does not choose. One SHA-2 digest for peers with older hash support
// and one BLAKE2b digest for speed.
var DefaultAlgorithms = []hashalg.Algorithm{hashalg.SHA256, hashalg.BLAKE2b_256}

// ErrCancelled is returned by Compute when hashing was cancelled.
var ErrCancelled = errors.New("hashing cancelled")

// Metadata describes one shared file.
type Metadata struct {
	Name        string           `json:"name"`
	MediaType   string           `json:"media_type,omitempty"`
	Size        int64            `json:"size"`
	Hashes      []hashalg.Digest `json:"hashes"`
	Description string           `json:"description,omitempty"`
}

// Compute hashes source with algorithms and returns a record for it.
// Size is taken from source when it can be determined up front and
// counted while hashing otherwise.
func Compute(ctx context.Context, engine *hashengine.Engine, name, mediaType string, source io.Reader, algorithms []hashalg.Algorithm) (*Metadata, error) {
	if len(algorithms) == 0 {
		algorithms = DefaultAlgorithms
	}

	// Checked here because the counting wrapper hides the source's
	// own readability reporting from the engine.
	if err := chunkread.CheckReadable(source); err != nil {
		return nil, fmt.Errorf("computing metadata for %s: %w", name, err)
	}

	size, known := chunkread.Size(source)
	var counter *countingReader
	if !known {
		counter = &countingReader{reader: source}
		source = counter
	}

	outcome := engine.Hash(ctx, source, algorithms)
	switch outcome.Status {
	case hashengine.StatusSuccess:
	case hashengine.StatusCancelled:
		return nil, fmt.Errorf("computing metadata for %s: %w: %w", name, ErrCancelled, context.Cause(ctx))
	default:
		return nil, fmt.Errorf("computing metadata for %s: %w", name, outcome.Err)
	}

	if counter != nil {
		size = counter.count
	}
	return &Metadata{
		Name:      name,
		MediaType: mediaType,
		Size:      size,
		Hashes:    outcome.Digests,
	}, nil
}

// ComputeFile opens path and computes its record. The name is the
// base name of path and the media type is guessed from its extension.
func ComputeFile(ctx context.Context, engine *hashengine.Engine, path string, algorithms []hashalg.Algorithm) (*Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	name := filepath.Base(path)
	return Compute(ctx, engine, name, mime.TypeByExtension(filepath.Ext(name)), file, algorithms)
}

// Verify checks source against the record's digests. See
// [hashengine.Engine.Verify] for how candidates are chosen.
func (m *Metadata) Verify(ctx context.Context, engine *hashengine.Engine, source io.Reader) hashengine.Verification {
	return engine.VerifySync(ctx, source, m.Hashes)
}

// Digest returns the record's digest for algorithm, if present.
func (m *Metadata) Digest(algorithm hashalg.Algorithm) (hashalg.Digest, bool) {
	for _, digest := range m.Hashes {
		if digest.Algorithm == algorithm {
			return digest, true
		}
	}
	return hashalg.Digest{}, false
}

// Marshal encodes the record as deterministic CBOR.
func (m *Metadata) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

// Encode writes the record to w as one deterministic CBOR item.
func (m *Metadata) Encode(w io.Writer) error {
	if err := codec.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("encoding file metadata: %w", err)
	}
	return nil
}

// Unmarshal decodes a CBOR record. Digests for algorithms this module
// does not recognize are kept with [hashalg.Unknown]; they are never
// selected for verification.
func Unmarshal(data []byte) (*Metadata, error) {
	var metadata Metadata
	if err := codec.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("decoding file metadata: %w", err)
	}
	return checkDecoded(&metadata)
}

// Decode reads one CBOR record from r. The decoder buffers, so r
// should hold nothing else the caller needs.
func Decode(r io.Reader) (*Metadata, error) {
	var metadata Metadata
	if err := codec.NewDecoder(r).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("decoding file metadata: %w", err)
	}
	return checkDecoded(&metadata)
}

func checkDecoded(metadata *Metadata) (*Metadata, error) {
	if metadata.Size < 0 {
		return nil, fmt.Errorf("decoding file metadata: negative size %d", metadata.Size)
	}
	return metadata, nil
}

// countingReader counts bytes read through it.
type countingReader struct {
	reader io.Reader
	count  int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.count += int64(n)
	return n, err
}
