// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashengine

import (
	"context"
	"errors"
	"fmt"
	"hash"
	"io"
	"log/slog"

	"github.com/bureau-foundation/filehash/lib/chunkread"
	"github.com/bureau-foundation/filehash/lib/hashalg"
	"github.com/bureau-foundation/filehash/lib/workpool"
)

// DefaultChunkSize is the streaming buffer size. Two buffers of this
// size are allocated per streaming request.
const DefaultChunkSize = 512 * 1024

// DefaultFastPathThreshold is the algorithm-weighted byte count
// (stream size × number of algorithms) below which a seekable stream
// of known size is hashed synchronously without the pool.
const DefaultFastPathThreshold = 32 * 1024

// Pool runs units of work. *workpool.Pool satisfies it; tests may
// wrap one to observe scheduling.
type Pool interface {
	SubmitUnit(ctx context.Context, unit workpool.Unit) error
}

// Config holds the parameters for constructing an Engine. Pool is
// required; all other fields have defaults.
type Config struct {
	// Pool runs the read and feed units of streaming requests. It is
	// shared with the rest of the process and not owned by the
	// Engine: closing it is the caller's job, after every request has
	// delivered its outcome.
	Pool Pool

	// Logger receives per-request debug messages. If nil, a no-op
	// logger is used.
	Logger *slog.Logger

	// ChunkSize is the streaming buffer size in bytes. If zero or
	// negative, defaults to DefaultChunkSize.
	ChunkSize int

	// FastPathThreshold is the algorithm-weighted size below which the
	// fast path is used. Zero means DefaultFastPathThreshold; a
	// negative value disables the fast path.
	FastPathThreshold int64
}

// Engine computes and verifies digests. An Engine is stateless apart
// from its configuration and is safe for concurrent use; any number
// of requests may run at once, sharing the pool.
type Engine struct {
	pool              Pool
	logger            *slog.Logger
	chunkSize         int
	fastPathThreshold int64
}

// New returns an Engine. Returns an error if cfg.Pool is nil.
func New(cfg Config) (*Engine, error) {
	if cfg.Pool == nil {
		return nil, errors.New("hashengine: Pool is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	threshold := cfg.FastPathThreshold
	if threshold == 0 {
		threshold = DefaultFastPathThreshold
	}

	return &Engine{
		pool:              cfg.Pool,
		logger:            logger,
		chunkSize:         chunkSize,
		fastPathThreshold: threshold,
	}, nil
}

// Compute hashes source with every algorithm in algorithms and
// delivers exactly one Outcome on the returned channel. Compute never
// waits on the pool: small seekable inputs are hashed inline before it
// returns (the outcome is already waiting on the channel), larger ones
// are handed to a request goroutine and the pool.
//
// Cancellation is observed through ctx at iteration boundaries only.
//
// algorithms must be non-empty and every entry must satisfy
// [hashalg.Supported]; anything else is a programming error and
// panics. Duplicate entries are hashed independently and appear
// twice in the outcome.
func (e *Engine) Compute(ctx context.Context, source io.Reader, algorithms []hashalg.Algorithm) <-chan Outcome {
	requireSupported(algorithms)
	algorithms = append([]hashalg.Algorithm(nil), algorithms...)

	result := make(chan Outcome, 1)

	if err := chunkread.CheckReadable(source); err != nil {
		e.logger.Debug("hash request rejected", "error", err)
		result <- Outcome{Status: StatusError, Err: err, Source: source}
		return result
	}

	reader := chunkread.NewReader(source)
	if e.useFastPath(reader, len(algorithms)) {
		result <- e.fastPath(source, reader, algorithms)
		return result
	}

	request := newRequest(ctx, e, source, reader, algorithms, result)
	go request.run()
	return result
}

// Hash is Compute for callers that want to wait for the outcome on
// the current goroutine.
func (e *Engine) Hash(ctx context.Context, source io.Reader, algorithms []hashalg.Algorithm) Outcome {
	return <-e.Compute(ctx, source, algorithms)
}

// useFastPath decides between the synchronous and streaming paths.
// The fast path needs a known size (to apply the threshold) and a
// seekable stream (to rewind once per algorithm).
func (e *Engine) useFastPath(reader *chunkread.Reader, algorithmCount int) bool {
	if e.fastPathThreshold < 0 || !reader.Seekable() {
		return false
	}
	size, known := reader.Size()
	if !known {
		return false
	}
	return size*int64(algorithmCount) < e.fastPathThreshold
}

// bufferSize returns the size of each of the two streaming buffers.
// A stream that fits in at most two chunks gets buffers of exactly its
// length, so it is read in one unit instead of two.
func (e *Engine) bufferSize(reader *chunkread.Reader) int {
	size, known := reader.Size()
	if known && size <= 2*int64(e.chunkSize) {
		return max(int(size), 1)
	}
	return e.chunkSize
}

func requireSupported(algorithms []hashalg.Algorithm) {
	if len(algorithms) == 0 {
		panic("BUG: hashengine: no hash algorithms requested")
	}
	for _, algorithm := range algorithms {
		if !hashalg.Supported(algorithm) {
			panic(fmt.Sprintf("BUG: hashengine: unsupported hash algorithm %s requested", algorithm))
		}
	}
}

// newHashers creates one accumulator per algorithm. requireSupported
// has already been checked, so construction cannot fail.
func newHashers(algorithms []hashalg.Algorithm) []hash.Hash {
	hashers := make([]hash.Hash, len(algorithms))
	for i, algorithm := range algorithms {
		hasher, err := hashalg.New(algorithm)
		if err != nil {
			panic("BUG: hashengine: " + err.Error())
		}
		hashers[i] = hasher
	}
	return hashers
}

func finalize(algorithms []hashalg.Algorithm, hashers []hash.Hash) []hashalg.Digest {
	digests := make([]hashalg.Digest, len(algorithms))
	for i, algorithm := range algorithms {
		digests[i] = hashalg.Digest{Algorithm: algorithm, Value: hashers[i].Sum(nil)}
	}
	return digests
}

func algorithmNames(algorithms []hashalg.Algorithm) []string {
	names := make([]string, len(algorithms))
	for i, algorithm := range algorithms {
		names[i] = algorithm.String()
	}
	return names
}
