// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashengine

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bureau-foundation/filehash/lib/hashalg"
	"github.com/bureau-foundation/filehash/lib/workpool"
)

// newTestEngine returns an engine backed by a private pool that is
// closed when the test ends. cfg.Pool is filled in if nil.
func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	if cfg.Pool == nil {
		pool := workpool.New(workpool.Config{Workers: 4})
		t.Cleanup(pool.Close)
		cfg.Pool = pool
	}
	engine, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return engine
}

// referenceDigest hashes data in one call, independently of the
// engine.
func referenceDigest(t *testing.T, algorithm hashalg.Algorithm, data []byte) hashalg.Digest {
	t.Helper()
	hasher, err := hashalg.New(algorithm)
	if err != nil {
		t.Fatalf("hashalg.New(%v): %v", algorithm, err)
	}
	hasher.Write(data)
	return hashalg.Digest{Algorithm: algorithm, Value: hasher.Sum(nil)}
}

// requireDigests checks that outcome succeeded with one digest per
// algorithm, in order, matching the reference implementation.
func requireDigests(t *testing.T, outcome Outcome, algorithms []hashalg.Algorithm, data []byte) {
	t.Helper()
	if outcome.Status != StatusSuccess {
		t.Fatalf("Status = %v (err %v), want success", outcome.Status, outcome.Err)
	}
	if len(outcome.Digests) != len(algorithms) {
		t.Fatalf("got %d digests, want %d", len(outcome.Digests), len(algorithms))
	}
	for i, algorithm := range algorithms {
		digest := outcome.Digests[i]
		if digest.Algorithm != algorithm {
			t.Errorf("digest %d algorithm = %v, want %v", i, digest.Algorithm, algorithm)
		}
		if len(digest.Value) != hashalg.Size(algorithm) {
			t.Errorf("digest %d (%v) length = %d, want %d", i, algorithm, len(digest.Value), hashalg.Size(algorithm))
		}
		if want := referenceDigest(t, algorithm, data); !digest.Equal(want) {
			t.Errorf("digest %d (%v) = %x, want %x", i, algorithm, digest.Value, want.Value)
		}
	}
}

// unsizedReader hides every optional method of the wrapped reader, so
// the engine sees a stream of unknown size that cannot seek.
type unsizedReader struct {
	reader io.Reader
}

func (r unsizedReader) Read(p []byte) (int, error) { return r.reader.Read(p) }

// exclusiveReader fails the test if Read is ever called concurrently.
type exclusiveReader struct {
	t       *testing.T
	reader  io.Reader
	reading atomic.Bool
	reads   atomic.Int64
}

func (r *exclusiveReader) Read(p []byte) (int, error) {
	if !r.reading.CompareAndSwap(false, true) {
		r.t.Error("concurrent Read on the same stream")
	}
	defer r.reading.Store(false)
	r.reads.Add(1)
	return r.reader.Read(p)
}

// gatedReader serves data but blocks the first Read at or beyond
// gateOffset until release is closed. blocked is closed when the gate
// is reached.
type gatedReader struct {
	data       []byte
	offset     int
	gateOffset int

	blocked chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedReader(data []byte, gateOffset int) *gatedReader {
	return &gatedReader{
		data:       data,
		gateOffset: gateOffset,
		blocked:    make(chan struct{}),
		release:    make(chan struct{}),
	}
}

func (r *gatedReader) Read(p []byte) (int, error) {
	if r.offset >= r.gateOffset {
		r.once.Do(func() {
			close(r.blocked)
			<-r.release
		})
	}
	if r.offset >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.offset:])
	r.offset += n
	return n, nil
}

// untouchableReader fails the test if it is read.
type untouchableReader struct {
	t *testing.T
}

func (r untouchableReader) Read([]byte) (int, error) {
	r.t.Error("stream was read")
	return 0, io.EOF
}

// recordingPool counts submissions to the wrapped pool.
type recordingPool struct {
	inner     *workpool.Pool
	submitted atomic.Int64
}

func (p *recordingPool) SubmitUnit(ctx context.Context, unit workpool.Unit) error {
	p.submitted.Add(1)
	return p.inner.SubmitUnit(ctx, unit)
}

func newRecordingPool(t *testing.T) *recordingPool {
	t.Helper()
	pool := workpool.New(workpool.Config{Workers: 4})
	t.Cleanup(pool.Close)
	return &recordingPool{inner: pool}
}
