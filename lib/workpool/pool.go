// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workpool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
)

// ErrClosed is returned by Submit after Close has been called.
var ErrClosed = errors.New("workpool: pool is closed")

// Config holds the parameters for starting a Pool. All fields have
// sensible defaults.
type Config struct {
	// Workers is the number of goroutines running units. If zero or
	// negative, defaults to max(runtime.NumCPU(), 4). Hashing is
	// CPU-bound and reading is I/O-bound, so a few more workers than
	// cores keeps both busy.
	Workers int

	// QueueSize is the number of submitted units that may wait for a
	// free worker before Submit blocks. If zero or negative, defaults
	// to 4 × Workers.
	QueueSize int

	// Logger receives operational messages (pool start/stop, recovered
	// panics). If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Unit is a unit of work with an optional panic hook.
type Unit struct {
	// Run performs the work.
	Run func()

	// OnPanic, if set, is called on the worker goroutine with the
	// recovered value when Run panics.
	OnPanic func(recovered any)
}

// Pool is a fixed-size goroutine pool. Pool is safe for concurrent
// use.
type Pool struct {
	logger *slog.Logger

	queue chan Unit

	// mu guards closed and serializes Close against in-progress
	// submissions so that queue is never sent on after it is closed.
	mu     sync.RWMutex
	closed bool

	workers sync.WaitGroup
	size    int
}

// New starts a pool. The caller must call Close when the pool is no
// longer needed.
func New(cfg Config) *Pool {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = max(runtime.NumCPU(), 4)
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 4 * workers
	}

	pool := &Pool{
		logger: logger,
		queue:  make(chan Unit, queueSize),
		size:   workers,
	}
	pool.workers.Add(workers)
	for range workers {
		go pool.work()
	}

	logger.Debug("work pool started",
		"workers", workers,
		"queue_size", queueSize,
	)
	return pool
}

// Size returns the number of worker goroutines.
func (p *Pool) Size() int {
	return p.size
}

// Submit queues fn to run on a worker goroutine. It blocks while the
// queue is full, until a slot frees or ctx is done. Returns ErrClosed
// if the pool has been closed, or the context's error if ctx ended
// first. A nil error means fn will run exactly once.
func (p *Pool) Submit(ctx context.Context, fn func()) error {
	return p.SubmitUnit(ctx, Unit{Run: fn})
}

// SubmitUnit is Submit with a panic hook.
func (p *Pool) SubmitUnit(ctx context.Context, unit Unit) error {
	if unit.Run == nil {
		panic("BUG: workpool: SubmitUnit called with nil Run")
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	select {
	case p.queue <- unit:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("workpool: submit: %w", context.Cause(ctx))
	}
}

// Close stops accepting new units, runs every unit already queued,
// and waits for all workers to exit. Calling Close more than once is
// safe.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.workers.Wait()
	p.logger.Debug("work pool stopped", "workers", p.size)
}

func (p *Pool) work() {
	defer p.workers.Done()
	for unit := range p.queue {
		p.run(unit)
	}
}

func (p *Pool) run(unit Unit) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		p.logger.Error("work unit panicked", "panic", recovered)
		if unit.OnPanic != nil {
			unit.OnPanic(recovered)
		}
	}()
	unit.Run()
}
