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

// eventKind identifies which unit reported an event.
type eventKind uint8

const (
	eventRead eventKind = iota
	eventFed
)

// event is sent by a unit to the orchestrating goroutine when the
// unit finishes. It is the only way units communicate with the
// request.
type event struct {
	kind eventKind

	// chunk is the filled portion of the read buffer (eventRead).
	chunk []byte

	// err is a read failure (eventRead) or a recovered panic (either
	// kind).
	err error
}

// request is the state of one streaming hash computation. Every field
// is owned by the goroutine running run; units see only the values
// captured in their closures and the events channel.
type request struct {
	ctx    context.Context
	pool   Pool
	logger *slog.Logger

	source     io.Reader
	reader     *chunkread.Reader
	algorithms []hashalg.Algorithm
	hashers    []hash.Hash

	// buffers are the two chunk buffers at full length. readIndex
	// selects the one the next read unit fills; the other one backs
	// the process chunk.
	buffers   [2][]byte
	readIndex int

	// events has room for every unit of one iteration, so a unit
	// never blocks reporting.
	events chan event
	result chan<- Outcome

	iterations int
}

func newRequest(
	ctx context.Context,
	engine *Engine,
	source io.Reader,
	reader *chunkread.Reader,
	algorithms []hashalg.Algorithm,
	result chan<- Outcome,
) *request {
	bufferSize := engine.bufferSize(reader)
	size, known := reader.Size()
	if !known {
		size = -1
	}
	return &request{
		ctx:  ctx,
		pool: engine.pool,
		logger: engine.logger.With(
			"path", "streaming",
			"size", size,
			"buffer_size", bufferSize,
			"algorithms", algorithmNames(algorithms),
		),
		source:     source,
		reader:     reader,
		algorithms: algorithms,
		hashers:    newHashers(algorithms),
		buffers:    [2][]byte{make([]byte, bufferSize), make([]byte, bufferSize)},
		events:     make(chan event, len(algorithms)+1),
		result:     result,
	}
}

// run drives the request to a terminal outcome. Each pass of the loop
// is one iteration: schedule the units, wait for all of them, then
// act at the iteration boundary.
func (r *request) run() {
	r.logger.Debug("hash request started")

	// The chunk hashed during the current iteration. Empty on the
	// first iteration, when nothing has been read yet.
	var process []byte

	for {
		r.iterations++
		exhausted := r.reader.AtEnd()

		pending, submitErr := r.schedule(process, exhausted)

		var readChunk []byte
		var unitErr error
		for ; pending > 0; pending-- {
			completed := <-r.events
			if completed.err != nil && unitErr == nil {
				unitErr = completed.err
			}
			if completed.kind == eventRead {
				readChunk = completed.chunk
			}
		}

		// Iteration boundary. Every unit of this iteration has
		// finished, so nothing references either buffer.
		if unitErr != nil {
			r.finish(Outcome{Status: StatusError, Err: unitErr})
			return
		}
		if submitErr != nil {
			r.finishSubmitFailure(submitErr)
			return
		}

		process = readChunk
		r.readIndex ^= 1

		if r.ctx.Err() != nil {
			r.finish(Outcome{Status: StatusCancelled})
			return
		}
		if exhausted {
			r.finish(Outcome{
				Status:  StatusSuccess,
				Digests: finalize(r.algorithms, r.hashers),
			})
			return
		}
	}
}

// schedule submits the units of one iteration: a feed unit per
// algorithm when there is a chunk to hash, and a read unit unless the
// stream was already exhausted. Returns the number of units submitted
// and the first submission failure. Submission stops at the first
// failure; units already submitted still run and report.
func (r *request) schedule(process []byte, exhausted bool) (int, error) {
	pending := 0

	if len(process) > 0 {
		for _, hasher := range r.hashers {
			err := r.submit(eventFed, func() event {
				// hash.Hash.Write never returns an error.
				_, _ = hasher.Write(process)
				return event{kind: eventFed}
			})
			if err != nil {
				return pending, err
			}
			pending++
		}
	}

	if !exhausted {
		target := r.buffers[r.readIndex]
		reader := r.reader
		err := r.submit(eventRead, func() event {
			chunk, err := reader.ReadChunk(target)
			return event{kind: eventRead, chunk: chunk, err: err}
		})
		if err != nil {
			return pending, err
		}
		pending++
	}

	return pending, nil
}

// submit queues one unit on the pool. The unit's event is delivered
// whether it returns normally or panics.
func (r *request) submit(kind eventKind, unit func() event) error {
	events := r.events
	return r.pool.SubmitUnit(r.ctx, workpool.Unit{
		Run: func() {
			events <- unit()
		},
		OnPanic: func(recovered any) {
			events <- event{kind: kind, err: fmt.Errorf("hash unit panicked: %v", recovered)}
		},
	})
}

// finishSubmitFailure maps a pool submission failure to an outcome.
// Submission only waits on the context when the pool's queue is full,
// so a context failure here is a cancellation; anything else (a closed
// pool) is an error.
func (r *request) finishSubmitFailure(err error) {
	if r.ctx.Err() != nil && !errors.Is(err, workpool.ErrClosed) {
		r.finish(Outcome{Status: StatusCancelled})
		return
	}
	r.finish(Outcome{Status: StatusError, Err: fmt.Errorf("scheduling hash unit: %w", err)})
}

// finish delivers the outcome. Called exactly once, from run.
func (r *request) finish(outcome Outcome) {
	outcome.Source = r.source

	attributes := []any{
		"status", outcome.Status.String(),
		"bytes", r.reader.Offset(),
		"iterations", r.iterations,
	}
	if outcome.Err != nil {
		attributes = append(attributes, "error", outcome.Err)
	}
	r.logger.Debug("hash request finished", attributes...)

	r.result <- outcome
}
