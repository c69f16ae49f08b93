// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hashengine computes and verifies digests of file payloads
// exchanged over the network.
//
// [Engine.Compute] hashes one byte stream with a set of algorithms at
// once, reading the stream exactly once and never holding more than
// two chunks in memory. [Engine.Verify] checks a stream against the
// digests a remote peer advertised for it, computing only the single
// strongest secure algorithm among them.
//
// # Streaming
//
// Large streams are processed in iterations over two buffers. During
// each iteration one unit of work per algorithm feeds the "process"
// buffer into that algorithm's accumulator while one more unit fills
// the "read" buffer with the next chunk. All units run on a shared
// [workpool.Pool]. When every unit of the iteration has reported back,
// the request's orchestrating goroutine swaps the buffers, polls the
// context for cancellation, and either starts the next iteration or
// finalizes. The orchestrating goroutine is the only code that
// touches request state; units communicate with it only through an
// event channel. Reading chunk k+1 therefore overlaps hashing chunk k,
// each accumulator sees its chunks in stream order, and the buffer
// being hashed is never the buffer being filled.
//
// Cancellation is cooperative and observed only at iteration
// boundaries. A unit already running always finishes.
//
// # Small inputs
//
// When the stream's size is known, the stream is seekable, and
// size × number of algorithms is below [Config.FastPathThreshold],
// Compute skips the pool entirely: it rewinds and hashes the stream
// once per algorithm on the calling goroutine and delivers the outcome
// before returning. Both paths produce identical digests.
//
// # Outcomes
//
// Every request ends with exactly one [Outcome] (or [Verification])
// on the returned channel, and every outcome hands the caller's
// stream back in its Source field, open, with an unspecified read
// position. Cancellation, "no strong hashes", and "not matching" are
// statuses, not errors.
package hashengine
