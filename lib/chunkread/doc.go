// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunkread reads a byte stream in fixed-size chunks for the
// hashing engine.
//
// A [Reader] wraps any io.Reader. [Reader.ReadChunk] fills a caller
// buffer completely unless the stream ends first, so every chunk
// except the last is exactly the buffer size regardless of how the
// underlying source splits its reads. A short chunk marks the end of
// the stream. Any other read failure is returned as a [*ReadError]
// carrying the stream offset.
//
// Stream capabilities are discovered from the source's method set
// rather than declared: [CheckReadable] inspects optional Readable
// and Stat methods, [Size] inspects Len, Size, and Stat, and
// [Reader.Rewind] requires io.Seeker. This lets *os.File,
// *bytes.Reader, *io.SectionReader, and transport-provided streams be
// passed in directly.
//
// A Reader is not safe for concurrent use. The hashing engine reads
// from at most one goroutine at a time per request.
package chunkread
