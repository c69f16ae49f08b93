// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkread

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// ErrNotReadable is returned by [CheckReadable] when the source is
// nil, closed, or reports itself unreadable.
var ErrNotReadable = errors.New("stream is not readable")

// ErrNotSeekable is returned by [Reader.Rewind] when the source does
// not implement io.Seeker.
var ErrNotSeekable = errors.New("stream is not seekable")

// ReadError is a read failure from the underlying source. Offset is
// the number of bytes successfully consumed by the Reader before the
// failure.
type ReadError struct {
	Offset int64
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading stream at offset %d: %v", e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// readabilityReporter is implemented by transport streams that know
// whether they are open.
type readabilityReporter interface {
	Readable() bool
}

// statter is implemented by *os.File and fs.File.
type statter interface {
	Stat() (fs.FileInfo, error)
}

// CheckReadable verifies that source can be read from. This is the
// only precondition on a hashing request and is checked once, before
// any work is scheduled.
func CheckReadable(source io.Reader) error {
	if source == nil {
		return fmt.Errorf("%w: nil source", ErrNotReadable)
	}
	if reporter, ok := source.(readabilityReporter); ok && !reporter.Readable() {
		return ErrNotReadable
	}
	if file, ok := source.(statter); ok {
		info, err := file.Stat()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNotReadable, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%w: %s is a directory", ErrNotReadable, info.Name())
		}
	}
	return nil
}

// Size returns the number of bytes remaining in source from its
// current position, when that can be determined without reading. The
// second result is false for sources of unknown length (pipes,
// network streams, plain io.Readers).
func Size(source io.Reader) (int64, bool) {
	if lengther, ok := source.(interface{ Len() int }); ok {
		return int64(lengther.Len()), true
	}

	seeker, seekable := source.(io.Seeker)
	if !seekable {
		return 0, false
	}

	var total int64
	switch sized := source.(type) {
	case interface{ Size() int64 }:
		total = sized.Size()
	case statter:
		info, err := sized.Stat()
		if err != nil || !info.Mode().IsRegular() {
			return 0, false
		}
		total = info.Size()
	default:
		return 0, false
	}

	position, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false
	}
	return max(total-position, 0), true
}

// Reader reads a source sequentially in caller-sized chunks.
type Reader struct {
	source io.Reader

	// seeker is non-nil when the source supports Rewind. start is the
	// source position when the Reader was created.
	seeker io.Seeker
	start  int64

	// size is the remaining byte count at creation, or -1 if unknown.
	size int64

	offset int64
	ended  bool
}

// NewReader wraps source. The Reader's offset counts from the
// source's current position; Rewind returns to that position.
func NewReader(source io.Reader) *Reader {
	reader := &Reader{source: source, size: -1}
	if size, known := Size(source); known {
		reader.size = size
	}
	if seeker, ok := source.(io.Seeker); ok {
		if position, err := seeker.Seek(0, io.SeekCurrent); err == nil {
			reader.seeker = seeker
			reader.start = position
		}
	}
	return reader
}

// Size returns the byte count the Reader will produce, if it was
// known when the Reader was created.
func (r *Reader) Size() (int64, bool) {
	return r.size, r.size >= 0
}

// Offset returns the number of bytes read since creation or the last
// Rewind.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Seekable reports whether Rewind is available.
func (r *Reader) Seekable() bool {
	return r.seeker != nil
}

// AtEnd reports whether the stream is exhausted: either a previous
// chunk came back short, or the known size has been consumed.
func (r *Reader) AtEnd() bool {
	return r.ended || (r.size >= 0 && r.offset >= r.size)
}

// ReadChunk fills buf from the stream and returns buf truncated to
// the bytes read. The result is shorter than buf only at the end of
// the stream, after which AtEnd reports true. Read failures other
// than end-of-stream are returned as *ReadError alongside whatever
// bytes were read before the failure.
func (r *Reader) ReadChunk(buf []byte) ([]byte, error) {
	n, err := io.ReadFull(r.source, buf)
	r.offset += int64(n)
	switch {
	case err == nil:
		return buf, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		r.ended = true
		return buf[:n], nil
	default:
		return buf[:n], &ReadError{Offset: r.offset, Err: err}
	}
}

// Rewind seeks the source back to the position it had when the
// Reader was created and resets the offset and end-of-stream state.
func (r *Reader) Rewind() error {
	if r.seeker == nil {
		return ErrNotSeekable
	}
	if _, err := r.seeker.Seek(r.start, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding stream to offset %d: %w", r.start, err)
	}
	r.offset = 0
	r.ended = false
	return nil
}

// WriteTo copies the remainder of the stream into w. The fast path
// uses this to feed a whole stream to one accumulator.
func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	n, err := io.Copy(w, r.source)
	r.offset += n
	if err != nil {
		return n, &ReadError{Offset: r.offset, Err: err}
	}
	r.ended = true
	return n, nil
}
