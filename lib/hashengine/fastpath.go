// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashengine

import (
	"io"

	"github.com/bureau-foundation/filehash/lib/chunkread"
	"github.com/bureau-foundation/filehash/lib/hashalg"
)

// fastPath hashes a small seekable stream on the calling goroutine,
// one full pass per algorithm. Re-reading a few kilobytes per
// algorithm is cheaper than scheduling units on the pool. It is not
// cancellable.
func (e *Engine) fastPath(source io.Reader, reader *chunkread.Reader, algorithms []hashalg.Algorithm) Outcome {
	size, _ := reader.Size()
	logger := e.logger.With(
		"path", "fast",
		"size", size,
		"algorithms", algorithmNames(algorithms),
	)

	hashers := newHashers(algorithms)
	for i, hasher := range hashers {
		if err := reader.Rewind(); err != nil {
			logger.Debug("hash request failed", "error", err)
			return Outcome{Status: StatusError, Err: err, Source: source}
		}
		if _, err := reader.WriteTo(hasher); err != nil {
			logger.Debug("hash request failed", "algorithm", algorithms[i].String(), "error", err)
			return Outcome{Status: StatusError, Err: err, Source: source}
		}
	}

	logger.Debug("hash request complete", "status", StatusSuccess.String())
	return Outcome{
		Status:  StatusSuccess,
		Digests: finalize(algorithms, hashers),
		Source:  source,
	}
}
