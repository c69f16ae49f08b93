// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashengine

import (
	"context"
	"io"

	"github.com/bureau-foundation/filehash/lib/hashalg"
)

// Verify checks source against digests advertised by a remote peer
// and delivers exactly one Verification on the returned channel.
//
// Candidates are untrusted. Those with an empty value or an insecure
// algorithm are discarded; if none remain the verdict is
// VerdictNoStrongHashes and the stream is not read at all. Otherwise
// only the highest-priority remaining candidate is computed and
// compared. Mismatches in weaker candidates are never consulted, so a
// peer cannot steer verification toward a weaker function.
//
// Like Compute, Verify does not block: when the hash completes
// synchronously (small inputs, precondition failures) the verdict is
// waiting on the channel when Verify returns.
func (e *Engine) Verify(ctx context.Context, source io.Reader, candidates []hashalg.Digest) <-chan Verification {
	result := make(chan Verification, 1)

	candidate, found := hashalg.Strongest(candidates)
	if !found {
		e.logger.Debug("verification skipped: no strong hashes",
			"candidates", len(candidates),
		)
		result <- Verification{Verdict: VerdictNoStrongHashes, Source: source}
		return result
	}

	hashing := e.Compute(ctx, source, []hashalg.Algorithm{candidate.Algorithm})
	select {
	case outcome := <-hashing:
		result <- e.judge(candidate, outcome)
	default:
		go func() {
			result <- e.judge(candidate, <-hashing)
		}()
	}
	return result
}

// VerifySync is Verify for callers that want to wait for the verdict
// on the current goroutine.
func (e *Engine) VerifySync(ctx context.Context, source io.Reader, candidates []hashalg.Digest) Verification {
	return <-e.Verify(ctx, source, candidates)
}

// judge maps a hashing outcome for the selected candidate to a
// verdict.
func (e *Engine) judge(candidate hashalg.Digest, outcome Outcome) Verification {
	verification := Verification{Candidate: candidate, Source: outcome.Source}

	switch outcome.Status {
	case StatusSuccess:
		computed := outcome.Digests[0]
		verification.Computed = computed
		if computed.Equal(candidate) {
			verification.Verdict = VerdictVerified
		} else {
			verification.Verdict = VerdictNotMatching
		}
	case StatusCancelled:
		verification.Verdict = VerdictCancelled
	default:
		verification.Verdict = VerdictError
		verification.Err = outcome.Err
	}

	e.logger.Debug("verification finished",
		"verdict", verification.Verdict.String(),
		"algorithm", candidate.Algorithm.String(),
	)
	return verification
}
