// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashengine

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/filehash/lib/hashalg"
)

// Status is the terminal state of a hashing request.
type Status uint8

const (
	// StatusSuccess means every requested digest was computed.
	StatusSuccess Status = iota

	// StatusCancelled means the request's context was done at an
	// iteration boundary before the stream was fully hashed.
	StatusCancelled

	// StatusError means the stream failed its readability
	// precondition, a read failed, or a unit could not be run.
	StatusError
)

// String returns the human-readable name of a status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusCancelled:
		return "cancelled"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Outcome is the result of [Engine.Compute].
type Outcome struct {
	Status Status

	// Digests holds one digest per requested algorithm, in request
	// order. Set only when Status is StatusSuccess.
	Digests []hashalg.Digest

	// Err is the failure cause. Set only when Status is StatusError.
	Err error

	// Source is the stream passed to Compute, returned to the caller
	// on every outcome.
	Source io.Reader
}

// Digest returns the computed digest for the algorithm, if it was
// requested and the request succeeded.
func (o Outcome) Digest(algorithm hashalg.Algorithm) (hashalg.Digest, bool) {
	for _, digest := range o.Digests {
		if digest.Algorithm == algorithm {
			return digest, true
		}
	}
	return hashalg.Digest{}, false
}

// Verdict is the terminal state of a verification request.
type Verdict uint8

const (
	// VerdictVerified means the strongest secure candidate matched the
	// locally computed digest.
	VerdictVerified Verdict = iota

	// VerdictNotMatching means the strongest secure candidate did not
	// match. The content is corrupted or was tampered with and must
	// not be used.
	VerdictNotMatching

	// VerdictNoStrongHashes means none of the candidates used a secure
	// algorithm (or all were empty), so nothing was checked. The peer
	// supplied no trustworthy integrity metadata; callers should warn
	// rather than fail hard.
	VerdictNoStrongHashes

	// VerdictCancelled means hashing was cancelled before completion.
	VerdictCancelled

	// VerdictError means hashing failed; see Verification.Err.
	VerdictError
)

// String returns the human-readable name of a verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictVerified:
		return "verified"
	case VerdictNotMatching:
		return "not_matching"
	case VerdictNoStrongHashes:
		return "no_strong_hashes"
	case VerdictCancelled:
		return "cancelled"
	case VerdictError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(v))
	}
}

// Verification is the result of [Engine.Verify].
type Verification struct {
	Verdict Verdict

	// Candidate is the advertised digest that was checked. Zero when
	// the verdict is VerdictNoStrongHashes.
	Candidate hashalg.Digest

	// Computed is the locally computed digest. Set only for
	// VerdictVerified and VerdictNotMatching.
	Computed hashalg.Digest

	// Err is the failure cause. Set only when Verdict is VerdictError.
	Err error

	// Source is the stream passed to Verify, returned to the caller on
	// every verdict.
	Source io.Reader
}
