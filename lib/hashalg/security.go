// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashalg

// IsSecure reports whether a digest computed with the algorithm may be
// relied on to detect tampering. Broken functions (MD2, MD5, SHA-1),
// the extendable-output SHAKE functions, and unknown algorithms are
// not secure.
func IsSecure(a Algorithm) bool {
	switch a {
	case SHA224, SHA256, SHA384, SHA512,
		SHA3_256, SHA3_512,
		BLAKE2b_256, BLAKE2b_512,
		BLAKE3_256:
		return true
	default:
		return false
	}
}

// priorities orders algorithms for selection among candidate digests.
// Higher is preferred. Digest length dominates; among equal lengths
// SHA-2 < SHA-3 < BLAKE2b < BLAKE3 because the later functions hash
// faster in software. No two algorithms share a value.
var priorities = [algorithmCount]int{
	Unknown:     0,
	MD2:         1,
	MD5:         2,
	SHAKE128:    3,
	SHA1:        4,
	SHAKE256:    5,
	SHA224:      6,
	SHA256:      7,
	SHA3_256:    8,
	BLAKE2b_256: 9,
	BLAKE3_256:  10,
	SHA384:      11,
	SHA512:      12,
	SHA3_512:    13,
	BLAKE2b_512: 14,
}

// Priority returns the preference rank of the algorithm. Out-of-range
// values rank with [Unknown] at 0.
func Priority(a Algorithm) int {
	if a >= algorithmCount {
		return 0
	}
	return priorities[a]
}

// Strongest returns the candidate that should be checked when a remote
// party advertises several digests of the same content: candidates
// with an empty value or an insecure algorithm are ignored, and the
// highest-priority survivor is returned. The second result is false
// when no candidate survives.
//
// Only one candidate is ever selected. Checking a weaker digest when
// a stronger one is present would let an attacker who controls the
// metadata pick which function the content is checked against.
func Strongest(candidates []Digest) (Digest, bool) {
	var best Digest
	found := false
	for _, candidate := range candidates {
		if len(candidate.Value) == 0 || !IsSecure(candidate.Algorithm) {
			continue
		}
		if !found || Priority(candidate.Algorithm) > Priority(best.Algorithm) {
			best = candidate
			found = true
		}
	}
	return best, found
}
