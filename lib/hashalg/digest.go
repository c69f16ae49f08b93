// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashalg

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// Digest is the output of one hash algorithm over a byte sequence.
// Digests produced by this module are never modified after creation;
// callers must not modify Value either.
//
// The struct tags serve both encoding/json and CBOR (fxamacker/cbor
// falls back to json tags).
type Digest struct {
	Algorithm Algorithm `json:"algo"`
	Value     []byte    `json:"value"`
}

// Equal reports whether d and other have the same algorithm and the
// same digest bytes. The byte comparison is constant-time.
func (d Digest) Equal(other Digest) bool {
	if d.Algorithm != other.Algorithm || len(d.Value) != len(other.Value) {
		return false
	}
	return subtle.ConstantTimeCompare(d.Value, other.Value) == 1
}

// Hex returns the lowercase hex encoding of the digest value.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.Value)
}

// String returns the text form produced by [FormatDigest].
func (d Digest) String() string {
	return FormatDigest(d)
}

// FormatDigest returns the "name:base64" text form of a digest, where
// name is the algorithm's wire name and base64 is standard padded
// base64. This is the canonical format for logs and command-line
// output.
func FormatDigest(d Digest) string {
	return d.Algorithm.String() + ":" + base64.StdEncoding.EncodeToString(d.Value)
}

// ParseDigest parses the "name:base64" text form. The value must be
// valid standard base64. For algorithms with a known size, the decoded
// length must match [Size]; digests with an unknown algorithm name are
// accepted with any non-empty length and parse to [Unknown], so a peer
// advertising a function this package cannot evaluate does not make
// the whole digest set unreadable.
func ParseDigest(text string) (Digest, error) {
	name, encoded, found := strings.Cut(text, ":")
	if !found {
		return Digest{}, fmt.Errorf("parsing digest %q: missing ':' separator", text)
	}
	algorithm := Parse(name)

	value, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Digest{}, fmt.Errorf("parsing %s digest: %w", name, err)
	}
	if len(value) == 0 {
		return Digest{}, fmt.Errorf("parsing %s digest: empty value", name)
	}
	if size := Size(algorithm); size != 0 && len(value) != size {
		return Digest{}, fmt.Errorf("%s digest is %d bytes, want %d", algorithm, len(value), size)
	}
	return Digest{Algorithm: algorithm, Value: value}, nil
}
