// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashalg

import (
	"fmt"
	"strings"
)

// Algorithm identifies a hash function. The zero value is [Unknown].
// Values are protocol-independent; the wire name is returned by
// [Algorithm.String].
type Algorithm uint8

const (
	Unknown Algorithm = iota
	MD2
	MD5
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
	SHA3_256
	SHA3_512
	BLAKE2b_256
	BLAKE2b_512
	SHAKE128
	SHAKE256
	BLAKE3_256

	// algorithmCount is one past the last declared algorithm.
	algorithmCount
)

// wireNames are the hash function text names exchanged with peers.
// Changing any of these breaks interoperability.
var wireNames = [algorithmCount]string{
	Unknown:     "unknown",
	MD2:         "md2",
	MD5:         "md5",
	SHA1:        "sha-1",
	SHA224:      "sha-224",
	SHA256:      "sha-256",
	SHA384:      "sha-384",
	SHA512:      "sha-512",
	SHA3_256:    "sha3-256",
	SHA3_512:    "sha3-512",
	BLAKE2b_256: "blake2b-256",
	BLAKE2b_512: "blake2b-512",
	SHAKE128:    "shake128",
	SHAKE256:    "shake256",
	BLAKE3_256:  "blake3-256",
}

// String returns the wire name of the algorithm.
func (a Algorithm) String() string {
	if a >= algorithmCount {
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
	return wireNames[a]
}

// Parse returns the algorithm with the given wire name. Matching is
// case-insensitive. Names that do not match any known algorithm
// return [Unknown]: remote peers are free to advertise functions this
// package has never heard of, and that is not an error.
func Parse(name string) Algorithm {
	name = strings.ToLower(strings.TrimSpace(name))
	for algorithm := Unknown + 1; algorithm < algorithmCount; algorithm++ {
		if wireNames[algorithm] == name {
			return algorithm
		}
	}
	return Unknown
}

// MarshalText encodes the algorithm as its wire name.
func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes a wire name. Unrecognised names decode to
// [Unknown] without error, matching [Parse].
func (a *Algorithm) UnmarshalText(text []byte) error {
	*a = Parse(string(text))
	return nil
}

// All returns every declared algorithm except [Unknown], in
// declaration order.
func All() []Algorithm {
	algorithms := make([]Algorithm, 0, algorithmCount-1)
	for algorithm := Unknown + 1; algorithm < algorithmCount; algorithm++ {
		algorithms = append(algorithms, algorithm)
	}
	return algorithms
}

// Size returns the digest length in bytes produced by the algorithm.
// SHAKE functions are used with fixed outputs of 256 bits (SHAKE128)
// and 512 bits (SHAKE256). Unknown and out-of-range values return 0.
func Size(a Algorithm) int {
	switch a {
	case MD2, MD5:
		return 16
	case SHA1:
		return 20
	case SHA224:
		return 28
	case SHA256, SHA3_256, BLAKE2b_256, BLAKE3_256, SHAKE128:
		return 32
	case SHA384:
		return 48
	case SHA512, SHA3_512, BLAKE2b_512, SHAKE256:
		return 64
	default:
		return 0
	}
}
