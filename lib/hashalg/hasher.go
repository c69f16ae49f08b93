// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashalg

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// ErrUnsupported is returned by [New] for algorithms that this package
// recognises but cannot compute (MD2, Unknown).
var ErrUnsupported = errors.New("hash algorithm not supported")

// Supported reports whether [New] can construct an accumulator for the
// algorithm.
func Supported(a Algorithm) bool {
	switch a {
	case MD5, SHA1, SHA224, SHA256, SHA384, SHA512,
		SHA3_256, SHA3_512,
		BLAKE2b_256, BLAKE2b_512,
		SHAKE128, SHAKE256,
		BLAKE3_256:
		return true
	default:
		return false
	}
}

// New returns a fresh accumulator for the algorithm. The returned
// hash.Hash reports [Size] from its Size method and produces exactly
// that many bytes from Sum.
func New(a Algorithm) (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA224:
		return sha256.New224(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	case SHA3_256:
		return sha3.New256(), nil
	case SHA3_512:
		return sha3.New512(), nil
	case BLAKE2b_256:
		// An unkeyed BLAKE2b never fails to initialize; the error
		// return only covers oversized keys.
		return blake2b.New256(nil)
	case BLAKE2b_512:
		return blake2b.New512(nil)
	case SHAKE128:
		return &fixedShake{shake: sha3.NewShake128(), size: Size(SHAKE128)}, nil
	case SHAKE256:
		return &fixedShake{shake: sha3.NewShake256(), size: Size(SHAKE256)}, nil
	case BLAKE3_256:
		return blake3.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, a)
	}
}

// fixedShake adapts an extendable-output function to hash.Hash with a
// fixed output length. Sum squeezes a clone, so the accumulator stays
// writable after Sum exactly like the fixed-output functions.
type fixedShake struct {
	shake sha3.ShakeHash
	size  int
}

func (h *fixedShake) Write(p []byte) (int, error) { return h.shake.Write(p) }

func (h *fixedShake) Sum(b []byte) []byte {
	output := make([]byte, h.size)
	// Read on a ShakeHash never returns an error.
	_, _ = h.shake.Clone().Read(output)
	return append(b, output...)
}

func (h *fixedShake) Reset() { h.shake.Reset() }

func (h *fixedShake) Size() int { return h.size }

func (h *fixedShake) BlockSize() int { return h.shake.BlockSize() }
