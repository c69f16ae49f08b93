// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"crypto/sha256"
	"math/rand/v2"
	"testing"
)

// RandomData returns size bytes of pseudorandom data seeded from the
// test name. The same test always gets the same bytes.
func RandomData(t testing.TB, size int) []byte {
	t.Helper()
	// A SHA-256 of the name is exactly the ChaCha8 seed length and
	// places no limit on name length.
	seed := sha256.Sum256([]byte(t.Name()))
	data := make([]byte, size)
	if _, err := rand.NewChaCha8(seed).Read(data); err != nil {
		t.Fatalf("generating random data: %v", err)
	}
	return data
}
