// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package decompress wraps compressed payloads in decoding readers so
// that the digest of the content, rather than of its compressed
// encoding, can be computed and verified.
//
// Senders on the messaging network hash the file a user picked. When
// the same content arrives or is stored compressed (zstd or LZ4
// frames), hashing the raw bytes would never match the advertised
// digest. The decoding readers produced here are plain io.Readers of
// unknown length, so the hashing engine always streams them.
package decompress
