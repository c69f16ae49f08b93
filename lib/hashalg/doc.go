// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hashalg is the registry of hash algorithms used for file
// integrity in shared and encrypted file transfers.
//
// The algorithm set is closed: every [Algorithm] value is declared in
// this package, and peers advertising any other hash function name
// parse to [Unknown]. Each algorithm has three derived properties:
//
//   - Security ([IsSecure]): whether a digest with this algorithm may
//     be trusted as evidence of integrity. MD2, MD5, SHA-1, and the
//     SHAKE functions are insecure; SHA-224 and stronger SHA-2, SHA-3,
//     BLAKE2b, and BLAKE3 are secure.
//
//   - Priority ([Priority]): a total order used to pick one digest out
//     of several advertised by a remote party. Longer digests win; for
//     equal length, the faster function wins.
//
//   - Size ([Size]): the fixed digest length in bytes.
//
// [New] constructs an accumulator for any computable algorithm. MD2 is
// recognised (peers may advertise it) but cannot be computed.
//
// [Digest] pairs an algorithm with digest bytes. [FormatDigest] and
// [ParseDigest] convert digests to and from the "name:base64" text
// form used in logs, configuration, and the command line. The XML
// representation on the wire belongs to the stanza codec layer, not to
// this package.
package hashalg
