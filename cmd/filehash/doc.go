// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Filehash computes and verifies content digests of files shared over
// the messaging network.
//
//	filehash compute [-a ALGORITHM]... [--decompress FORMAT] FILE...
//	filehash verify (--hash ALGORITHM:BASE64 | --metadata RECORD)... FILE
//	filehash metadata [--out PATH] [--diagnostic] FILE
//	filehash version [--self]
//
// verify exits 0 when the strongest secure digest offered matches, 1
// when it does not (or when none was offered and strong hashes are
// required), and 2 on read failure, cancellation, or bad usage.
//
// Engine settings come from the YAML or JSONC file named by --config
// or $FILEHASH_CONFIG; flags override individual values.
package main
