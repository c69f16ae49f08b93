// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build information for the filehash binary.
//
// Release builds stamp four variables with -ldflags -X:
//
//	pkg=github.com/bureau-foundation/filehash/lib/version
//	go build -ldflags "\
//	    -X $pkg.Version=1.0.0 \
//	    -X $pkg.GitCommit=$(git rev-parse --short HEAD) \
//	    -X $pkg.GitDirty=$(test -z "$(git status --porcelain)" && echo false || echo true) \
//	    -X $pkg.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/filehash
//
// A plain "go build" inside a checkout leaves the stamps empty, and
// [Current] falls back to the vcs.* build settings the go command
// embeds. Anything still missing reports "unknown".
//
// [SelfDigest] hashes the running binary with the hashing engine, so
// an operator can compare an installed build against published
// digests.
package version
