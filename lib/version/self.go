// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"context"
	"fmt"
	"os"

	"github.com/bureau-foundation/filehash/lib/hashalg"
	"github.com/bureau-foundation/filehash/lib/hashengine"
)

// SelfDigest hashes the running binary and returns its digest and
// absolute path. os.Executable reads /proc/self/exe on Linux, so the
// digest is of the binary that started even if it has since been
// replaced on disk. Release notes publish these digests; comparing
// against them confirms which build is installed.
func SelfDigest(ctx context.Context, engine *hashengine.Engine, algorithm hashalg.Algorithm) (hashalg.Digest, string, error) {
	executable, err := os.Executable()
	if err != nil {
		return hashalg.Digest{}, "", fmt.Errorf("resolving own executable path: %w", err)
	}

	file, err := os.Open(executable)
	if err != nil {
		return hashalg.Digest{}, "", fmt.Errorf("opening %s for hashing: %w", executable, err)
	}
	defer file.Close()

	outcome := engine.Hash(ctx, file, []hashalg.Algorithm{algorithm})
	switch outcome.Status {
	case hashengine.StatusSuccess:
		return outcome.Digests[0], executable, nil
	case hashengine.StatusCancelled:
		return hashalg.Digest{}, "", fmt.Errorf("hashing own binary at %s: %w", executable, context.Cause(ctx))
	default:
		return hashalg.Digest{}, "", fmt.Errorf("hashing own binary at %s: %w", executable, outcome.Err)
	}
}
