// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"context"
	"crypto/sha256"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/bureau-foundation/filehash/lib/hashalg"
	"github.com/bureau-foundation/filehash/lib/hashengine"
	"github.com/bureau-foundation/filehash/lib/workpool"
)

func TestInfo(t *testing.T) {
	original := []string{Version, GitCommit, GitDirty, BuildTime}
	t.Cleanup(func() {
		Version, GitCommit, GitDirty, BuildTime = original[0], original[1], original[2], original[3]
	})

	Version, GitCommit, BuildTime = "1.2.3", "abc1234", "2026-10-01T00:00:00Z"

	GitDirty = "false"
	if got, want := Info(), "1.2.3 (abc1234, 2026-10-01T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}

	GitDirty = "true"
	if got, want := Info(), "1.2.3 (abc1234-dirty, 2026-10-01T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestApplySettings(t *testing.T) {
	original := []string{GitCommit, GitDirty, BuildTime}
	t.Cleanup(func() {
		GitCommit, GitDirty, BuildTime = original[0], original[1], original[2]
	})

	settings := []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "0123456789abcdef0123456789abcdef01234567"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-09-30T12:00:00Z"},
	}

	t.Run("unstamped", func(t *testing.T) {
		GitCommit, GitDirty, BuildTime = "", "", ""
		build := Build{Version: "1.0.0"}
		build.applySettings(settings)
		if got, want := build.String(), "1.0.0 (0123456789ab-dirty, 2026-09-30T12:00:00Z)"; got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	})

	t.Run("stamps win", func(t *testing.T) {
		GitCommit, GitDirty, BuildTime = "feedbee", "false", "2026-10-01T00:00:00Z"
		build := Build{Version: "1.0.0", Commit: GitCommit, Time: BuildTime}
		build.applySettings(settings)
		if got, want := build.String(), "1.0.0 (feedbee, 2026-10-01T00:00:00Z)"; got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	})

	t.Run("short revision", func(t *testing.T) {
		GitCommit, GitDirty, BuildTime = "", "", ""
		build := Build{}
		build.applySettings([]debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}})
		if build.Commit != "abc" {
			t.Errorf("Commit = %q, want abc", build.Commit)
		}
	})
}

func TestCurrentNeverEmpty(t *testing.T) {
	original := []string{GitCommit, BuildTime}
	t.Cleanup(func() { GitCommit, BuildTime = original[0], original[1] })
	GitCommit, BuildTime = "", ""

	build := Current()
	if build.Commit == "" || build.Time == "" {
		t.Errorf("Current() = %+v, want commit and time filled", build)
	}
	if build.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", build.GoVersion, runtime.Version())
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Info()) {
		t.Errorf("Full() = %q does not start with Info()", full)
	}
	for _, want := range []string{runtime.Version(), runtime.GOOS + "/" + runtime.GOARCH} {
		if !strings.Contains(full, want) {
			t.Errorf("Full() = %q, missing %q", full, want)
		}
	}
}

func TestSelfDigest(t *testing.T) {
	pool := workpool.New(workpool.Config{Workers: 2})
	t.Cleanup(pool.Close)
	engine, err := hashengine.New(hashengine.Config{Pool: pool})
	if err != nil {
		t.Fatalf("hashengine.New: %v", err)
	}

	digest, path, err := SelfDigest(context.Background(), engine, hashalg.SHA256)
	if err != nil {
		t.Fatalf("SelfDigest: %v", err)
	}

	// The test binary is the running executable.
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	want := sha256.Sum256(content)
	if !digest.Equal(hashalg.Digest{Algorithm: hashalg.SHA256, Value: want[:]}) {
		t.Errorf("SelfDigest = %x, want %x", digest.Value, want)
	}
}
