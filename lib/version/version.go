// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build stamps. See the package documentation for the -ldflags that
// set them; empty stamps fall back to the VCS settings the go command
// records in the binary.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	GitDirty  = ""
	BuildTime = ""
)

// shortRevisionLength is how much of a VCS revision is shown when the
// commit was not stamped.
const shortRevisionLength = 12

// Build describes the running binary.
type Build struct {
	Version   string
	Commit    string
	Dirty     bool
	Time      string
	GoVersion string
	Platform  string
}

// Current returns the build of the running binary.
func Current() Build {
	build := Build{
		Version:   Version,
		Commit:    GitCommit,
		Dirty:     GitDirty == "true",
		Time:      BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		build.applySettings(info.Settings)
	}

	if build.Commit == "" {
		build.Commit = "unknown"
	}
	if build.Time == "" {
		build.Time = "unknown"
	}
	return build
}

// applySettings fills unstamped fields from vcs.* build settings.
func (b *Build) applySettings(settings []debug.BuildSetting) {
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = setting.Value[:min(len(setting.Value), shortRevisionLength)]
			}
		case "vcs.modified":
			if GitDirty == "" {
				b.Dirty = setting.Value == "true"
			}
		case "vcs.time":
			if b.Time == "" {
				b.Time = setting.Value
			}
		}
	}
}

// String formats the build as "0.1.0 (abc1234-dirty, 2026-10-01T00:00:00Z)".
func (b Build) String() string {
	dirty := ""
	if b.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", b.Version, b.Commit, dirty, b.Time)
}

// Info returns the one-line build description printed by --version.
func Info() string {
	return Current().String()
}

// Full returns Info plus the Go version and platform.
func Full() string {
	build := Current()
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s", build, build.GoVersion, build.Platform)
}
