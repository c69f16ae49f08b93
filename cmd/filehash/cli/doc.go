// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the filehash
// binary.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a [pflag.FlagSet]
// factory, and a Run function. [Command.Execute] handles flag parsing,
// subcommand routing, and help output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// Error plumbing:
//
//   - [ExitError] carries a deliberate non-zero exit code for
//     commands that have already written their own output, such as a
//     failed verification.
//   - [ToolError] classifies failures (validation, not found,
//     internal) so main can print them consistently.
//
// [NewCommandLogger] builds the slog logger every command uses.
package cli
