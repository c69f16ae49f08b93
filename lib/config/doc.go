// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads tuning parameters for the hashing engine, its
// worker pool, and verification policy.
//
// Configuration comes from a single file named by the --config flag
// or the FILEHASH_CONFIG environment variable. There is no discovery
// and no per-field environment overrides: what the file says is what
// runs. Without a file, [Default] applies.
//
// Two formats are accepted, chosen by extension:
//
//   - .yaml, .yml -- YAML
//   - .json, .jsonc -- JSON with // and /* */ comments and trailing
//     commas
//
// Unknown keys are rejected in both formats so that a misspelled
// setting fails loudly instead of silently keeping its default.
//
// This package depends on no other packages in the module.
package config
