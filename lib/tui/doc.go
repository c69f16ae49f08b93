// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui renders hashing and verification results for terminals.
//
// Colors come from [Theme]; [Printer] applies them through a lipgloss
// renderer bound to the output writer, so the same code prints
// colored text to a terminal and plain text to a pipe or file.
package tui
