// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// Exit codes shared by every command.
const (
	// CodeFailed means the command ran but the content did not pass:
	// a digest mismatch, or no trustworthy digest when one is
	// required.
	CodeFailed = 1

	// CodeError means the command could not do its job: bad usage, an
	// unreadable file, or cancellation.
	CodeError = 2
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish "handled non-zero exit" from
// "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}
