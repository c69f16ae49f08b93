// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/filehash/cmd/filehash/cli"
	"github.com/bureau-foundation/filehash/cmd/filehash/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that report their own result (verify) return an
		// ExitError with the desired code. Don't print a redundant
		// "error:" line for those.
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.CodeError)
	}
}

func run() error {
	// Interrupting cancels in-flight hashing; requests end with a
	// cancelled outcome rather than a killed process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root(commands.StandardStreams()).Execute(ctx, os.Args[1:])
}
