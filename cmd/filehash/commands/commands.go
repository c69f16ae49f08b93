// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the filehash command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/filehash/cmd/filehash/cli"
	"github.com/bureau-foundation/filehash/lib/version"
)

// Streams are the process's standard streams. Tests substitute
// buffers.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StandardStreams returns os.Stdin, os.Stdout, and os.Stderr.
func StandardStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Root builds the complete command tree.
func Root(streams Streams) *cli.Command {
	var showVersion bool

	var root *cli.Command
	root = &cli.Command{
		Name: "filehash",
		Description: `filehash: compute and verify content digests of shared files.

Files are hashed with several algorithms in one pass. Verification
checks only the strongest secure digest offered, so a weak or forged
digest cannot vouch for tampered content.`,
		HelpOutput: streams.Err,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("filehash", pflag.ContinueOnError)
			flagSet.BoolVar(&showVersion, "version", false, "print the version and exit")
			return flagSet
		},
		Run: func(_ context.Context, args []string) error {
			if showVersion {
				fmt.Fprintf(streams.Out, "filehash %s\n", version.Info())
				return nil
			}
			root.PrintHelp(streams.Err)
			return cli.Validation("subcommand required")
		},
		Subcommands: []*cli.Command{
			computeCommand(streams),
			verifyCommand(streams),
			metadataCommand(streams),
			versionCommand(streams),
		},
		Examples: []cli.Example{
			{
				Description: "Print SHA-256 and BLAKE2b-256 digests of a file",
				Command:     "filehash compute photo.jpg",
			},
			{
				Description: "Verify a download against the digests its sender advertised",
				Command:     "filehash verify --hash sha-256:n4bQgYhMfWWaL+qgxVrQFaO/TxsrC4Is0V1sFbDwCgg= photo.jpg",
			},
			{
				Description: "Write a metadata record to attach to an upload",
				Command:     "filehash metadata --out photo.jpg.meta photo.jpg",
			},
		},
	}
	return root
}
