// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/filehash/cmd/filehash/cli"
	"github.com/bureau-foundation/filehash/lib/hashalg"
	"github.com/bureau-foundation/filehash/lib/version"
)

type versionOptions struct {
	engineOptions
	self bool
}

func versionCommand(streams Streams) *cli.Command {
	var options versionOptions

	return &cli.Command{
		Name:    "version",
		Summary: "Print build information",
		Description: `Print the version, commit, and build time. With --self, also hash
the running binary so it can be compared against published release
digests.`,
		Usage:      "filehash version [--self]",
		HelpOutput: streams.Err,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flagSet.BoolVar(&options.self, "self", false, "print the SHA-256 digest of the running binary")
			options.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			fmt.Fprintf(streams.Out, "filehash %s\n", version.Full())
			if !options.self {
				return nil
			}

			session, err := options.open(streams, "version")
			if err != nil {
				return err
			}
			defer session.Close()

			digest, path, err := version.SelfDigest(ctx, session.engine, hashalg.SHA256)
			if err != nil {
				return cli.Internal("%w", err)
			}
			fmt.Fprintf(streams.Out, "binary:  %s\n%s\n", path, hashalg.FormatDigest(digest))
			return nil
		},
	}
}
