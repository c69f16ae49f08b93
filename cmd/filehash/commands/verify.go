// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/filehash/cmd/filehash/cli"
	"github.com/bureau-foundation/filehash/lib/filemeta"
	"github.com/bureau-foundation/filehash/lib/hashalg"
	"github.com/bureau-foundation/filehash/lib/hashengine"
	"github.com/bureau-foundation/filehash/lib/tui"
)

type verifyOptions struct {
	engineOptions
	hashes        []string
	metadataPath  string
	decompress    string
	requireStrong bool
}

func verifyCommand(streams Streams) *cli.Command {
	var options verifyOptions

	return &cli.Command{
		Name:    "verify",
		Summary: "Check a file against advertised digests",
		Description: `Check FILE against digests advertised by its sender, given with
--hash, read from a metadata record with --metadata, or both.

Only the strongest secure digest offered is checked. Weak digests
(MD5, SHA-1, SHAKE) are never trusted, and a weak digest that matches
cannot outvote a strong one that does not.

Exit status is 0 when the file is verified and 1 when it does not
match. When no secure digest was offered the result is
"no_strong_hashes": exit 1 if strong hashes are required (the
default), otherwise a warning and exit 0. Read failures and
cancellation exit 2.`,
		Usage:      "filehash verify [flags] FILE",
		HelpOutput: streams.Err,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("verify", pflag.ContinueOnError)
			flagSet.StringArrayVar(&options.hashes, "hash", nil, "advertised digest as ALGORITHM:BASE64, repeatable")
			flagSet.StringVar(&options.metadataPath, "metadata", "", "CBOR metadata record holding advertised digests")
			flagSet.StringVar(&options.decompress, "decompress", "none", "decompress input first: none, zstd, lz4, or auto")
			flagSet.BoolVar(&options.requireStrong, "require-strong", true, "fail when no secure digest is offered (overrides configuration)")
			options.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("exactly one FILE is required")
			}
			return runVerify(ctx, streams, &options, args[0])
		},
		Examples: []cli.Example{
			{
				Description: "Verify against two advertised digests; only BLAKE2b-512 is checked",
				Command:     "filehash verify --hash sha-1:... --hash blake2b-512:... photo.jpg",
			},
			{
				Description: "Verify against a metadata record received with the file",
				Command:     "filehash verify --metadata photo.jpg.meta photo.jpg",
			},
		},
	}
}

func runVerify(ctx context.Context, streams Streams, options *verifyOptions, path string) error {
	candidates, err := options.candidates()
	if err != nil {
		return err
	}

	session, err := options.open(streams, "verify")
	if err != nil {
		return err
	}
	defer session.Close()

	requireStrong := session.config.Verify.RequireStrong
	if options.flagSet.Changed("require-strong") {
		requireStrong = options.requireStrong
	}

	in, err := openInput(streams, path, options.decompress)
	if err != nil {
		return err
	}
	defer in.Close()

	verification := session.engine.VerifySync(ctx, in.reader, candidates)

	printer := tui.NewPrinter(streams.Out, tui.DefaultTheme)
	if err := printer.Verification(path, verification); err != nil {
		return cli.Internal("writing output: %w", err)
	}

	switch verification.Verdict {
	case hashengine.VerdictVerified:
		return nil
	case hashengine.VerdictNotMatching:
		session.logger.Warn("content does not match advertised digest",
			"file", path,
			"algorithm", verification.Candidate.Algorithm.String(),
			"advertised", verification.Candidate.Hex(),
			"computed", verification.Computed.Hex(),
		)
		return &cli.ExitError{Code: cli.CodeFailed}
	case hashengine.VerdictNoStrongHashes:
		if requireStrong {
			return &cli.ExitError{Code: cli.CodeFailed}
		}
		session.logger.Warn("no secure digest offered, content is unverified", "file", path)
		return nil
	default:
		return &cli.ExitError{Code: cli.CodeError}
	}
}

// candidates collects the advertised digests from --hash and
// --metadata. Digests naming algorithms this build does not know are
// kept; verification skips them.
func (o *verifyOptions) candidates() ([]hashalg.Digest, error) {
	var candidates []hashalg.Digest
	for _, text := range o.hashes {
		digest, err := hashalg.ParseDigest(text)
		if err != nil {
			return nil, cli.Validation("--hash %q: %w", text, err)
		}
		candidates = append(candidates, digest)
	}

	if o.metadataPath != "" {
		file, err := os.Open(o.metadataPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, cli.NotFound("%s: no such metadata record", o.metadataPath)
			}
			return nil, cli.Internal("reading metadata record: %w", err)
		}
		metadata, err := filemeta.Decode(file)
		file.Close()
		if err != nil {
			return nil, cli.Validation("%s: %w", o.metadataPath, err)
		}
		candidates = append(candidates, metadata.Hashes...)
	}

	if len(candidates) == 0 {
		return nil, cli.Validation("no advertised digests: use --hash or --metadata")
	}
	return candidates, nil
}
