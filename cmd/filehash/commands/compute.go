// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/filehash/cmd/filehash/cli"
	"github.com/bureau-foundation/filehash/lib/filemeta"
	"github.com/bureau-foundation/filehash/lib/hashalg"
	"github.com/bureau-foundation/filehash/lib/tui"
)

type computeOptions struct {
	engineOptions
	algorithms []string
	decompress string
	json       bool
}

func computeCommand(streams Streams) *cli.Command {
	var options computeOptions

	return &cli.Command{
		Name:    "compute",
		Summary: "Print digests of files",
		Description: `Hash each FILE with every requested algorithm in a single pass and
print one "algorithm:base64  name" line per digest. FILE "-" reads
standard input.

A file that cannot be read is reported and skipped; the command then
exits 2 after processing the rest.`,
		Usage:      "filehash compute [flags] FILE...",
		HelpOutput: streams.Err,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("compute", pflag.ContinueOnError)
			flagSet.StringSliceVarP(&options.algorithms, "algorithm", "a", nil, "hash algorithm, repeatable (default sha-256,blake2b-256)")
			flagSet.StringVar(&options.decompress, "decompress", "none", "decompress input first: none, zstd, lz4, or auto")
			flagSet.BoolVar(&options.json, "json", false, "print one JSON metadata record per file")
			options.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return cli.Validation("at least one FILE is required")
			}
			return runCompute(ctx, streams, &options, args)
		},
		Examples: []cli.Example{
			{
				Description: "Hash with SHA-512 and BLAKE3",
				Command:     "filehash compute -a sha-512 -a blake3-256 archive.tar",
			},
			{
				Description: "Hash the contents of a zstd-compressed backup",
				Command:     "filehash compute --decompress zstd backup.tar.zst",
			},
		},
	}
}

func runCompute(ctx context.Context, streams Streams, options *computeOptions, paths []string) error {
	algorithms, err := parseAlgorithms(options.algorithms, filemeta.DefaultAlgorithms)
	if err != nil {
		return err
	}

	session, err := options.open(streams, "compute")
	if err != nil {
		return err
	}
	defer session.Close()

	printer := tui.NewPrinter(streams.Out, tui.DefaultTheme)
	encoder := json.NewEncoder(streams.Out)

	failed := 0
	for _, path := range paths {
		metadata, err := computeOne(ctx, session, streams, path, options.decompress, algorithms)
		if err != nil {
			if errors.Is(err, filemeta.ErrCancelled) {
				return err
			}
			session.logger.Error("hashing failed", "file", path, "error", err)
			failed++
			continue
		}

		if options.json {
			if err := encoder.Encode(metadata); err != nil {
				return cli.Internal("writing output: %w", err)
			}
			continue
		}
		for _, digest := range metadata.Hashes {
			if err := printer.Digest(path, digest); err != nil {
				return cli.Internal("writing output: %w", err)
			}
		}
	}

	if failed > 0 {
		return &cli.ExitError{Code: cli.CodeError}
	}
	return nil
}

func computeOne(ctx context.Context, session *hashSession, streams Streams, path, format string, algorithms []hashalg.Algorithm) (*filemeta.Metadata, error) {
	in, err := openInput(streams, path, format)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	name := filepath.Base(path)
	if path == stdinName {
		name = ""
	}
	return filemeta.Compute(ctx, session.engine, name, in.mediaType, in.reader, algorithms)
}
