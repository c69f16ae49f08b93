// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/filehash/cmd/filehash/cli"
	"github.com/bureau-foundation/filehash/lib/codec"
	"github.com/bureau-foundation/filehash/lib/filemeta"
)

type metadataOptions struct {
	engineOptions
	algorithms  []string
	mediaType   string
	description string
	outputPath  string
	diagnostic  bool
	decompress  string
}

func metadataCommand(streams Streams) *cli.Command {
	var options metadataOptions

	return &cli.Command{
		Name:    "metadata",
		Summary: "Write a CBOR metadata record for a file",
		Description: `Hash FILE and write a file metadata record: name, media type, size,
and digests, encoded as deterministic CBOR. Senders attach the record
to an upload; receivers pass it to "filehash verify --metadata".

The record goes to standard output unless --out is given. With
--diagnostic the record is printed in CBOR diagnostic notation
instead of binary.`,
		Usage:      "filehash metadata [flags] FILE",
		HelpOutput: streams.Err,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("metadata", pflag.ContinueOnError)
			flagSet.StringSliceVarP(&options.algorithms, "algorithm", "a", nil, "hash algorithm, repeatable (default sha-256,blake2b-256)")
			flagSet.StringVar(&options.mediaType, "media-type", "", "media type (default guessed from the file extension)")
			flagSet.StringVar(&options.description, "description", "", "free-text description")
			flagSet.StringVarP(&options.outputPath, "out", "o", "", "write the record to this file")
			flagSet.BoolVar(&options.diagnostic, "diagnostic", false, "print CBOR diagnostic notation instead of binary")
			flagSet.StringVar(&options.decompress, "decompress", "none", "decompress input first: none, zstd, lz4, or auto")
			options.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("exactly one FILE is required")
			}
			return runMetadata(ctx, streams, &options, args[0])
		},
		Examples: []cli.Example{
			{
				Description: "Inspect the record that would be sent",
				Command:     "filehash metadata --diagnostic --description 'holiday photo' photo.jpg",
			},
		},
	}
}

func runMetadata(ctx context.Context, streams Streams, options *metadataOptions, path string) error {
	algorithms, err := parseAlgorithms(options.algorithms, filemeta.DefaultAlgorithms)
	if err != nil {
		return err
	}

	session, err := options.open(streams, "metadata")
	if err != nil {
		return err
	}
	defer session.Close()

	metadata, err := computeOne(ctx, session, streams, path, options.decompress, algorithms)
	if err != nil {
		return err
	}
	if options.mediaType != "" {
		metadata.MediaType = options.mediaType
	}
	metadata.Description = options.description

	if options.outputPath == "" {
		return writeRecord(streams.Out, metadata, options.diagnostic)
	}

	file, err := os.Create(options.outputPath)
	if err != nil {
		return cli.Internal("creating metadata record: %w", err)
	}
	if err := writeRecord(file, metadata, options.diagnostic); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return cli.Internal("writing metadata record: %w", err)
	}
	session.logger.Info("metadata record written",
		"file", path,
		"out", options.outputPath,
		"size", metadata.Size,
	)
	return nil
}

// writeRecord writes metadata to out as binary CBOR, or as diagnostic
// notation followed by a newline.
func writeRecord(out io.Writer, metadata *filemeta.Metadata, diagnostic bool) error {
	if !diagnostic {
		if err := metadata.Encode(out); err != nil {
			return cli.Internal("writing metadata record: %w", err)
		}
		return nil
	}

	data, err := metadata.Marshal()
	if err != nil {
		return cli.Internal("encoding metadata record: %w", err)
	}
	notation, err := codec.Diagnose(data)
	if err != nil {
		return cli.Internal("formatting metadata record: %w", err)
	}
	if _, err := fmt.Fprintln(out, notation); err != nil {
		return cli.Internal("writing metadata record: %w", err)
	}
	return nil
}
