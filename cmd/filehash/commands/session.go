// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/filehash/cmd/filehash/cli"
	"github.com/bureau-foundation/filehash/lib/config"
	"github.com/bureau-foundation/filehash/lib/hashalg"
	"github.com/bureau-foundation/filehash/lib/hashengine"
	"github.com/bureau-foundation/filehash/lib/workpool"
)

// engineOptions are the flags every hashing command accepts. Flags
// given explicitly override the configuration file.
type engineOptions struct {
	configPath        string
	verbose           bool
	chunkSize         int
	fastPathThreshold int64
	workers           int

	flagSet *pflag.FlagSet
}

func (o *engineOptions) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.configPath, "config", "", "configuration file (default $"+config.EnvironmentVariable+")")
	flagSet.BoolVarP(&o.verbose, "verbose", "v", false, "log per-request engine activity")
	flagSet.IntVar(&o.chunkSize, "chunk-size", 0, "streaming buffer size in bytes")
	flagSet.Int64Var(&o.fastPathThreshold, "fast-path-threshold", 0, "size × algorithms below which small files are hashed inline (negative disables)")
	flagSet.IntVar(&o.workers, "workers", 0, "hashing worker goroutines")
	o.flagSet = flagSet
}

// hashSession is the engine and its pool for one command invocation.
type hashSession struct {
	config *config.Config
	logger *slog.Logger
	pool   *workpool.Pool
	engine *hashengine.Engine
}

// open loads configuration, applies flag overrides, and starts the
// pool. The caller must Close the session.
func (o *engineOptions) open(streams Streams, command string) (*hashSession, error) {
	cfg := config.Default()
	if path := config.Path(o.configPath); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, cli.Validation("loading configuration: %w", err)
		}
		cfg = loaded
	}

	if o.flagSet.Changed("chunk-size") {
		cfg.Engine.ChunkSize = o.chunkSize
	}
	if o.flagSet.Changed("fast-path-threshold") {
		cfg.Engine.FastPathThreshold = o.fastPathThreshold
	}
	if o.flagSet.Changed("workers") {
		cfg.Pool.Workers = o.workers
		cfg.Pool.QueueSize = 4 * o.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("%w", err)
	}

	logger := cli.NewCommandLogger(streams.Err, o.verbose).With("command", command)

	pool := workpool.New(workpool.Config{
		Workers:   cfg.Pool.Workers,
		QueueSize: cfg.Pool.QueueSize,
		Logger:    logger,
	})
	engine, err := hashengine.New(hashengine.Config{
		Pool:              pool,
		Logger:            logger,
		ChunkSize:         cfg.Engine.ChunkSize,
		FastPathThreshold: cfg.Engine.FastPathThreshold,
	})
	if err != nil {
		pool.Close()
		return nil, cli.Internal("starting hash engine: %w", err)
	}

	logger.Debug("hash engine ready",
		"workers", pool.Size(),
		"chunk_size", cfg.Engine.ChunkSize,
		"fast_path_threshold", cfg.Engine.FastPathThreshold,
	)
	return &hashSession{config: cfg, logger: logger, pool: pool, engine: engine}, nil
}

// Close stops the pool. Every request has delivered its outcome by
// the time a command returns, so nothing is left queued.
func (s *hashSession) Close() {
	s.pool.Close()
}

// parseAlgorithms resolves algorithm names given on the command line.
// An empty list selects the defaults.
func parseAlgorithms(names []string, defaults []hashalg.Algorithm) ([]hashalg.Algorithm, error) {
	if len(names) == 0 {
		return defaults, nil
	}
	algorithms := make([]hashalg.Algorithm, 0, len(names))
	for _, name := range names {
		algorithm := hashalg.Parse(name)
		if !hashalg.Supported(algorithm) {
			return nil, cli.Validation("unsupported hash algorithm %q (supported: %s)", name, supportedNames())
		}
		algorithms = append(algorithms, algorithm)
	}
	return algorithms, nil
}

func supportedNames() string {
	var names []string
	for _, algorithm := range hashalg.All() {
		if hashalg.Supported(algorithm) {
			names = append(names, algorithm.String())
		}
	}
	return strings.Join(names, ", ")
}
