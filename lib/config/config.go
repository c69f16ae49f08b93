// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the configuration file when --config is
// not given.
const EnvironmentVariable = "FILEHASH_CONFIG"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine" json:"engine"`
	Pool   PoolConfig   `yaml:"pool" json:"pool"`
	Verify VerifyConfig `yaml:"verify" json:"verify"`
}

// EngineConfig tunes the streaming hash engine.
type EngineConfig struct {
	// ChunkSize is the streaming buffer size in bytes. Each streaming
	// request holds two buffers of this size.
	// Default: 524288 (512 KiB)
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`

	// FastPathThreshold is the stream size multiplied by the number
	// of algorithms below which small seekable inputs are hashed
	// synchronously. Negative disables the fast path.
	// Default: 32768 (32 KiB)
	FastPathThreshold int64 `yaml:"fast_path_threshold" json:"fast_path_threshold"`
}

// PoolConfig sizes the shared worker pool.
type PoolConfig struct {
	// Workers is the number of pool goroutines.
	// Default: max(NumCPU, 4)
	Workers int `yaml:"workers" json:"workers"`

	// QueueSize bounds work waiting for a free worker. Zero in a file
	// means four per worker.
	// Default: 4 × Workers
	QueueSize int `yaml:"queue_size" json:"queue_size"`
}

// VerifyConfig sets verification policy.
type VerifyConfig struct {
	// RequireStrong treats a verification that found no secure
	// candidate digest as a failure rather than a warning.
	// Default: true
	RequireStrong bool `yaml:"require_strong" json:"require_strong"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		Engine: EngineConfig{
			ChunkSize:         512 * 1024,
			FastPathThreshold: 32 * 1024,
		},
		Pool: PoolConfig{
			Workers: max(runtime.NumCPU(), 4),
		},
		Verify: VerifyConfig{
			RequireStrong: true,
		},
	}
	cfg.deriveDefaults()
	return cfg
}

// Path returns the configuration file to load: flagValue if set,
// otherwise the FILEHASH_CONFIG environment variable. Empty means no
// file.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvironmentVariable)
}

// Load reads the file at path over [Default] and validates the
// result. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	// A file that sets workers without queue_size gets a queue derived
	// from its own worker count, not the default one.
	cfg.Pool.QueueSize = 0

	if err := cfg.decode(path, data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.deriveDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// decode merges data into c according to the file extension.
func (c *Config) decode(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		// An empty file decodes to io.EOF and leaves the defaults.
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parsing YAML: %w", err)
		}
		return nil

	case ".json", ".jsonc":
		stripped := jsonc.ToJSON(data)
		if len(bytes.TrimSpace(stripped)) == 0 {
			return nil
		}
		decoder := json.NewDecoder(bytes.NewReader(stripped))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(c); err != nil {
			return fmt.Errorf("parsing JSON: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unrecognized config file extension %q (want .yaml, .yml, .json, or .jsonc)", filepath.Ext(path))
	}
}

func (c *Config) deriveDefaults() {
	if c.Pool.QueueSize == 0 {
		c.Pool.QueueSize = 4 * c.Pool.Workers
	}
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Engine.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("engine.chunk_size must be positive, got %d", c.Engine.ChunkSize))
	}
	if c.Engine.FastPathThreshold == 0 {
		errs = append(errs, errors.New("engine.fast_path_threshold must be non-zero (negative disables the fast path)"))
	}
	if c.Pool.Workers <= 0 {
		errs = append(errs, fmt.Errorf("pool.workers must be positive, got %d", c.Pool.Workers))
	}
	if c.Pool.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("pool.queue_size must be positive, got %d", c.Pool.QueueSize))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
