// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bureau-foundation/filehash/lib/hashengine"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Engine.ChunkSize != hashengine.DefaultChunkSize {
		t.Errorf("chunk_size = %d, want %d", cfg.Engine.ChunkSize, hashengine.DefaultChunkSize)
	}
	if cfg.Engine.FastPathThreshold != hashengine.DefaultFastPathThreshold {
		t.Errorf("fast_path_threshold = %d, want %d", cfg.Engine.FastPathThreshold, hashengine.DefaultFastPathThreshold)
	}
	if want := max(runtime.NumCPU(), 4); cfg.Pool.Workers != want {
		t.Errorf("workers = %d, want %d", cfg.Pool.Workers, want)
	}
	if cfg.Pool.QueueSize != 4*cfg.Pool.Workers {
		t.Errorf("queue_size = %d, want %d", cfg.Pool.QueueSize, 4*cfg.Pool.Workers)
	}
	if !cfg.Verify.RequireStrong {
		t.Error("require_strong should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "filehash.yaml", `
engine:
  chunk_size: 65536
  fast_path_threshold: -1
pool:
  workers: 3
verify:
  require_strong: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.ChunkSize != 65536 {
		t.Errorf("chunk_size = %d, want 65536", cfg.Engine.ChunkSize)
	}
	if cfg.Engine.FastPathThreshold != -1 {
		t.Errorf("fast_path_threshold = %d, want -1", cfg.Engine.FastPathThreshold)
	}
	if cfg.Pool.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Pool.Workers)
	}
	// queue_size follows the file's worker count.
	if cfg.Pool.QueueSize != 12 {
		t.Errorf("queue_size = %d, want 12", cfg.Pool.QueueSize)
	}
	if cfg.Verify.RequireStrong {
		t.Error("require_strong = true, want false")
	}
}

func TestLoadJSONC(t *testing.T) {
	path := writeConfig(t, "filehash.jsonc", `{
  // Larger buffers for a fast disk.
  "engine": {"chunk_size": 1048576},
  /* Leave the rest alone. */
  "pool": {"workers": 2, "queue_size": 5,},
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.ChunkSize != 1048576 {
		t.Errorf("chunk_size = %d, want 1048576", cfg.Engine.ChunkSize)
	}
	if cfg.Engine.FastPathThreshold != hashengine.DefaultFastPathThreshold {
		t.Errorf("fast_path_threshold = %d, want default", cfg.Engine.FastPathThreshold)
	}
	if cfg.Pool.Workers != 2 || cfg.Pool.QueueSize != 5 {
		t.Errorf("pool = %+v, want workers 2 queue 5", cfg.Pool)
	}
	if !cfg.Verify.RequireStrong {
		t.Error("require_strong should keep its default")
	}
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	for _, name := range []string{"empty.yaml", "empty.json"} {
		cfg, err := Load(writeConfig(t, name, ""))
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if cfg.Engine.ChunkSize != Default().Engine.ChunkSize {
			t.Errorf("%s: chunk_size = %d, want default", name, cfg.Engine.ChunkSize)
		}
		if cfg.Pool.QueueSize != Default().Pool.QueueSize {
			t.Errorf("%s: queue_size = %d, want default", name, cfg.Pool.QueueSize)
		}
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	tests := map[string]string{
		"typo.yaml": "engine:\n  chunksize: 10\n",
		"typo.json": `{"pool": {"worker": 2}}`,
	}
	for name, content := range tests {
		if _, err := Load(writeConfig(t, name, content)); err == nil {
			t.Errorf("%s: Load accepted an unknown key", name)
		}
	}
}

func TestLoadValidation(t *testing.T) {
	path := writeConfig(t, "bad.yaml", `
engine:
  chunk_size: 0
  fast_path_threshold: 0
pool:
  workers: -2
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load accepted an invalid config")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("error %v does not wrap ErrInvalid", err)
	}
	for _, field := range []string{"engine.chunk_size", "engine.fast_path_threshold", "pool.workers", "pool.queue_size"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v, want ErrNotExist", err)
	}
	if _, err := Load(writeConfig(t, "filehash.toml", "")); err == nil || !strings.Contains(err.Error(), "extension") {
		t.Errorf("unknown extension: got %v", err)
	}
	if _, err := Load(writeConfig(t, "broken.yaml", "engine: [")); err == nil {
		t.Error("malformed YAML accepted")
	}
	if _, err := Load(writeConfig(t, "broken.json", `{"engine": `)); err == nil {
		t.Error("malformed JSON accepted")
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvironmentVariable, "/etc/filehash.yaml")

	if got := Path("/tmp/flag.yaml"); got != "/tmp/flag.yaml" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := Path(""); got != "/etc/filehash.yaml" {
		t.Errorf("environment fallback = %q", got)
	}

	t.Setenv(EnvironmentVariable, "")
	if got := Path(""); got != "" {
		t.Errorf("no flag and no environment = %q, want empty", got)
	}
}
