// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package filemeta

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/filehash/lib/chunkread"
	"github.com/bureau-foundation/filehash/lib/hashalg"
	"github.com/bureau-foundation/filehash/lib/hashengine"
	"github.com/bureau-foundation/filehash/lib/testutil"
	"github.com/bureau-foundation/filehash/lib/workpool"
)

func newEngine(t *testing.T) *hashengine.Engine {
	t.Helper()
	pool := workpool.New(workpool.Config{Workers: 2})
	t.Cleanup(pool.Close)
	engine, err := hashengine.New(hashengine.Config{Pool: pool, ChunkSize: 4096})
	if err != nil {
		t.Fatalf("hashengine.New: %v", err)
	}
	return engine
}

// streamOnly hides the size of the wrapped reader.
type streamOnly struct {
	reader *bytes.Reader
}

func (s streamOnly) Read(p []byte) (int, error) { return s.reader.Read(p) }

func TestCompute(t *testing.T) {
	engine := newEngine(t)
	data := testutil.RandomData(t, 70000)

	sources := map[string]func() io.Reader{
		"sized":   func() io.Reader { return bytes.NewReader(data) },
		"unsized": func() io.Reader { return streamOnly{bytes.NewReader(data)} },
	}
	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			metadata, err := Compute(context.Background(), engine, "photo.jpg", "image/jpeg", source(), nil)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}

			if metadata.Name != "photo.jpg" || metadata.MediaType != "image/jpeg" {
				t.Errorf("Name, MediaType = %q, %q", metadata.Name, metadata.MediaType)
			}
			if metadata.Size != int64(len(data)) {
				t.Errorf("Size = %d, want %d", metadata.Size, len(data))
			}
			if len(metadata.Hashes) != len(DefaultAlgorithms) {
				t.Fatalf("got %d hashes, want %d", len(metadata.Hashes), len(DefaultAlgorithms))
			}
			for i, algorithm := range DefaultAlgorithms {
				if metadata.Hashes[i].Algorithm != algorithm {
					t.Errorf("hash %d is %v, want %v", i, metadata.Hashes[i].Algorithm, algorithm)
				}
			}
		})
	}
}

func TestComputeRejectsUnreadableSource(t *testing.T) {
	engine := newEngine(t)
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	file.Close()

	_, err = Compute(context.Background(), engine, "file", "", file, nil)
	if !errors.Is(err, chunkread.ErrNotReadable) {
		t.Errorf("Compute on closed file: got %v, want ErrNotReadable", err)
	}
}

func TestComputeCancelled(t *testing.T) {
	engine := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := testutil.RandomData(t, 256*1024)
	_, err := Compute(ctx, engine, "big.bin", "", streamOnly{bytes.NewReader(data)}, []hashalg.Algorithm{hashalg.SHA512})
	if !errors.Is(err, ErrCancelled) || !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want ErrCancelled wrapping context.Canceled", err)
	}
}

func TestComputeFile(t *testing.T) {
	engine := newEngine(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	content := []byte("meeting at noon\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	metadata, err := ComputeFile(context.Background(), engine, path, []hashalg.Algorithm{hashalg.SHA3_256})
	if err != nil {
		t.Fatalf("ComputeFile: %v", err)
	}
	if metadata.Name != "notes.txt" {
		t.Errorf("Name = %q, want notes.txt", metadata.Name)
	}
	if !strings.HasPrefix(metadata.MediaType, "text/plain") {
		t.Errorf("MediaType = %q", metadata.MediaType)
	}
	if metadata.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", metadata.Size, len(content))
	}
	digest, ok := metadata.Digest(hashalg.SHA3_256)
	if !ok || len(digest.Value) != 32 {
		t.Errorf("Digest(sha3-256) = %v, %v", digest, ok)
	}
	if _, ok := metadata.Digest(hashalg.SHA256); ok {
		t.Error("Digest returned an algorithm that was not computed")
	}

	if _, err := ComputeFile(context.Background(), engine, filepath.Join(t.TempDir(), "missing"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v, want ErrNotExist", err)
	}
}

func TestMarshalVerifyRoundtrip(t *testing.T) {
	engine := newEngine(t)
	data := testutil.RandomData(t, 100000)

	sent, err := Compute(context.Background(), engine, "archive.tar", "application/x-tar", bytes.NewReader(data),
		[]hashalg.Algorithm{hashalg.SHA1, hashalg.SHA256, hashalg.BLAKE2b_512})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	sent.Description = "build outputs"

	encoded, err := sent.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	received, err := Unmarshal(encoded)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if received.Name != sent.Name || received.Size != sent.Size || received.Description != sent.Description {
		t.Errorf("received %+v, sent %+v", received, sent)
	}

	verification := received.Verify(context.Background(), engine, bytes.NewReader(data))
	if verification.Verdict != hashengine.VerdictVerified {
		t.Fatalf("Verdict = %v (err %v), want verified", verification.Verdict, verification.Err)
	}
	if verification.Candidate.Algorithm != hashalg.BLAKE2b_512 {
		t.Errorf("checked %v, want blake2b-512", verification.Candidate.Algorithm)
	}

	tampered := bytes.Clone(data)
	tampered[len(tampered)/2] ^= 1
	verification = received.Verify(context.Background(), engine, bytes.NewReader(tampered))
	if verification.Verdict != hashengine.VerdictNotMatching {
		t.Errorf("tampered content: Verdict = %v, want not_matching", verification.Verdict)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	metadata := &Metadata{
		Name: "a.bin",
		Size: 3,
		Hashes: []hashalg.Digest{
			{Algorithm: hashalg.SHA256, Value: bytes.Repeat([]byte{7}, 32)},
		},
	}
	first, err := metadata.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := metadata.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("encoding is not deterministic")
	}
}

func TestVerifyOnlyWeakHashes(t *testing.T) {
	engine := newEngine(t)
	data := []byte("legacy client upload")

	metadata, err := Compute(context.Background(), engine, "old.txt", "", bytes.NewReader(data),
		[]hashalg.Algorithm{hashalg.MD5, hashalg.SHA1})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	verification := metadata.Verify(context.Background(), engine, bytes.NewReader(data))
	if verification.Verdict != hashengine.VerdictNoStrongHashes {
		t.Errorf("Verdict = %v, want no_strong_hashes", verification.Verdict)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	if _, err := Unmarshal([]byte{0xff}); err == nil {
		t.Error("Unmarshal accepted invalid CBOR")
	}

	negative := &Metadata{Name: "x", Size: -1}
	encoded, err := negative.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := Unmarshal(encoded); err == nil {
		t.Error("Unmarshal accepted a negative size")
	}
}

func TestEncodeDecode(t *testing.T) {
	sent := &Metadata{
		Name:      "clip.mp4",
		MediaType: "video/mp4",
		Size:      4096,
		Hashes: []hashalg.Digest{
			{Algorithm: hashalg.SHA256, Value: bytes.Repeat([]byte{1}, 32)},
			{Algorithm: hashalg.BLAKE2b_512, Value: bytes.Repeat([]byte{2}, 64)},
		},
		Description: "recording",
	}

	var buffer bytes.Buffer
	if err := sent.Encode(&buffer); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	marshaled, err := sent.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(buffer.Bytes(), marshaled) {
		t.Errorf("Encode wrote %x, Marshal produced %x", buffer.Bytes(), marshaled)
	}

	received, err := Decode(&buffer)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if received.Name != sent.Name || received.MediaType != sent.MediaType ||
		received.Size != sent.Size || received.Description != sent.Description {
		t.Errorf("received %+v, sent %+v", received, sent)
	}
	if len(received.Hashes) != len(sent.Hashes) {
		t.Fatalf("received %d hashes, want %d", len(received.Hashes), len(sent.Hashes))
	}
	for i := range sent.Hashes {
		if !received.Hashes[i].Equal(sent.Hashes[i]) {
			t.Errorf("hash %d = %v, want %v", i, received.Hashes[i], sent.Hashes[i])
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	negative := &Metadata{Name: "x", Size: -1}
	encoded, err := negative.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"invalid", []byte{0xff}},
		{"truncated", encoded[:len(encoded)-1]},
		{"negative size", encoded},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Decode(bytes.NewReader(test.data)); err == nil {
				t.Error("Decode succeeded, want error")
			}
		})
	}
}
