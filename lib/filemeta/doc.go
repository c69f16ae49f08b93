// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package filemeta builds and checks the metadata record that
// accompanies a file shared over the messaging network: name, media
// type, size, and the digests a receiver uses to confirm the content
// arrived intact.
//
// A sender calls [Compute] (or [ComputeFile]) before upload; the
// record travels alongside the file reference. A receiver decodes the
// record and calls [Metadata.Verify] on the downloaded bytes, which
// checks only the strongest secure digest the sender advertised.
//
// Records encode as deterministic CBOR through lib/codec. The same
// struct tags name the fields in JSON output.
package filemeta
