// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's CBOR encoding configuration.
//
// File metadata records are exchanged as CBOR when they travel outside
// the messaging protocol's XML elements: written to disk by the CLI,
// attached to local transfer manifests, or compared byte-for-byte. The
// encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items.
//
//	data, err := codec.Marshal(record)
//	err = codec.Unmarshal(data, &record)
//
// Types that also appear in CLI JSON output carry `json` struct tags;
// fxamacker/cbor reads them when no `cbor` tag is present, so one tag
// names the field in both formats. Never put both tags on a field.
package codec
