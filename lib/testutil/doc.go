// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for filehash packages.
//
// [RequireReceive] and [RequireClosed] wrap the timeout safety valve
// pattern (select with a time.After fallback) so that a hashing
// request that never delivers its outcome fails the test instead of
// hanging it. These helpers are the only place in the test suite
// where wall-clock timeouts appear.
//
// [RandomData] returns deterministic pseudorandom payloads seeded from
// the test name, so that failures reproduce exactly without fixture
// files.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
