// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package workpool provides a fixed-size pool of goroutines that run
// short, independent units of work.
//
// A Pool is long-lived and shared: one pool per process serves every
// hashing request, and no request owns it. Units are plain funcs with
// no ordering guarantee between them. Submit blocks only while the
// bounded queue is full, and honors context cancellation while it
// waits.
//
// A unit that panics is recovered so one bad unit cannot take down
// the workers shared by every other request. The panic value is
// logged and passed to the unit's OnPanic hook when one is supplied
// through [Pool.SubmitUnit].
package workpool
