// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

// Package dict builds the corpus-wide chunk dictionary.
//
// Construction is two-phase. In the collection phase, chunk
// occurrences are counted across the whole corpus; the phase is safe
// to run from per-file goroutines because the merge is commutative
// (counts sum, first-occurrence positions take the minimum), so the
// result is independent of scheduling. The selection phase then runs
// once, after all collection has finished: chunks are ranked by
// estimated bytes saved and assigned integer codes. A chunk occurring
// once, or too short to beat the cost of referencing it, never earns
// a code.
//
// The finished Dictionary is immutable and shared read-only by every
// encoder working on the corpus. Building is deterministic: the same
// corpus always yields the same codes for the same chunks, regardless
// of how the collection work was scheduled.
package dict
