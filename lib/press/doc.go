// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

// Package press implements the corpus compression codec: the four
// artifact modes, the artifact model, sealing, and self-verification.
//
// Compression turns a corpus into an Artifact in one of four modes:
//
//   - none: pass-through; every file is carried verbatim.
//   - semantic: lossy structural skeletons only. One-way by design —
//     decoding a semantic artifact fails with ErrNotReconstructible.
//   - lossless: per-file streams of dictionary codes and literals.
//     Decodes back to the original corpus byte-for-byte.
//   - hybrid: skeleton (readable) plus a patch (everything omitted),
//     both carried; decodes byte-for-byte like lossless.
//
// The pipeline is: per-file tokenize and chunk in parallel, merge
// chunk statistics, build the dictionary (a synchronization barrier —
// codes must be stable before any file is encoded), encode per file
// in parallel, then self-verify: for the two exact modes the encoder
// decodes its own output and compares it against the input corpus
// before the artifact is released. A corpus is either compressed
// completely or not at all; no partial artifact ever escapes, and
// cancellation of the context aborts the whole operation.
//
// Sealing serializes an Artifact to deterministic CBOR and wraps it
// in a small container with whole-artifact compression (zstd by
// default, lz4 or none selectable), plus an optional encrypted
// envelope (XChaCha20-Poly1305).
package press
