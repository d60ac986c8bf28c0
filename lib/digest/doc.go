// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest provides BLAKE3 hashing for the Strata codec.
//
// All hashes are 32-byte BLAKE3 keyed digests with domain separation:
// the same bytes hashed in different contexts (a chunk, a file, a
// whole corpus) produce unrelated digests, so a value from one domain
// can never be confused for a value from another.
//
// Three domains exist:
//
//   - chunk: content-defined chunks, keyed for dictionary lookup and
//     deduplication.
//   - file: a single corpus file (its path and content together).
//   - corpus: the whole corpus, derived from the Merkle root over the
//     per-file digests. This is the checksum stored in artifacts and
//     verified on decompression.
package digest
