// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

// Package corpus defines the codec's input: an ordered set of files,
// each a path plus raw bytes.
//
// A corpus is immutable once handed to the codec and is owned by the
// caller. Paths are unique within a corpus; order is significant and
// preserved through compression and decompression.
//
// The corpus checksum is a corpus-domain BLAKE3 digest over the
// Merkle root of per-file digests (each covering the length-prefixed
// path and the content). It is stored in sealed artifacts and
// verified on decompression, so any corruption of a reconstructed
// corpus is detected rather than silently returned.
//
// The package also implements the markdown bundle interchange format
// inherited from the surrounding system: a combined document of
// "## path" headings followed by fenced code blocks. ParseBundle
// turns such a document into a corpus; FormatBundle is its inverse,
// used by the CLI to print decompressed or semantic output.
package corpus
