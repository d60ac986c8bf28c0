// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"encoding/binary"
	"fmt"

	"github.com/stratahq/strata/lib/digest"
)

// File is one corpus entry: a unique path and its exact content.
type File struct {
	Path    string
	Content []byte
}

// Corpus is an ordered sequence of files. Construct with [New] to get
// path validation, or directly when the invariants are already known
// to hold.
type Corpus []File

// New validates files and returns them as a Corpus. Paths must be
// non-empty and unique.
func New(files []File) (Corpus, error) {
	seen := make(map[string]bool, len(files))
	for i, f := range files {
		if f.Path == "" {
			return nil, fmt.Errorf("file %d has an empty path", i)
		}
		if seen[f.Path] {
			return nil, fmt.Errorf("duplicate path %q", f.Path)
		}
		seen[f.Path] = true
	}
	return Corpus(files), nil
}

// Validate checks the Corpus invariants (non-empty, unique paths).
func (c Corpus) Validate() error {
	_, err := New(c)
	return err
}

// TotalSize returns the summed content length in bytes.
func (c Corpus) TotalSize() int64 {
	var total int64
	for _, f := range c {
		total += int64(len(f.Content))
	}
	return total
}

// Checksum returns the corpus-domain digest: a Merkle root over the
// per-file digests, rehashed in corpus domain. Sensitive to file
// order, paths, and every content byte. The empty corpus has a
// well-defined checksum (corpus-domain hash of the zero root).
func (c Corpus) Checksum() digest.Digest {
	fileDigests := make([]digest.Digest, len(c))
	for i, f := range c {
		fileDigests[i] = fileDigest(f)
	}
	return digest.Corpus(digest.MerkleRoot(fileDigests))
}

// fileDigest hashes one file as uvarint(len(path)) || path || content.
// The length prefix keeps distinct (path, content) splits from
// colliding.
func fileDigest(f File) digest.Digest {
	buffer := make([]byte, 0, binary.MaxVarintLen64+len(f.Path)+len(f.Content))
	buffer = binary.AppendUvarint(buffer, uint64(len(f.Path)))
	buffer = append(buffer, f.Path...)
	buffer = append(buffer, f.Content...)
	return digest.File(buffer)
}
