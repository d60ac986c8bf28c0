// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 digest. All Strata hashes (chunk, file,
// corpus) are this size.
type Digest [32]byte

// domainKey is a 32-byte key for BLAKE3 keyed hashing. Domain
// separation ensures that the same input bytes produce different
// digests in different contexts.
type domainKey [32]byte

// Domain separation keys. These are format constants — changing them
// invalidates every digest in that domain, including checksums stored
// in sealed artifacts. The byte values are the ASCII encoding of the
// domain name, zero-padded to 32 bytes, so the keys are inspectable
// in hex dumps without sacrificing any property of BLAKE3 keyed mode.
var (
	chunkDomainKey = domainKey{
		's', 't', 'r', 'a', 't', 'a', '.', 'c', 'h', 'u', 'n', 'k',
	}

	fileDomainKey = domainKey{
		's', 't', 'r', 'a', 't', 'a', '.', 'f', 'i', 'l', 'e',
	}

	corpusDomainKey = domainKey{
		's', 't', 'r', 'a', 't', 'a', '.', 'c', 'o', 'r', 'p', 'u', 's',
	}
)

// Chunk computes the chunk-domain digest of the given data. This is
// the key under which chunks are stored in the dictionary and the
// basis of cross-file deduplication. Always computed on the chunk's
// raw text, never on any encoded form.
func Chunk(data []byte) Digest {
	return keyedHash(chunkDomainKey, data)
}

// ChunkString is Chunk for string input, avoiding a copy at call
// sites that hold chunk text as strings.
func ChunkString(text string) Digest {
	hasher := newHasher(chunkDomainKey)
	hasher.WriteString(text)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// File computes the file-domain digest of the given data. Callers
// hash a length-prefixed path followed by the file content so that
// (path, content) pairs cannot collide across different splits.
func File(data []byte) Digest {
	return keyedHash(fileDomainKey, data)
}

// Corpus computes the corpus-domain digest from the Merkle root over
// the per-file digests. For an empty corpus, pass the zero Digest.
func Corpus(merkleRoot Digest) Digest {
	return keyedHash(corpusDomainKey, merkleRoot[:])
}

// MerkleRoot computes a binary Merkle tree over the given digests and
// returns the root. The tree is built bottom-up in corpus domain:
// adjacent pairs are concatenated and hashed. When a level has an odd
// number of nodes, the last node is promoted to the next level
// without hashing (it is NOT duplicated — duplicating would let two
// different inputs share a root when one is a prefix of the other).
//
// Returns the zero Digest for an empty list, which callers feed to
// [Corpus] to obtain the empty-corpus checksum.
func MerkleRoot(digests []Digest) Digest {
	if len(digests) == 0 {
		return Digest{}
	}
	if len(digests) == 1 {
		return digests[0]
	}

	// One keyed hasher reused via Reset() per pair: the dominant
	// allocation source for large trees is otherwise a fresh hasher
	// per node.
	hasher := newHasher(corpusDomainKey)

	var combined [64]byte
	hashPair := func(left, right Digest) Digest {
		copy(combined[:32], left[:])
		copy(combined[32:], right[:])
		hasher.Reset()
		hasher.Write(combined[:])
		var result Digest
		copy(result[:], hasher.Sum(nil))
		return result
	}

	// Work on a copy to avoid mutating the caller's slice.
	level := make([]Digest, len(digests))
	copy(level, digests)

	for len(level) > 1 {
		nextLength := (len(level) + 1) / 2
		next := make([]Digest, nextLength)

		for i := 0; i < len(level)-1; i += 2 {
			next[i/2] = hashPair(level[i], level[i+1])
		}

		// Odd node: promote without hashing.
		if len(level)%2 == 1 {
			next[nextLength-1] = level[len(level)-1]
		}

		level = next
	}

	return level[0]
}

// Format returns the hex-encoded string representation of a digest.
// This is the canonical format used in metadata, logs, and CLI output.
func Format(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// Parse parses a 64-character hex string into a Digest.
func Parse(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}

// newHasher creates a BLAKE3 keyed hasher for the given domain.
func newHasher(key domainKey) *blake3.Hasher {
	// NewKeyed requires exactly 32 bytes, which domainKey guarantees.
	// The error is only returned for wrong key length, so this cannot
	// fail with our fixed-size type.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

// keyedHash computes the BLAKE3 keyed hash of data under key.
func keyedHash(key domainKey, data []byte) Digest {
	hasher := newHasher(key)
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}
