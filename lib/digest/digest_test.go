// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"strings"
	"testing"
)

func TestDomainSeparation(t *testing.T) {
	data := []byte("the same bytes in every domain")

	chunkDigest := Chunk(data)
	fileDigest := File(data)

	if chunkDigest == fileDigest {
		t.Error("chunk and file domains produced the same digest")
	}

	var asRoot Digest
	copy(asRoot[:], data)
	if Corpus(asRoot) == Chunk(asRoot[:]) {
		t.Error("corpus and chunk domains produced the same digest")
	}
}

func TestChunkStringMatchesChunk(t *testing.T) {
	text := "func main() {\n}\n"
	if ChunkString(text) != Chunk([]byte(text)) {
		t.Error("ChunkString and Chunk disagree on the same content")
	}
}

func TestDeterminism(t *testing.T) {
	data := []byte(strings.Repeat("abc", 1000))
	if Chunk(data) != Chunk(data) {
		t.Error("Chunk is not deterministic")
	}
}

func TestMerkleRootEmpty(t *testing.T) {
	if MerkleRoot(nil) != (Digest{}) {
		t.Error("empty Merkle root is not the zero digest")
	}
}

func TestMerkleRootSingle(t *testing.T) {
	leaf := Chunk([]byte("only"))
	if MerkleRoot([]Digest{leaf}) != leaf {
		t.Error("single-leaf Merkle root should be the leaf itself")
	}
}

func TestMerkleRootOrderSensitive(t *testing.T) {
	a := Chunk([]byte("a"))
	b := Chunk([]byte("b"))

	forward := MerkleRoot([]Digest{a, b})
	reversed := MerkleRoot([]Digest{b, a})
	if forward == reversed {
		t.Error("Merkle root is order-insensitive")
	}
}

func TestMerkleRootOddPromotion(t *testing.T) {
	a := Chunk([]byte("a"))
	b := Chunk([]byte("b"))
	c := Chunk([]byte("c"))

	// With promotion (not duplication), [a b c] must differ from
	// [a b c c].
	three := MerkleRoot([]Digest{a, b, c})
	four := MerkleRoot([]Digest{a, b, c, c})
	if three == four {
		t.Error("odd leaf appears to be duplicated rather than promoted")
	}
}

func TestMerkleRootDoesNotMutateInput(t *testing.T) {
	leaves := []Digest{Chunk([]byte("x")), Chunk([]byte("y")), Chunk([]byte("z"))}
	saved := make([]Digest, len(leaves))
	copy(saved, leaves)

	MerkleRoot(leaves)

	for i := range leaves {
		if leaves[i] != saved[i] {
			t.Fatalf("leaf %d mutated by MerkleRoot", i)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	original := Chunk([]byte("round trip"))

	formatted := Format(original)
	if len(formatted) != 64 {
		t.Fatalf("formatted digest length = %d, want 64", len(formatted))
	}

	parsed, err := Parse(formatted)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", formatted, err)
	}
	if parsed != original {
		t.Error("parsed digest does not match original")
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := []string{
		"",
		"abc",
		strings.Repeat("zz", 32),
		strings.Repeat("ab", 16), // valid hex, wrong length
	}
	for _, input := range cases {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}
