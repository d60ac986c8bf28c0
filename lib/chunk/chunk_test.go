// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stratahq/strata/lib/digest"
)

// syntheticSource builds deterministic source-like text of roughly the
// requested size.
func syntheticSource(size int) []byte {
	var b strings.Builder
	for i := 0; b.Len() < size; i++ {
		fmt.Fprintf(&b, "func handler%d(w http.ResponseWriter, r *http.Request) {\n", i)
		fmt.Fprintf(&b, "\tlog.Printf(\"request %d: %%s\", r.URL.Path)\n", i*31)
		b.WriteString("\tw.WriteHeader(http.StatusOK)\n}\n\n")
	}
	return []byte(b.String())
}

func TestSplitEmpty(t *testing.T) {
	if chunks := SplitBytes(nil); chunks != nil {
		t.Errorf("SplitBytes(nil) = %v, want nil", chunks)
	}
}

func TestSplitReassembly(t *testing.T) {
	inputs := [][]byte{
		[]byte("short"),
		[]byte("def f():\n    return 1\n"),
		syntheticSource(64 * 1024),
		[]byte(strings.Repeat("x", MaxChunkBytes*3)),
		{0x00, 0xFF, 0x80, 0x01},
	}

	for _, input := range inputs {
		chunks := SplitBytes(input)

		var rebuilt strings.Builder
		for _, c := range chunks {
			rebuilt.WriteString(c.Text)
		}
		if rebuilt.String() != string(input) {
			t.Errorf("reassembly failed for %d-byte input", len(input))
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	input := syntheticSource(128 * 1024)

	first := SplitBytes(input)
	second := SplitBytes(input)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text || first[i].Digest != second[i].Digest {
			t.Fatalf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitBounds(t *testing.T) {
	chunks := SplitBytes(syntheticSource(256 * 1024))
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		if len(c.Text) > MaxChunkBytes {
			t.Errorf("chunk %d: size %d exceeds MaxChunkBytes %d", i, len(c.Text), MaxChunkBytes)
		}
		// Every chunk except the final one must respect the minimum.
		if i < len(chunks)-1 && len(c.Text) < MinChunkBytes {
			t.Errorf("chunk %d: size %d below MinChunkBytes %d", i, len(c.Text), MinChunkBytes)
		}
	}
}

func TestIdenticalContentIdenticalChunks(t *testing.T) {
	// The same bytes presented as two separate inputs (two files)
	// must produce identical chunk sequences — the property that
	// makes cross-file deduplication work.
	content := syntheticSource(32 * 1024)

	first := SplitBytes(content)
	second := SplitBytes(append([]byte(nil), content...))

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Digest != second[i].Digest {
			t.Fatalf("chunk %d digest differs for identical content", i)
		}
	}
}

func TestSharedTailResynchronizes(t *testing.T) {
	// Two inputs that diverge in a short prefix but share a large
	// tail: content-defined boundaries must re-align inside the tail
	// so the dictionary can cover the shared text.
	tail := syntheticSource(64 * 1024)
	one := append([]byte("// variant one\n"), tail...)
	two := append([]byte("# a rather different beginning, and longer too\n"), tail...)

	seen := make(map[digest.Digest]bool)
	for _, c := range SplitBytes(one) {
		seen[c.Digest] = true
	}

	shared := 0
	for _, c := range SplitBytes(two) {
		if seen[c.Digest] {
			shared++
		}
	}

	if shared == 0 {
		t.Error("no shared chunks between inputs with a common 64KB tail")
	}
}

func TestDigestMatchesText(t *testing.T) {
	for _, c := range SplitBytes(syntheticSource(8 * 1024)) {
		if c.Digest != digest.ChunkString(c.Text) {
			t.Fatal("chunk digest does not match its text")
		}
	}
}

func TestTotalSize(t *testing.T) {
	input := syntheticSource(16 * 1024)
	chunks := SplitBytes(input)
	if TotalSize(chunks) != int64(len(input)) {
		t.Errorf("TotalSize = %d, want %d", TotalSize(chunks), len(input))
	}
}
