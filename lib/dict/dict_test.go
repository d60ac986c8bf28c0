// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package dict

import (
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stratahq/strata/lib/chunk"
	"github.com/stratahq/strata/lib/digest"
)

// mkChunk builds a chunk directly from text.
func mkChunk(text string) chunk.Chunk {
	return chunk.Chunk{Text: text, Digest: digest.ChunkString(text)}
}

func TestSingleOccurrenceNeverWorthy(t *testing.T) {
	b := NewBuilder()
	b.AddSection(0, 0, []chunk.Chunk{mkChunk(strings.Repeat("x", 1000))})

	d := b.Build()
	if d.Len() != 0 {
		t.Errorf("dictionary has %d entries for a once-seen chunk, want 0", d.Len())
	}
}

func TestShortRepeatsNotWorthy(t *testing.T) {
	// An 8-byte chunk seen twice saves 8 bytes — below the cutoff.
	b := NewBuilder()
	b.AddSection(0, 0, []chunk.Chunk{mkChunk("12345678")})
	b.AddSection(1, 0, []chunk.Chunk{mkChunk("12345678")})

	d := b.Build()
	if d.Len() != 0 {
		t.Errorf("dictionary has %d entries for a marginal chunk, want 0", d.Len())
	}
}

func TestRepeatedChunkEarnsCode(t *testing.T) {
	text := strings.Repeat("boilerplate ", 10)
	b := NewBuilder()
	b.AddSection(0, 0, []chunk.Chunk{mkChunk(text)})
	b.AddSection(1, 0, []chunk.Chunk{mkChunk(text)})

	d := b.Build()
	if d.Len() != 1 {
		t.Fatalf("dictionary has %d entries, want 1", d.Len())
	}

	code, ok := d.Lookup(digest.ChunkString(text))
	if !ok {
		t.Fatal("repeated chunk not in dictionary")
	}
	if code != FirstCode {
		t.Errorf("code = %d, want %d", code, FirstCode)
	}
	if got, _ := d.Text(code); got != text {
		t.Errorf("Text(%d) = %q, want original chunk text", code, got)
	}
}

func TestRankingBySavings(t *testing.T) {
	big := strings.Repeat("B", 200)   // 2 occurrences: saves 200
	small := strings.Repeat("s", 50)  // 2 occurrences: saves 50
	often := strings.Repeat("o", 40)  // 11 occurrences: saves 400

	b := NewBuilder()
	b.AddSection(0, 0, []chunk.Chunk{mkChunk(big), mkChunk(small)})
	b.AddSection(1, 0, []chunk.Chunk{mkChunk(big), mkChunk(small)})
	for i := 0; i < 11; i++ {
		b.AddSection(2, int64(i*100), []chunk.Chunk{mkChunk(often)})
	}

	d := b.Build()
	if d.Len() != 3 {
		t.Fatalf("dictionary has %d entries, want 3", d.Len())
	}

	// Highest savings gets the lowest code.
	wantOrder := []string{often, big, small}
	for i, e := range d.Entries() {
		if e.Text != wantOrder[i] {
			t.Errorf("entry %d text = %.10q..., want %.10q...", i, e.Text, wantOrder[i])
		}
		if e.Code != uint64(FirstCode+i) {
			t.Errorf("entry %d code = %d, want %d", i, e.Code, FirstCode+i)
		}
	}
}

func TestTieBreakByFirstOccurrence(t *testing.T) {
	// Two chunks with identical savings: the one first seen at the
	// lower corpus position wins the lower code, no matter the order
	// sections are added in.
	early := strings.Repeat("e", 100)
	late := strings.Repeat("l", 100)

	b := NewBuilder()
	// Add the later-positioned chunk's sections first.
	b.AddSection(1, 500, []chunk.Chunk{mkChunk(late)})
	b.AddSection(2, 0, []chunk.Chunk{mkChunk(late)})
	b.AddSection(0, 0, []chunk.Chunk{mkChunk(early)})
	b.AddSection(2, 800, []chunk.Chunk{mkChunk(early)})

	d := b.Build()
	entries := d.Entries()
	if len(entries) != 2 {
		t.Fatalf("dictionary has %d entries, want 2", len(entries))
	}
	if entries[0].Text != early {
		t.Errorf("first code went to the later-positioned chunk")
	}
}

func TestBuildDeterministicUnderConcurrency(t *testing.T) {
	// Sections added from many goroutines in randomized order must
	// always yield the identical dictionary.
	type section struct {
		fileIndex int
		offset    int64
		chunks    []chunk.Chunk
	}

	var sections []section
	for f := 0; f < 20; f++ {
		for s := 0; s < 5; s++ {
			text := strings.Repeat("shared-", 10) + string(rune('a'+f%7))
			sections = append(sections, section{
				fileIndex: f,
				offset:    int64(s * 300),
				chunks:    []chunk.Chunk{mkChunk(text), mkChunk(strings.Repeat("tail", 20))},
			})
		}
	}

	build := func(seed int64) []Entry {
		shuffled := make([]section, len(sections))
		copy(shuffled, sections)
		rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		b := NewBuilder()
		var wg sync.WaitGroup
		for _, sec := range shuffled {
			wg.Add(1)
			go func(sec section) {
				defer wg.Done()
				b.AddSection(sec.fileIndex, sec.offset, sec.chunks)
			}(sec)
		}
		wg.Wait()
		return b.Build().Entries()
	}

	reference := build(1)
	for seed := int64(2); seed <= 5; seed++ {
		got := build(seed)
		if len(got) != len(reference) {
			t.Fatalf("seed %d: %d entries, want %d", seed, len(got), len(reference))
		}
		for i := range got {
			if got[i] != reference[i] {
				t.Fatalf("seed %d: entry %d = %+v, want %+v", seed, i, got[i], reference[i])
			}
		}
	}
}

func TestFromEntriesRoundTrip(t *testing.T) {
	text := strings.Repeat("entry ", 20)
	b := NewBuilder()
	b.AddSection(0, 0, []chunk.Chunk{mkChunk(text)})
	b.AddSection(1, 0, []chunk.Chunk{mkChunk(text)})
	original := b.Build()

	restored, err := FromEntries(original.Entries())
	if err != nil {
		t.Fatalf("FromEntries failed: %v", err)
	}

	code, ok := restored.Lookup(digest.ChunkString(text))
	if !ok || code != FirstCode {
		t.Errorf("restored Lookup = (%d, %v), want (%d, true)", code, ok, FirstCode)
	}
}

func TestFromEntriesRejectsBadCodes(t *testing.T) {
	if _, err := FromEntries([]Entry{{Code: 0, Text: "x"}}); err == nil {
		t.Error("FromEntries accepted code 0")
	}
	if _, err := FromEntries([]Entry{{Code: 1, Text: "x"}, {Code: 1, Text: "y"}}); err == nil {
		t.Error("FromEntries accepted a duplicate code")
	}
}

func TestTextSize(t *testing.T) {
	a := strings.Repeat("a", 100)
	b2 := strings.Repeat("b", 60)

	b := NewBuilder()
	b.AddSection(0, 0, []chunk.Chunk{mkChunk(a), mkChunk(b2)})
	b.AddSection(1, 0, []chunk.Chunk{mkChunk(a), mkChunk(b2)})

	d := b.Build()
	if d.TextSize() != 160 {
		t.Errorf("TextSize = %d, want 160", d.TextSize())
	}
}
