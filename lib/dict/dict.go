// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package dict

import (
	"fmt"
	"sort"
	"sync"

	"github.com/stratahq/strata/lib/chunk"
	"github.com/stratahq/strata/lib/digest"
)

const (
	// FirstCode is the lowest dictionary code. Code 0 is reserved by
	// the artifact format to mark literal payload items, so no chunk
	// is ever assigned it.
	FirstCode = 1

	// minSavingsBytes is the dictionary-worthiness cutoff: the
	// estimated bytes saved by an entry, (occurrences−1) × length,
	// must exceed this before the entry earns a code. Calibrated to
	// beat the per-reference encoding cost (a small CBOR integer)
	// plus the entry's share of dictionary overhead.
	minSavingsBytes = 16
)

// Entry is one dictionary entry: a code and the chunk text it stands
// for.
type Entry struct {
	Code uint64 `json:"code"`
	Text string `json:"text"`
}

// Dictionary maps chunk digests to compact integer codes. Immutable
// after construction; safe for concurrent readers.
type Dictionary struct {
	codeByDigest map[digest.Digest]uint64
	textByCode   map[uint64]string
	entries      []Entry // sorted by code
}

// Lookup returns the code assigned to a chunk digest, if any.
func (d *Dictionary) Lookup(dg digest.Digest) (uint64, bool) {
	code, ok := d.codeByDigest[dg]
	return code, ok
}

// Text returns the chunk text for a code, if the code is assigned.
func (d *Dictionary) Text(code uint64) (string, bool) {
	text, ok := d.textByCode[code]
	return text, ok
}

// Entries returns the dictionary entries sorted by code. The returned
// slice is shared; callers must not modify it.
func (d *Dictionary) Entries() []Entry {
	return d.entries
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// TextSize returns the summed length of all entry texts, the
// dictionary's contribution to payload size accounting.
func (d *Dictionary) TextSize() int64 {
	var total int64
	for _, e := range d.entries {
		total += int64(len(e.Text))
	}
	return total
}

// FromEntries reconstructs a Dictionary from serialized entries (the
// decode side of an artifact). Codes must be unique and at least
// FirstCode.
func FromEntries(entries []Entry) (*Dictionary, error) {
	d := &Dictionary{
		codeByDigest: make(map[digest.Digest]uint64, len(entries)),
		textByCode:   make(map[uint64]string, len(entries)),
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	for _, e := range sorted {
		if e.Code < FirstCode {
			return nil, fmt.Errorf("dictionary code %d is below the minimum %d", e.Code, FirstCode)
		}
		if _, exists := d.textByCode[e.Code]; exists {
			return nil, fmt.Errorf("dictionary code %d assigned twice", e.Code)
		}
		d.textByCode[e.Code] = e.Text
		d.codeByDigest[digest.ChunkString(e.Text)] = e.Code
	}
	d.entries = sorted
	return d, nil
}

// occurrence tracks one chunk's statistics during collection. The
// first-seen position (file index, then byte offset) breaks ranking
// ties deterministically.
type occurrence struct {
	text      string
	count     int
	fileIndex int
	offset    int64
}

// Builder accumulates chunk occurrences for one compression call.
// AddSection may be called concurrently from per-file workers; Build
// is the synchronization barrier after which no further collection is
// allowed.
type Builder struct {
	mu    sync.Mutex
	seen  map[digest.Digest]*occurrence
	built bool
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{seen: make(map[digest.Digest]*occurrence)}
}

// AddSection records the chunks of one contiguous section of a file.
// fileIndex is the file's position in the corpus and offset the
// section's starting byte offset within the file; together they give
// every chunk a stable corpus position for tie-breaking. Safe for
// concurrent use.
func (b *Builder) AddSection(fileIndex int, offset int64, chunks []chunk.Chunk) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		panic("dict: AddSection after Build")
	}

	position := offset
	for _, c := range chunks {
		if existing, ok := b.seen[c.Digest]; ok {
			existing.count++
			// Commutative merge: keep the earliest corpus position
			// regardless of the order sections arrive in.
			if fileIndex < existing.fileIndex ||
				(fileIndex == existing.fileIndex && position < existing.offset) {
				existing.fileIndex = fileIndex
				existing.offset = position
			}
		} else {
			b.seen[c.Digest] = &occurrence{
				text:      c.Text,
				count:     1,
				fileIndex: fileIndex,
				offset:    position,
			}
		}
		position += int64(len(c.Text))
	}
}

// Build runs the selection phase and returns the finished Dictionary.
// Chunks are ranked by estimated savings, (count−1) × length,
// descending; ties break by first occurrence (lowest file index, then
// lowest byte offset). Codes are assigned in rank order starting at
// FirstCode. The Builder must not be used again after Build.
func (b *Builder) Build() *Dictionary {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.built = true

	candidates := make([]*occurrence, 0, len(b.seen))
	for _, occ := range b.seen {
		if savings(occ) > minSavingsBytes {
			candidates = append(candidates, occ)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := savings(candidates[i]), savings(candidates[j])
		if si != sj {
			return si > sj
		}
		if candidates[i].fileIndex != candidates[j].fileIndex {
			return candidates[i].fileIndex < candidates[j].fileIndex
		}
		return candidates[i].offset < candidates[j].offset
	})

	d := &Dictionary{
		codeByDigest: make(map[digest.Digest]uint64, len(candidates)),
		textByCode:   make(map[uint64]string, len(candidates)),
		entries:      make([]Entry, 0, len(candidates)),
	}
	for i, occ := range candidates {
		code := uint64(FirstCode + i)
		d.codeByDigest[digest.ChunkString(occ.text)] = code
		d.textByCode[code] = occ.text
		d.entries = append(d.entries, Entry{Code: code, Text: occ.text})
	}
	return d
}

// savings estimates the bytes saved by replacing all repeats of a
// chunk with its code: every occurrence after the first drops the
// chunk's length from the payload.
func savings(occ *occurrence) int64 {
	return int64(occ.count-1) * int64(len(occ.text))
}
