// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package press

import (
	"fmt"

	"github.com/stratahq/strata/lib/dict"
	"github.com/stratahq/strata/lib/digest"
)

// ArtifactVersion is the current artifact format version.
const ArtifactVersion = 1

// perCodeCost is the accounted size in bytes of one dictionary code
// reference (a small CBOR unsigned integer plus item framing). Used
// for payload size accounting only; the wire cost is whatever CBOR
// actually produces.
const perCodeCost = 3

// Item is one element of an encoded payload stream: either a
// dictionary code (Code ≥ 1, Text empty) or a literal (Code 0, Text
// carries the bytes).
type Item struct {
	Code uint64 `json:"code,omitempty"`
	Text string `json:"text,omitempty"`
}

// Span is one patch element of a hybrid payload: the items that
// reconstruct an omitted run of lines, anchored by the number of
// skeleton lines that precede it.
type Span struct {
	// AfterLine is the anchor: this span's text is spliced after the
	// first AfterLine skeleton lines (0 means before any skeleton
	// line; len(skeleton) means after all of them).
	AfterLine int `json:"after_line"`

	// Items encode the omitted text with the shared dictionary.
	Items []Item `json:"items"`
}

// FilePayload is one file's encoded form. Exactly the fields implied
// by the artifact mode are populated:
//
//	none:     Raw
//	semantic: Skeleton
//	lossless: Items
//	hybrid:   Skeleton, Patch
type FilePayload struct {
	Path     string   `json:"path"`
	Raw      []byte   `json:"raw,omitempty"`
	Items    []Item   `json:"items,omitempty"`
	Skeleton []string `json:"skeleton,omitempty"`
	Patch    []Span   `json:"patch,omitempty"`
}

// Metadata carries the size accounting and the corpus checksum.
type Metadata struct {
	// OriginalSize is the summed content length of the input corpus.
	OriginalSize int64 `json:"original_size"`

	// CompressedSize is the accounted payload size: per-file payload
	// bytes plus the dictionary's text and code overhead. Zero for an
	// empty corpus. The sealed container applies whole-artifact
	// compression on top of this, so the sealed byte count is usually
	// smaller still.
	CompressedSize int64 `json:"compressed_size"`

	// CompressionRatio is 1 − CompressedSize/OriginalSize, zero for
	// an empty corpus. Negative when the payload overhead exceeds the
	// input (tiny corpora).
	CompressionRatio float64 `json:"compression_ratio"`

	// Checksum is the corpus-domain digest of the original corpus,
	// verified on decompression.
	Checksum digest.Digest `json:"checksum"`
}

// Artifact is the complete, self-describing output of one
// compression call.
type Artifact struct {
	Version    int           `json:"version"`
	Mode       Mode          `json:"mode"`
	Dictionary []dict.Entry  `json:"dictionary,omitempty"`
	Files      []FilePayload `json:"files"`
	Metadata   Metadata      `json:"metadata"`
}

// Validate checks that the artifact is internally consistent with its
// declared mode. Returns a *MalformedArtifactError describing the
// first problem found.
func (a *Artifact) Validate() error {
	if a.Version != ArtifactVersion {
		return malformed(fmt.Sprintf("version %d is not supported (want %d)", a.Version, ArtifactVersion))
	}
	if !a.Mode.valid() {
		return malformed(fmt.Sprintf("unknown mode %d", uint8(a.Mode)))
	}
	if a.Metadata.OriginalSize < 0 || a.Metadata.CompressedSize < 0 {
		return malformed("negative size in metadata")
	}

	if a.Mode == ModeNone || a.Mode == ModeSemantic {
		if len(a.Dictionary) != 0 {
			return malformed(fmt.Sprintf("%s artifact carries a dictionary", a.Mode))
		}
	}

	codes := make(map[uint64]bool, len(a.Dictionary))
	for _, entry := range a.Dictionary {
		if entry.Code < dict.FirstCode {
			return malformed(fmt.Sprintf("dictionary code %d below minimum %d", entry.Code, dict.FirstCode))
		}
		if codes[entry.Code] {
			return malformed(fmt.Sprintf("dictionary code %d assigned twice", entry.Code))
		}
		codes[entry.Code] = true
	}

	paths := make(map[string]bool, len(a.Files))
	for i, file := range a.Files {
		if file.Path == "" {
			return malformed(fmt.Sprintf("file %d has an empty path", i))
		}
		if paths[file.Path] {
			return malformed(fmt.Sprintf("duplicate path %q", file.Path))
		}
		paths[file.Path] = true

		if err := a.validatePayload(i, file, codes); err != nil {
			return err
		}
	}
	return nil
}

// validatePayload checks one file's payload against the artifact
// mode.
func (a *Artifact) validatePayload(index int, file FilePayload, codes map[uint64]bool) error {
	switch a.Mode {
	case ModeNone:
		if len(file.Items) != 0 || len(file.Skeleton) != 0 || len(file.Patch) != 0 {
			return malformed(fmt.Sprintf("file %d: non-raw fields in none mode", index))
		}

	case ModeSemantic:
		if len(file.Raw) != 0 || len(file.Items) != 0 || len(file.Patch) != 0 {
			return malformed(fmt.Sprintf("file %d: non-skeleton fields in semantic mode", index))
		}

	case ModeLossless:
		if len(file.Raw) != 0 || len(file.Skeleton) != 0 || len(file.Patch) != 0 {
			return malformed(fmt.Sprintf("file %d: non-item fields in lossless mode", index))
		}
		if err := validateItems(index, file.Items, codes); err != nil {
			return err
		}

	case ModeHybrid:
		if len(file.Raw) != 0 || len(file.Items) != 0 {
			return malformed(fmt.Sprintf("file %d: raw or item fields in hybrid mode", index))
		}
		previousAnchor := 0
		for _, span := range file.Patch {
			if span.AfterLine < previousAnchor {
				return malformed(fmt.Sprintf("file %d: patch anchors out of order", index))
			}
			if span.AfterLine > len(file.Skeleton) {
				return malformed(fmt.Sprintf("file %d: patch anchor %d beyond skeleton of %d lines",
					index, span.AfterLine, len(file.Skeleton)))
			}
			previousAnchor = span.AfterLine
			if err := validateItems(index, span.Items, codes); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateItems checks that items are well-formed and reference only
// defined dictionary codes.
func validateItems(fileIndex int, items []Item, codes map[uint64]bool) error {
	for _, item := range items {
		if item.Code != 0 && item.Text != "" {
			return malformed(fmt.Sprintf("file %d: item with both code and literal text", fileIndex))
		}
		if item.Code != 0 && !codes[item.Code] {
			return malformed(fmt.Sprintf("file %d: reference to undefined dictionary code %d", fileIndex, item.Code))
		}
	}
	return nil
}

// payloadSize returns the accounted size of one file payload.
func payloadSize(file FilePayload) int64 {
	var total int64
	total += int64(len(file.Raw))
	total += itemsSize(file.Items)
	for _, line := range file.Skeleton {
		total += int64(len(line))
	}
	for _, span := range file.Patch {
		total += itemsSize(span.Items)
	}
	return total
}

// itemsSize returns the accounted size of an item stream: literals by
// length, code references at perCodeCost.
func itemsSize(items []Item) int64 {
	var total int64
	for _, item := range items {
		if item.Code != 0 {
			total += perCodeCost
		} else {
			total += int64(len(item.Text))
		}
	}
	return total
}

// accountedSize returns the artifact's CompressedSize: all file
// payloads plus the dictionary's texts and per-entry code overhead.
func accountedSize(dictionary []dict.Entry, files []FilePayload) int64 {
	var total int64
	for _, entry := range dictionary {
		total += int64(len(entry.Text)) + perCodeCost
	}
	for _, file := range files {
		total += payloadSize(file)
	}
	return total
}

// ratio computes 1 − compressed/original, zero for an empty corpus.
func ratio(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return 1 - float64(compressedSize)/float64(originalSize)
}
