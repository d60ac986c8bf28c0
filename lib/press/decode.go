// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package press

import (
	"bytes"
	"fmt"

	"github.com/stratahq/strata/lib/corpus"
	"github.com/stratahq/strata/lib/dict"
)

// Decode reconstructs the original corpus from an artifact. The
// reconstructed corpus is verified against the checksum stored at
// compression time; a mismatch returns ErrChecksumMismatch and no
// corpus. Semantic artifacts return ErrNotReconstructible.
func Decode(artifact *Artifact) (corpus.Corpus, error) {
	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if !artifact.Mode.Reconstructible() {
		return nil, fmt.Errorf("decode: %w", ErrNotReconstructible)
	}

	c, err := reconstruct(artifact)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if c.Checksum() != artifact.Metadata.Checksum {
		return nil, fmt.Errorf("decode: %w", ErrChecksumMismatch)
	}
	return c, nil
}

// reconstruct rebuilds the corpus from a reconstructible artifact
// without checksum verification. Callers that need the integrity
// guarantee use Decode.
func reconstruct(artifact *Artifact) (corpus.Corpus, error) {
	dictionary, err := dict.FromEntries(artifact.Dictionary)
	if err != nil {
		return nil, malformed(err.Error())
	}

	files := make([]corpus.File, len(artifact.Files))
	for i, payload := range artifact.Files {
		content, err := decodeFile(artifact.Mode, payload, dictionary)
		if err != nil {
			return nil, err
		}
		files[i] = corpus.File{Path: payload.Path, Content: content}
	}
	return corpus.Corpus(files), nil
}

// decodeFile rebuilds one file's content for its mode.
func decodeFile(mode Mode, payload FilePayload, dictionary *dict.Dictionary) ([]byte, error) {
	switch mode {
	case ModeNone:
		return bytes.Clone(payload.Raw), nil

	case ModeLossless:
		return decodeItems(payload.Path, payload.Items, dictionary)

	case ModeHybrid:
		return decodeHybrid(payload, dictionary)
	}
	return nil, malformed(fmt.Sprintf("mode %s cannot be decoded", mode))
}

// decodeHybrid splices the patch spans back between the skeleton
// lines. Spans and skeleton lines are consumed in order: before each
// skeleton line, every span anchored at that position is expanded.
func decodeHybrid(payload FilePayload, dictionary *dict.Dictionary) ([]byte, error) {
	var out bytes.Buffer
	next := 0

	emitSpansAt := func(anchor int) error {
		for next < len(payload.Patch) && payload.Patch[next].AfterLine == anchor {
			text, err := decodeItems(payload.Path, payload.Patch[next].Items, dictionary)
			if err != nil {
				return err
			}
			out.Write(text)
			next++
		}
		return nil
	}

	for line := 0; line <= len(payload.Skeleton); line++ {
		if err := emitSpansAt(line); err != nil {
			return nil, err
		}
		if line < len(payload.Skeleton) {
			out.WriteString(payload.Skeleton[line])
		}
	}
	return out.Bytes(), nil
}

// decodeItems expands an item stream to bytes.
func decodeItems(path string, items []Item, dictionary *dict.Dictionary) ([]byte, error) {
	var out bytes.Buffer
	for _, item := range items {
		if item.Code == 0 {
			out.WriteString(item.Text)
			continue
		}
		text, ok := dictionary.Text(item.Code)
		if !ok {
			return nil, malformed(fmt.Sprintf("file %q references undefined dictionary code %d", path, item.Code))
		}
		out.WriteString(text)
	}
	return out.Bytes(), nil
}
