// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package press

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/stratahq/strata/lib/codec"
	"github.com/stratahq/strata/lib/corpus"
)

// CompressionTag names the whole-artifact compression applied inside a
// sealed container.
type CompressionTag uint8

const (
	// CompressionNone stores the CBOR payload uncompressed.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 trades ratio for speed.
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd is the default.
	CompressionZstd CompressionTag = 2
)

// String returns the tag's lowercase name.
func (t CompressionTag) String() string {
	switch t {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// ParseCompressionTag parses a tag from its string representation.
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

func (t CompressionTag) valid() bool {
	return t <= CompressionZstd
}

// maxSealedPayload bounds the declared uncompressed length in a sealed
// container, so a corrupted header cannot drive a decompression bomb.
const maxSealedPayload = 1 << 32

// Seal serializes the artifact to deterministic CBOR and wraps it in a
// sealed container:
//
//	[version byte] [compression tag] [uvarint uncompressed length] [payload]
//
// If the requested compression does not actually shrink the payload,
// the container silently falls back to storing it uncompressed; Open
// handles either form transparently.
func Seal(artifact *Artifact, compression CompressionTag) ([]byte, error) {
	if !compression.valid() {
		return nil, fmt.Errorf("seal: unknown compression tag %d", uint8(compression))
	}
	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	payload, err := codec.Marshal(artifact)
	if err != nil {
		return nil, fmt.Errorf("seal: encode artifact: %w", err)
	}

	compressed, err := compressPayload(payload, compression)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}
	if len(compressed) >= len(payload) {
		compression = CompressionNone
		compressed = payload
	}

	var out bytes.Buffer
	out.Grow(len(compressed) + 2 + binary.MaxVarintLen64)
	out.WriteByte(ArtifactVersion)
	out.WriteByte(byte(compression))
	var lengthBuf [binary.MaxVarintLen64]byte
	out.Write(lengthBuf[:binary.PutUvarint(lengthBuf[:], uint64(len(payload)))])
	out.Write(compressed)
	return out.Bytes(), nil
}

// Open parses a sealed container and returns the artifact inside it.
func Open(sealed []byte) (*Artifact, error) {
	if len(sealed) < 3 {
		return nil, malformed("sealed container too short")
	}
	if sealed[0] != ArtifactVersion {
		return nil, malformed(fmt.Sprintf("sealed version %d is not supported (want %d)", sealed[0], ArtifactVersion))
	}
	tag := CompressionTag(sealed[1])
	if !tag.valid() {
		return nil, malformed(fmt.Sprintf("unknown compression tag %d", sealed[1]))
	}

	length, n := binary.Uvarint(sealed[2:])
	if n <= 0 {
		return nil, malformed("sealed container has a truncated length header")
	}
	if length > maxSealedPayload {
		return nil, malformed(fmt.Sprintf("sealed payload declares %d bytes, beyond the %d limit", length, maxSealedPayload))
	}
	body := sealed[2+n:]

	payload, err := decompressPayload(body, tag, int(length))
	if err != nil {
		return nil, err
	}
	if uint64(len(payload)) != length {
		return nil, malformed(fmt.Sprintf("sealed payload decompressed to %d bytes, header declares %d", len(payload), length))
	}

	var artifact Artifact
	if err := codec.Unmarshal(payload, &artifact); err != nil {
		return nil, malformed(fmt.Sprintf("artifact does not decode: %v", err))
	}
	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return &artifact, nil
}

// Decompress opens a sealed container and decodes the artifact inside
// it, returning the reconstructed corpus.
func Decompress(sealed []byte) (corpus.Corpus, error) {
	artifact, err := Open(sealed)
	if err != nil {
		return nil, err
	}
	return Decode(artifact)
}

func compressPayload(payload []byte, tag CompressionTag) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return payload, nil

	case CompressionLZ4:
		var out bytes.Buffer
		w := lz4.NewWriter(&out)
		if _, err := w.Write(payload); err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		return out.Bytes(), nil

	case CompressionZstd:
		w, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer w.Close()
		return w.EncodeAll(payload, nil), nil
	}
	return nil, fmt.Errorf("unknown compression tag %d", uint8(tag))
}

func decompressPayload(body []byte, tag CompressionTag, expected int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return body, nil

	case CompressionLZ4:
		r := lz4.NewReader(bytes.NewReader(body))
		payload := make([]byte, 0, expected)
		out := bytes.NewBuffer(payload)
		if _, err := io.Copy(out, io.LimitReader(r, maxSealedPayload+1)); err != nil {
			return nil, malformed(fmt.Sprintf("lz4 payload does not decompress: %v", err))
		}
		return out.Bytes(), nil

	case CompressionZstd:
		r, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer r.Close()
		payload, err := r.DecodeAll(body, make([]byte, 0, expected))
		if err != nil {
			return nil, malformed(fmt.Sprintf("zstd payload does not decompress: %v", err))
		}
		return payload, nil
	}
	return nil, malformed(fmt.Sprintf("unknown compression tag %d", uint8(tag)))
}
