// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

type sample struct {
	Name   string   `json:"name"`
	Count  int      `json:"count"`
	Body   []byte   `json:"body,omitempty"`
	Digest [32]byte `json:"digest"`
}

func TestMarshalDeterministic(t *testing.T) {
	value := sample{Name: "a.py", Count: 3, Body: []byte("def f():\n")}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	second, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated Marshal of the same value produced different bytes")
	}
}

func TestRoundTrip(t *testing.T) {
	original := sample{
		Name:  "lib/press/encode.go",
		Count: 42,
		Body:  []byte{0x00, 0xFF, 0x7F},
	}
	for i := range original.Digest {
		original.Digest[i] = byte(i * 7)
	}

	encoded, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded sample
	if err := Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded.Name != original.Name || decoded.Count != original.Count {
		t.Errorf("decoded = %+v, want %+v", decoded, original)
	}
	if !bytes.Equal(decoded.Body, original.Body) {
		t.Errorf("decoded body = %v, want %v", decoded.Body, original.Body)
	}
	if decoded.Digest != original.Digest {
		t.Error("decoded digest does not match original")
	}
}

func TestByteArrayEncodesCompactly(t *testing.T) {
	// A [32]byte must serialize as a byte string (~34 bytes inside the
	// envelope), not as an array of 32 integers (~50+ bytes).
	var value [32]byte
	for i := range value {
		value[i] = 0xAA
	}

	encoded, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if len(encoded) > 40 {
		t.Errorf("encoded [32]byte is %d bytes, want byte-string encoding", len(encoded))
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	encoded, err := Marshal(map[string]any{
		"name":   "x",
		"count":  1,
		"future": "field from a newer version",
	})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded sample
	if err := Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal with unknown field failed: %v", err)
	}
	if decoded.Name != "x" || decoded.Count != 1 {
		t.Errorf("decoded = %+v, want name=x count=1", decoded)
	}
}
