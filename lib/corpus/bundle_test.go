// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"bytes"
	"testing"
)

func TestBundleRoundTrip(t *testing.T) {
	original := Corpus{
		{Path: "main.py", Content: []byte("def main():\n    print('hi')\n")},
		{Path: "lib/util.go", Content: []byte("package util\n\nfunc Add(a, b int) int { return a + b }\n")},
		{Path: "style.css", Content: []byte(".button {\n  color: #fff;\n}\n")},
	}

	rendered := FormatBundle(original)
	parsed, err := ParseBundle(rendered)
	if err != nil {
		t.Fatalf("ParseBundle failed: %v", err)
	}

	if len(parsed) != len(original) {
		t.Fatalf("parsed %d files, want %d", len(parsed), len(original))
	}
	for i := range original {
		if parsed[i].Path != original[i].Path {
			t.Errorf("file %d path = %q, want %q", i, parsed[i].Path, original[i].Path)
		}
		if !bytes.Equal(parsed[i].Content, original[i].Content) {
			t.Errorf("file %d content = %q, want %q", i, parsed[i].Content, original[i].Content)
		}
	}
}

func TestBundleBackticksInContent(t *testing.T) {
	original := Corpus{
		{Path: "README.md", Content: []byte("usage:\n\n```sh\nstrata compress\n```\n")},
	}

	parsed, err := ParseBundle(FormatBundle(original))
	if err != nil {
		t.Fatalf("ParseBundle failed: %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("parsed %d files, want 1", len(parsed))
	}
	if !bytes.Equal(parsed[0].Content, original[0].Content) {
		t.Errorf("content with nested fence corrupted: %q", parsed[0].Content)
	}
}

func TestBundleMissingTrailingNewline(t *testing.T) {
	// The bundle format's documented lossy edge: a file without a
	// trailing newline gains one through the fence.
	original := Corpus{{Path: "x.txt", Content: []byte("no newline")}}

	parsed, err := ParseBundle(FormatBundle(original))
	if err != nil {
		t.Fatalf("ParseBundle failed: %v", err)
	}
	if string(parsed[0].Content) != "no newline\n" {
		t.Errorf("content = %q, want trailing newline added", parsed[0].Content)
	}
}

func TestParseBundleIgnoresProse(t *testing.T) {
	source := []byte("# Title\n\nSome prose.\n\n## only.py\n\nmore prose\n\n```python\nx = 1\n```\n\ntrailing notes\n")

	parsed, err := ParseBundle(source)
	if err != nil {
		t.Fatalf("ParseBundle failed: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Path != "only.py" {
		t.Fatalf("parsed = %+v, want single file only.py", parsed)
	}
	if string(parsed[0].Content) != "x = 1\n" {
		t.Errorf("content = %q, want \"x = 1\\n\"", parsed[0].Content)
	}
}

func TestParseBundleHeadingWithoutCode(t *testing.T) {
	source := []byte("## orphan.py\n\n## real.py\n\n```python\ny = 2\n```\n")

	parsed, err := ParseBundle(source)
	if err != nil {
		t.Fatalf("ParseBundle failed: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Path != "real.py" {
		t.Fatalf("parsed = %+v, want single file real.py", parsed)
	}
}

func TestParseBundleEmpty(t *testing.T) {
	parsed, err := ParseBundle([]byte("# Nothing here\n"))
	if err != nil {
		t.Fatalf("ParseBundle failed: %v", err)
	}
	if len(parsed) != 0 {
		t.Errorf("parsed %d files from empty bundle, want 0", len(parsed))
	}
}

func TestLanguageFor(t *testing.T) {
	cases := map[string]string{
		"a/b/main.go": "go",
		"script.PY":   "python",
		"unknown.xyz": "",
		"Makefile":    "",
	}
	for input, want := range cases {
		if got := languageFor(input); got != want {
			t.Errorf("languageFor(%q) = %q, want %q", input, got, want)
		}
	}
}
