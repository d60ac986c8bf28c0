// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stratahq/strata/lib/corpus"
	"github.com/stratahq/strata/lib/press"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		target := filepath.Join(root, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadCorpusFromDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.py":        "print('b')\n",
		"sub/a.py":    "print('a')\n",
		".git/config": "ignored\n",
	})
	c, err := loadCorpus([]string{root})
	if err != nil {
		t.Fatalf("loadCorpus: %v", err)
	}
	if len(c) != 2 {
		t.Fatalf("got %d files, want 2: %+v", len(c), c)
	}
	if c[0].Path != "b.py" || c[1].Path != "sub/a.py" {
		t.Errorf("paths = %q, %q; want sorted b.py, sub/a.py", c[0].Path, c[1].Path)
	}
}

func TestLoadCorpusSingleFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.go": "package main\n"})

	c, err := loadCorpus([]string{filepath.Join(root, "main.go")})
	if err != nil {
		t.Fatalf("loadCorpus: %v", err)
	}
	if len(c) != 1 || c[0].Path != "main.go" {
		t.Fatalf("got %+v, want a single main.go entry", c)
	}
}

func TestWriteCorpusDirRejectsEscapes(t *testing.T) {
	c := corpus.Corpus{{Path: "../escape", Content: []byte("x")}}
	if err := writeCorpusDir(t.TempDir(), c); err == nil {
		t.Error("path escaping the output directory was written")
	}
}

func TestWriteCorpusDirRoundTrip(t *testing.T) {
	original := corpus.Corpus{
		{Path: "a.txt", Content: []byte("alpha\n")},
		{Path: "nested/b.txt", Content: []byte("beta\n")},
	}
	dir := t.TempDir()
	if err := writeCorpusDir(dir, original); err != nil {
		t.Fatalf("writeCorpusDir: %v", err)
	}

	reloaded, err := loadCorpus([]string{dir})
	if err != nil {
		t.Fatalf("loadCorpus: %v", err)
	}
	if len(reloaded) != len(original) {
		t.Fatalf("got %d files, want %d", len(reloaded), len(original))
	}
	for i := range original {
		if reloaded[i].Path != original[i].Path || !bytes.Equal(reloaded[i].Content, original[i].Content) {
			t.Errorf("file %d = %+v, want %+v", i, reloaded[i], original[i])
		}
	}
}

func TestCompressDecompressCommands(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{
		"pkg/a.py": "def f():\n    return 1\n",
		"pkg/b.py": "def f():\n    return 1\n",
	})
	artifactPath := filepath.Join(t.TempDir(), "out.strata")

	root := Root()
	err := root.Execute([]string{
		"compress", source, "-o", artifactPath, "--mode", "lossless",
	})
	if err != nil {
		t.Fatalf("compress: %v", err)
	}

	restored := filepath.Join(t.TempDir(), "restored")
	if err := Root().Execute([]string{"decompress", artifactPath, "--dir", restored}); err != nil {
		t.Fatalf("decompress: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(restored, "pkg", "a.py"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "def f():\n    return 1\n" {
		t.Errorf("restored content = %q", content)
	}
}

func TestCompressWithEncryptionKey(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{"a.txt": "hello\n"})

	keyPath := filepath.Join(t.TempDir(), "secret.key")
	if err := os.WriteFile(keyPath, bytes.Repeat([]byte{0x11}, press.KeySize), 0o600); err != nil {
		t.Fatal(err)
	}
	artifactPath := filepath.Join(t.TempDir(), "out.strata")

	err := Root().Execute([]string{
		"compress", source, "-o", artifactPath, "--key", keyPath,
	})
	if err != nil {
		t.Fatalf("compress: %v", err)
	}

	sealed, err := os.ReadFile(artifactPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := press.Open(sealed); err == nil {
		t.Error("encrypted artifact opened without the key")
	}

	restored := filepath.Join(t.TempDir(), "restored")
	err = Root().Execute([]string{"decompress", artifactPath, "--key", keyPath, "--dir", restored})
	if err != nil {
		t.Fatalf("decompress with key: %v", err)
	}
}

func TestUnknownSubcommandSuggests(t *testing.T) {
	err := Root().Execute([]string{"compres"})
	if err == nil {
		t.Fatal("unknown subcommand succeeded")
	}
	if !bytes.Contains([]byte(err.Error()), []byte("compress")) {
		t.Errorf("error %q does not suggest compress", err)
	}
}
