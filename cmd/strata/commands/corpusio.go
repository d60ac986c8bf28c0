// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stratahq/strata/lib/corpus"
	"github.com/stratahq/strata/lib/press"
)

// loadCorpus builds a corpus from the given inputs. A directory
// contributes every regular file under it (paths relative to the
// directory, slash-separated, lexically sorted); a plain file
// contributes itself under its base name.
func loadCorpus(inputs []string) (corpus.Corpus, error) {
	var files []corpus.File
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			collected, err := collectDir(input)
			if err != nil {
				return nil, err
			}
			files = append(files, collected...)
			continue
		}
		content, err := os.ReadFile(input)
		if err != nil {
			return nil, err
		}
		files = append(files, corpus.File{Path: filepath.Base(input), Content: content})
	}
	return corpus.New(files)
}

// collectDir reads every regular file under root. WalkDir visits in
// lexical order, so the corpus is deterministic for a given tree; the
// explicit sort keeps that guarantee even if the walk order ever
// changes.
func collectDir(root string) ([]corpus.File, error) {
	var files []corpus.File
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if entry.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		relative, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, corpus.File{
			Path:    filepath.ToSlash(relative),
			Content: content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// loadBundle reads a markdown bundle from a file, or stdin for "-".
func loadBundle(path string) (corpus.Corpus, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return corpus.ParseBundle(data)
}

// writeCorpusDir materializes a corpus under root, creating parent
// directories as needed. Paths that escape root are rejected: an
// artifact is untrusted input.
func writeCorpusDir(root string, c corpus.Corpus) error {
	cleanRoot := filepath.Clean(root)
	for _, f := range c {
		target := filepath.Join(cleanRoot, filepath.FromSlash(f.Path))
		if target != cleanRoot && !strings.HasPrefix(target, cleanRoot+string(filepath.Separator)) {
			return fmt.Errorf("path %q escapes output directory", f.Path)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, f.Content, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput writes data to a file, or stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// readInput reads a file, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// loadKey reads and checks an encryption key file.
func loadKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(key) != press.KeySize {
		return nil, fmt.Errorf("key file %s holds %d bytes, need exactly %d", path, len(key), press.KeySize)
	}
	return key, nil
}
