// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package press

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/stratahq/strata/lib/chunk"
	"github.com/stratahq/strata/lib/corpus"
	"github.com/stratahq/strata/lib/dict"
	"github.com/stratahq/strata/lib/skeleton"
)

// Options tunes one compression call. The zero value is usable.
type Options struct {
	// Workers bounds per-file parallelism. Zero means GOMAXPROCS.
	Workers int

	// Logger receives internal diagnostics (self-verification
	// failures). Nil discards them.
	Logger *slog.Logger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Compress encodes the corpus in the requested mode and returns the
// complete artifact. For lossless and hybrid modes the artifact has
// already survived self-verification: its own decode reproduced the
// corpus byte-for-byte. On any error — including cancellation of ctx —
// no artifact is returned.
//
// The corpus is read-only input; the returned artifact shares no
// mutable state with it.
func Compress(ctx context.Context, c corpus.Corpus, mode Mode, opts Options) (*Artifact, error) {
	if !mode.valid() {
		return nil, fmt.Errorf("compress: unknown mode %d", uint8(mode))
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("compress: %w: %v", ErrEncoding, err)
	}

	var dictionary []dict.Entry
	var files []FilePayload
	var err error

	switch mode {
	case ModeNone:
		files, err = encodeNone(ctx, c)
	case ModeSemantic:
		files, err = encodeSemantic(ctx, c, opts)
	case ModeLossless:
		dictionary, files, err = encodeLossless(ctx, c, opts)
	case ModeHybrid:
		dictionary, files, err = encodeHybrid(ctx, c, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	originalSize := c.TotalSize()
	compressedSize := accountedSize(dictionary, files)
	artifact := &Artifact{
		Version:    ArtifactVersion,
		Mode:       mode,
		Dictionary: dictionary,
		Files:      files,
		Metadata: Metadata{
			OriginalSize:     originalSize,
			CompressedSize:   compressedSize,
			CompressionRatio: ratio(originalSize, compressedSize),
			Checksum:         c.Checksum(),
		},
	}

	if mode.Reconstructible() && mode != ModeNone {
		if err := selfVerify(ctx, artifact, c, opts); err != nil {
			opts.logger().Error("artifact failed self-verification",
				"mode", mode.String(),
				"files", len(c),
				"error", err)
			return nil, fmt.Errorf("%w: %v", ErrCompressionFailed, err)
		}
	}

	return artifact, nil
}

// encodeNone copies every file verbatim.
func encodeNone(ctx context.Context, c corpus.Corpus) ([]FilePayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files := make([]FilePayload, len(c))
	for i, f := range c {
		files[i] = FilePayload{
			Path: f.Path,
			Raw:  bytes.Clone(f.Content),
		}
	}
	return files, nil
}

// encodeSemantic extracts per-file skeletons in parallel.
func encodeSemantic(ctx context.Context, c corpus.Corpus, opts Options) ([]FilePayload, error) {
	files := make([]FilePayload, len(c))
	err := forEachFile(ctx, opts.workers(), len(c), func(i int) error {
		sk := skeleton.Extract(c[i].Path, c[i].Content)
		files[i] = FilePayload{
			Path:     c[i].Path,
			Skeleton: sk.StructuralLines(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// encodeLossless chunks every file, builds the corpus dictionary, and
// encodes each file as an item stream.
func encodeLossless(ctx context.Context, c corpus.Corpus, opts Options) ([]dict.Entry, []FilePayload, error) {
	builder := dict.NewBuilder()
	perFile := make([][]chunk.Chunk, len(c))

	// Collection phase: parallel per file. The builder's merge is
	// commutative, so scheduling cannot affect the outcome.
	err := forEachFile(ctx, opts.workers(), len(c), func(i int) error {
		perFile[i] = chunk.SplitBytes(c[i].Content)
		builder.AddSection(i, 0, perFile[i])
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// Selection barrier: codes are final before any file is encoded.
	dictionary := builder.Build()

	files := make([]FilePayload, len(c))
	err = forEachFile(ctx, opts.workers(), len(c), func(i int) error {
		files[i] = FilePayload{
			Path:  c[i].Path,
			Items: encodeChunks(perFile[i], dictionary),
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return dictionary.Entries(), files, nil
}

// omittedRun is one contiguous run of non-structural lines: the text
// hybrid mode must carry in the patch.
type omittedRun struct {
	afterLine int   // skeleton lines preceding this run
	offset    int64 // byte offset of the run within the file
	chunks    []chunk.Chunk
}

// encodeHybrid extracts skeletons, chunks the omitted runs, builds
// the dictionary over those runs, and emits skeleton plus patch per
// file.
func encodeHybrid(ctx context.Context, c corpus.Corpus, opts Options) ([]dict.Entry, []FilePayload, error) {
	builder := dict.NewBuilder()
	skeletons := make([]skeleton.Skeleton, len(c))
	runs := make([][]omittedRun, len(c))

	err := forEachFile(ctx, opts.workers(), len(c), func(i int) error {
		sk := skeleton.Extract(c[i].Path, c[i].Content)
		skeletons[i] = sk
		runs[i] = omittedRuns(sk)
		for _, run := range runs[i] {
			builder.AddSection(i, run.offset, run.chunks)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	dictionary := builder.Build()

	files := make([]FilePayload, len(c))
	err = forEachFile(ctx, opts.workers(), len(c), func(i int) error {
		patch := make([]Span, 0, len(runs[i]))
		for _, run := range runs[i] {
			patch = append(patch, Span{
				AfterLine: run.afterLine,
				Items:     encodeChunks(run.chunks, dictionary),
			})
		}
		files[i] = FilePayload{
			Path:     c[i].Path,
			Skeleton: skeletons[i].StructuralLines(),
			Patch:    patch,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return dictionary.Entries(), files, nil
}

// omittedRuns walks a skeleton's line split and collects the maximal
// runs of non-structural lines, each chunked and positioned.
func omittedRuns(sk skeleton.Skeleton) []omittedRun {
	structural := make(map[int]bool, len(sk.Structural))
	for _, index := range sk.Structural {
		structural[index] = true
	}

	var result []omittedRun
	var pending strings.Builder
	var pendingOffset int64
	var offset int64
	structuralSeen := 0

	flush := func() {
		if pending.Len() == 0 {
			return
		}
		result = append(result, omittedRun{
			afterLine: structuralSeen,
			offset:    pendingOffset,
			chunks:    chunk.SplitBytes([]byte(pending.String())),
		})
		pending.Reset()
	}

	for i, line := range sk.Lines {
		if structural[i] {
			flush()
			structuralSeen++
		} else {
			if pending.Len() == 0 {
				pendingOffset = offset
			}
			pending.WriteString(line)
		}
		offset += int64(len(line))
	}
	flush()
	return result
}

// encodeChunks maps a chunk sequence to an item stream: a code for
// every dictionary hit, with misses coalesced into single literal
// items so per-item overhead stays proportional to dictionary use.
func encodeChunks(chunks []chunk.Chunk, dictionary *dict.Dictionary) []Item {
	var items []Item
	var literal strings.Builder

	flushLiteral := func() {
		if literal.Len() == 0 {
			return
		}
		items = append(items, Item{Text: literal.String()})
		literal.Reset()
	}

	for _, c := range chunks {
		if code, ok := dictionary.Lookup(c.Digest); ok {
			flushLiteral()
			items = append(items, Item{Code: code})
		} else {
			literal.WriteString(c.Text)
		}
	}
	flushLiteral()
	return items
}

// selfVerify decodes the just-built artifact and compares the result
// against the original corpus. Any divergence is an internal defect.
func selfVerify(ctx context.Context, artifact *Artifact, original corpus.Corpus, opts Options) error {
	reconstructed, err := reconstruct(artifact)
	if err != nil {
		return fmt.Errorf("self-verification decode: %w", err)
	}
	if len(reconstructed) != len(original) {
		return fmt.Errorf("self-verification: reconstructed %d files, corpus has %d",
			len(reconstructed), len(original))
	}

	return forEachFile(ctx, opts.workers(), len(original), func(i int) error {
		if reconstructed[i].Path != original[i].Path {
			return fmt.Errorf("self-verification: file %d path %q, want %q",
				i, reconstructed[i].Path, original[i].Path)
		}
		if !bytes.Equal(reconstructed[i].Content, original[i].Content) {
			return fmt.Errorf("self-verification: file %q does not reproduce its content", original[i].Path)
		}
		return nil
	})
}

// forEachFile runs fn(0..n-1) across at most workers goroutines,
// propagating the first error and honoring context cancellation. When
// any call fails, the remaining work is abandoned: compression is all
// or nothing.
func forEachFile(ctx context.Context, workers, n int, fn func(index int) error) error {
	if n == 0 {
		return ctx.Err()
	}
	if workers > n {
		workers = n
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indexes {
				if failed() {
					continue
				}
				if err := ctx.Err(); err != nil {
					setErr(err)
					continue
				}
				if err := fn(index); err != nil {
					setErr(err)
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return firstErr
}
