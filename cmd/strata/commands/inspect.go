// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/stratahq/strata/cmd/strata/cli"
	"github.com/stratahq/strata/lib/digest"
	"github.com/stratahq/strata/lib/press"
)

func inspectCommand() *cli.Command {
	var (
		keyPath  string
		asJSON   bool
		showFile string
	)
	return &cli.Command{
		Name:    "inspect",
		Summary: "Show what is inside a sealed artifact",
		Usage:   "strata inspect [flags] <artifact>",
		Description: `Show an artifact's metadata without reconstructing the corpus:
mode, file count, dictionary size, size accounting, and checksum.

With --file the named file's skeleton (semantic and hybrid artifacts)
or content summary is printed instead.`,
		Examples: []cli.Example{
			{
				Description: "Summarize an artifact",
				Command:     "strata inspect src.strata",
			},
			{
				Description: "Print one file's skeleton from a semantic artifact",
				Command:     "strata inspect src.strata --file pkg/parser.py",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			flags.StringVar(&keyPath, "key", "", "decrypt the artifact with this 32-byte key file")
			flags.BoolVar(&asJSON, "json", false, "emit the summary as JSON")
			flags.StringVar(&showFile, "file", "", "print this file's skeleton instead of the summary")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one artifact path required")
			}
			sealed, err := readInput(args[0])
			if err != nil {
				return err
			}
			if keyPath != "" {
				key, err := loadKey(keyPath)
				if err != nil {
					return err
				}
				sealed, err = press.DecryptSealed(sealed, key)
				if err != nil {
					return err
				}
			}
			artifact, err := press.Open(sealed)
			if err != nil {
				return err
			}

			if showFile != "" {
				return printFileSkeleton(artifact, showFile)
			}
			if asJSON {
				return printSummaryJSON(artifact, len(sealed))
			}
			printSummary(artifact, len(sealed))
			return nil
		},
	}
}

func printSummary(artifact *press.Artifact, sealedBytes int) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "version:\t%d\n", artifact.Version)
	fmt.Fprintf(tw, "mode:\t%s\n", artifact.Mode)
	fmt.Fprintf(tw, "files:\t%d\n", len(artifact.Files))
	fmt.Fprintf(tw, "dictionary entries:\t%d\n", len(artifact.Dictionary))
	fmt.Fprintf(tw, "original size:\t%d\n", artifact.Metadata.OriginalSize)
	fmt.Fprintf(tw, "compressed size:\t%d\n", artifact.Metadata.CompressedSize)
	fmt.Fprintf(tw, "compression ratio:\t%.3f\n", artifact.Metadata.CompressionRatio)
	fmt.Fprintf(tw, "checksum:\t%s\n", digest.Format(artifact.Metadata.Checksum))
	fmt.Fprintf(tw, "sealed bytes:\t%d\n", sealedBytes)
	fmt.Fprintf(tw, "reconstructible:\t%t\n", artifact.Mode.Reconstructible())
	tw.Flush()
}

func printSummaryJSON(artifact *press.Artifact, sealedBytes int) error {
	summary := struct {
		Version           int     `json:"version"`
		Mode              string  `json:"mode"`
		Files             int     `json:"files"`
		DictionaryEntries int     `json:"dictionary_entries"`
		OriginalSize      int64   `json:"original_size"`
		CompressedSize    int64   `json:"compressed_size"`
		CompressionRatio  float64 `json:"compression_ratio"`
		Checksum          string  `json:"checksum"`
		SealedBytes       int     `json:"sealed_bytes"`
		Reconstructible   bool    `json:"reconstructible"`
	}{
		Version:           artifact.Version,
		Mode:              artifact.Mode.String(),
		Files:             len(artifact.Files),
		DictionaryEntries: len(artifact.Dictionary),
		OriginalSize:      artifact.Metadata.OriginalSize,
		CompressedSize:    artifact.Metadata.CompressedSize,
		CompressionRatio:  artifact.Metadata.CompressionRatio,
		Checksum:          digest.Format(artifact.Metadata.Checksum),
		SealedBytes:       sealedBytes,
		Reconstructible:   artifact.Mode.Reconstructible(),
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

func printFileSkeleton(artifact *press.Artifact, path string) error {
	for _, file := range artifact.Files {
		if file.Path != path {
			continue
		}
		if len(file.Skeleton) == 0 {
			return fmt.Errorf("%q carries no skeleton in a %s artifact", path, artifact.Mode)
		}
		_, err := os.Stdout.WriteString(strings.Join(file.Skeleton, ""))
		return err
	}
	return fmt.Errorf("no file %q in artifact", path)
}
