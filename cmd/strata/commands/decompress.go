// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/stratahq/strata/cmd/strata/cli"
	"github.com/stratahq/strata/lib/corpus"
	"github.com/stratahq/strata/lib/press"
)

func decompressCommand() *cli.Command {
	var (
		outputDir string
		keyPath   string
	)
	return &cli.Command{
		Name:    "decompress",
		Summary: "Reconstruct a corpus from a sealed artifact",
		Usage:   "strata decompress [flags] <artifact>",
		Description: `Reconstruct the original corpus from a sealed artifact.

With --dir the files are written under the given directory; otherwise
the corpus is printed to stdout as a markdown bundle. The
reconstruction is checksum-verified: a corrupted artifact fails
instead of producing wrong bytes. Semantic artifacts are lossy and
cannot be decompressed; use "strata inspect" to look inside them.`,
		Examples: []cli.Example{
			{
				Description: "Restore a source tree",
				Command:     "strata decompress src.strata --dir ./restored",
			},
			{
				Description: "Print an artifact as a markdown bundle",
				Command:     "strata decompress src.strata",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("decompress", pflag.ContinueOnError)
			flags.StringVar(&outputDir, "dir", "", "write reconstructed files under this directory")
			flags.StringVar(&keyPath, "key", "", "decrypt the artifact with this 32-byte key file")
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

			c, err := press.Decompress(sealed)
			if err != nil {
				if errors.Is(err, press.ErrNotReconstructible) {
					return fmt.Errorf("%w; run 'strata inspect %s' to view its skeletons", err, args[0])
				}
				return err
			}

			if outputDir != "" {
				if err := writeCorpusDir(outputDir, c); err != nil {
					return err
				}
				cli.NewCommandLogger().With("command", "decompress").Info("restored",
					"files", len(c), "dir", outputDir)
				return nil
			}
			return writeOutput("-", corpus.FormatBundle(c))
		},
	}
}
