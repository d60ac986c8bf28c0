// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/stratahq/strata/cmd/strata/cli"
	"github.com/stratahq/strata/lib/corpus"
	"github.com/stratahq/strata/lib/press"
)

func compressCommand() *cli.Command {
	var (
		configPath  string
		mode        string
		compression string
		output      string
		bundlePath  string
		keyPath     string
		workers     int
	)
	return &cli.Command{
		Name:    "compress",
		Summary: "Compress files or directories into a sealed artifact",
		Usage:   "strata compress [flags] <path>...",
		Description: `Compress a corpus into a sealed artifact.

Inputs are files and directories; directories contribute every regular
file under them. Alternatively --bundle reads a markdown bundle (the
format "strata decompress" prints) from a file or stdin.

Lossless and hybrid artifacts are verified against the input before
anything is written: a compression that cannot reproduce its input
fails instead of producing output.`,
		Examples: []cli.Example{
			{
				Description: "Compress a source tree losslessly",
				Command:     "strata compress ./src -o src.strata",
			},
			{
				Description: "Hybrid-compress with lz4 sealing and encryption",
				Command:     "strata compress ./src --mode hybrid --compression lz4 --key secret.key -o src.strata",
			},
			{
				Description: "Compress a bundle from stdin to stdout",
				Command:     "strata compress --bundle - -o -",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("compress", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path (overrides STRATA_CONFIG)")
			flags.StringVar(&mode, "mode", "", "compression mode: none, semantic, lossless, hybrid")
			flags.StringVar(&compression, "compression", "", "sealed-container compression: none, lz4, zstd")
			flags.StringVarP(&output, "output", "o", "-", "output path (- for stdout)")
			flags.StringVar(&bundlePath, "bundle", "", "read a markdown bundle instead of paths (- for stdin)")
			flags.StringVar(&keyPath, "key", "", "encrypt the sealed artifact with this 32-byte key file")
			flags.IntVar(&workers, "workers", 0, "per-file parallelism (0 = one per CPU)")
			return flags
		},
		Run: func(args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if mode != "" {
				cfg.Mode = mode
			}
			if compression != "" {
				cfg.Compression = compression
			}
			if workers != 0 {
				cfg.Workers = workers
			}
			if keyPath != "" {
				cfg.KeyFile = keyPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			var c corpus.Corpus
			if bundlePath != "" {
				if len(args) > 0 {
					return fmt.Errorf("--bundle and positional paths are mutually exclusive")
				}
				c, err = loadBundle(bundlePath)
			} else {
				if len(args) == 0 {
					return fmt.Errorf("no input paths (or --bundle) given")
				}
				c, err = loadCorpus(args)
			}
			if err != nil {
				return err
			}

			logger := cli.NewCommandLogger().With("command", "compress")
			artifact, err := press.Compress(context.Background(), c, cfg.ModeValue(), press.Options{
				Workers: cfg.Workers,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			sealed, err := press.Seal(artifact, cfg.CompressionValue())
			if err != nil {
				return err
			}

			if cfg.KeyFile != "" {
				key, err := loadKey(cfg.KeyFile)
				if err != nil {
					return err
				}
				sealed, err = press.EncryptSealed(sealed, key)
				if err != nil {
					return err
				}
			}

			if err := writeOutput(output, sealed); err != nil {
				return err
			}
			logger.Info("compressed",
				"mode", artifact.Mode.String(),
				"files", len(artifact.Files),
				"original_size", artifact.Metadata.OriginalSize,
				"compressed_size", artifact.Metadata.CompressedSize,
				"ratio", fmt.Sprintf("%.3f", artifact.Metadata.CompressionRatio),
				"sealed_bytes", len(sealed))
			return nil
		},
	}
}
