// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the strata command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/stratahq/strata/cmd/strata/cli"
	"github.com/stratahq/strata/lib/config"
	"github.com/stratahq/strata/lib/version"
)

// Root returns the top-level strata command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "strata",
		Summary: "Compress source corpora into sealed, verifiable artifacts",
		Description: `Strata compresses a corpus of source files into a single sealed
artifact and reconstructs it byte-for-byte.

Four modes are available: none (pass-through), semantic (lossy
structural skeletons), lossless (dictionary-coded, exact), and hybrid
(skeleton plus patch, exact). Lossless and hybrid artifacts are
self-verified at compression time and checksum-verified on
decompression.`,
		Subcommands: []*cli.Command{
			compressCommand(),
			decompressCommand(),
			inspectCommand(),
			versionCommand(),
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print the strata version",
		Run: func(args []string) error {
			fmt.Println(version.Full())
			return nil
		},
	}
}

// loadConfig resolves the effective configuration: an explicit
// --config path wins, then STRATA_CONFIG, then built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv(config.EnvVar) != "" {
		return config.Load()
	}
	return config.Default(), nil
}
