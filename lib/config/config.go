// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/stratahq/strata/lib/press"
)

// EnvVar names the environment variable Load reads the config path
// from.
const EnvVar = "STRATA_CONFIG"

// Config is the master configuration for Strata commands. Flags
// override file values; file values override defaults.
type Config struct {
	// Mode is the default compression mode: none, semantic, lossless,
	// or hybrid.
	// Default: lossless
	Mode string `yaml:"mode" json:"mode"`

	// Compression is the sealed-container compression: none, lz4, or
	// zstd.
	// Default: zstd
	Compression string `yaml:"compression" json:"compression"`

	// Workers bounds per-file parallelism during compression.
	// Default: 0 (one worker per CPU)
	Workers int `yaml:"workers" json:"workers"`

	// KeyFile is the path to a 32-byte encryption key. When set,
	// sealed artifacts are wrapped in an encrypted envelope.
	// Default: "" (no encryption)
	KeyFile string `yaml:"key_file" json:"key_file"`
}

// Default returns the default configuration. These defaults are the
// base before loading the config file; unlike the file itself they are
// always available, so commands work with no config at all.
func Default() *Config {
	return &Config{
		Mode:        press.ModeLossless.String(),
		Compression: press.CompressionZstd.String(),
	}
}

// Load loads configuration from the STRATA_CONFIG environment
// variable. There are no fallbacks - if STRATA_CONFIG is not set,
// this fails. Commands that accept --config call LoadFile directly.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your strata config file, or use --config flag", EnvVar)
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. The format
// is chosen by extension: YAML for .yaml/.yml, JSONC for
// .json/.jsonc. The config file is the single source of truth;
// environment variables do not override its values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q (want .yaml, .yml, .json, or .jsonc)", path, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field parses to a legal value.
func (c *Config) Validate() error {
	if _, err := press.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := press.ParseCompressionTag(c.Compression); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// ModeValue returns the parsed compression mode. Call Validate first;
// on an invalid config this falls back to the default mode.
func (c *Config) ModeValue() press.Mode {
	mode, err := press.ParseMode(c.Mode)
	if err != nil {
		return press.ModeLossless
	}
	return mode
}

// CompressionValue returns the parsed sealed-container compression
// tag, falling back to zstd on an invalid config.
func (c *Config) CompressionValue() press.CompressionTag {
	tag, err := press.ParseCompressionTag(c.Compression)
	if err != nil {
		return press.CompressionZstd
	}
	return tag
}
