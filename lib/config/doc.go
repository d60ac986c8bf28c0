// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Strata commands.
//
// Configuration is loaded from a single file specified by:
//   - STRATA_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
// Both YAML (.yaml, .yml) and JSONC (.json, .jsonc) files are
// accepted.
package config
