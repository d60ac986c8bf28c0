// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

// The strata binary compresses source corpora into sealed artifacts
// and reconstructs them. Run "strata --help" for the command tree.
package main
