// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

// Package skeleton extracts the structural subset of a source file:
// import lines, declaration signatures, the top-of-file comment
// block, and comments attached to declarations.
//
// The skeleton is the human-readable payload of semantic and hybrid
// artifacts. Extraction works on whole lines only and preserves
// original order and line terminators, so a skeleton is always an
// ordered subsequence of the file's lines — which is what lets hybrid
// mode splice the omitted lines back in for exact reconstruction.
//
// Line classification is heuristic and language-generic: a chroma
// lexer (matched by file name) identifies comment lines where one
// exists, and regular-expression families adapted from common
// declaration shapes cover imports and signatures. Heuristics affect
// only which lines are kept; they never affect reconstruction, which
// does not depend on classification being right.
package skeleton
