// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

// Package token splits raw bytes into a stream of classified lexical
// units: identifiers, numbers, string literals, punctuation runs,
// whitespace runs, and newlines.
//
// The tokenizer is total and exact: it accepts arbitrary bytes (any
// programming language, any encoding, any line-ending convention,
// binary-looking text) and the concatenation of all token texts in
// order reproduces the input byte-for-byte. No byte is ever dropped,
// reordered, or normalized.
//
// Classification is deliberately loose. It exists only to steer chunk
// boundaries toward lexically meaningful positions — an identifier is
// never split across two chunks — and has no effect on correctness.
// A C file tokenized with these rules is not parsed as C; it is split
// into generic lexical runs.
package token
