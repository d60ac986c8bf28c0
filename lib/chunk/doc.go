// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunk groups token streams into content-defined chunks, the
// unit of dictionary deduplication.
//
// Boundaries are found with a GearHash rolling hash over the token
// text: a cut is made at a token end when the hash's high bits are
// all zero, subject to minimum and maximum chunk sizes. Because the
// boundary condition depends only on the bytes since the previous
// boundary, identical text appearing in two different files — or at
// two different offsets of the same file — tends to produce identical
// chunks, which is what lets one dictionary entry cover boilerplate
// repeated across a corpus.
//
// Cutting at token ends keeps chunk edges on lexical seams: an
// identifier or string literal is never split between two chunks
// (except by the forced maximum-size cut, which bounds the worst
// case for inputs like minified one-line files).
//
// The concatenation of all chunk texts reproduces the token stream,
// and therefore the original bytes, exactly.
package chunk
