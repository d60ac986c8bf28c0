// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used for sealed artifacts.
//
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// The same artifact always serializes to identical bytes, which is
// what makes artifact checksums and size accounting reproducible
// across runs and platforms.
//
// Decoding accepts standard CBOR and silently ignores unknown fields,
// so artifacts produced by newer versions with additional metadata
// remain readable.
package codec
