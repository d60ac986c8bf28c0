// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package press

import "errors"

// ErrNotReconstructible is returned when decoding a semantic-mode
// artifact. Semantic compression is lossy by design; this is the
// expected, user-facing outcome, not a defect.
var ErrNotReconstructible = errors.New("semantic artifact is not reconstructible")

// ErrChecksumMismatch is returned when an artifact decodes
// structurally but the reconstructed corpus's checksum disagrees with
// the one stored at compression time: the artifact was corrupted or
// tampered with after sealing.
var ErrChecksumMismatch = errors.New("artifact checksum mismatch")

// ErrEncoding is the class of input failures during compression: the
// corpus itself cannot be encoded (duplicate or empty paths). Wrapped
// errors carry the detail; match with errors.Is.
var ErrEncoding = errors.New("corpus cannot be encoded")

// ErrCompressionFailed is the generic failure surfaced when the
// encoder's own output fails self-verification. The underlying cause
// is an internal defect, logged but deliberately not exposed as
// anything other than a failed compression — a byte-reduced-but-wrong
// artifact must never look like success.
var ErrCompressionFailed = errors.New("compression failed")

// MalformedArtifactError reports an artifact whose structure is
// inconsistent with its declared mode: a payload field that does not
// belong to the mode, a dictionary code referenced but never defined,
// a patch anchored outside its skeleton.
type MalformedArtifactError struct {
	Reason string
}

func (e *MalformedArtifactError) Error() string {
	return "malformed artifact: " + e.Reason
}

// malformed builds a *MalformedArtifactError.
func malformed(reason string) error {
	return &MalformedArtifactError{Reason: reason}
}
