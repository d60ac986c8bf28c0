// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package press

import "fmt"

// Mode selects the artifact representation. The values are format
// constants stored in sealed artifacts.
type Mode uint8

const (
	// ModeNone is a pass-through: payloads are the original bytes.
	ModeNone Mode = 0

	// ModeSemantic keeps only structural skeletons. Lossy, one-way.
	ModeSemantic Mode = 1

	// ModeLossless encodes every file as dictionary codes and
	// literals; decodes byte-for-byte.
	ModeLossless Mode = 2

	// ModeHybrid carries a skeleton for readability and a patch for
	// exact reconstruction.
	ModeHybrid Mode = 3
)

// String returns the mode's lowercase name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeSemantic:
		return "semantic"
	case ModeLossless:
		return "lossless"
	case ModeHybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

// ParseMode parses a mode from its string representation.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "none":
		return ModeNone, nil
	case "semantic":
		return ModeSemantic, nil
	case "lossless":
		return ModeLossless, nil
	case "hybrid":
		return ModeHybrid, nil
	default:
		return 0, fmt.Errorf("unknown mode: %q", name)
	}
}

// Reconstructible reports whether artifacts in this mode decode back
// to the original corpus.
func (m Mode) Reconstructible() bool {
	return m == ModeNone || m == ModeLossless || m == ModeHybrid
}

// valid reports whether m is a defined mode.
func (m Mode) valid() bool {
	return m <= ModeHybrid
}
