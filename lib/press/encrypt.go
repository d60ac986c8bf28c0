// Copyright 2026 The Strata Authors
// SPDX-License-Identifier: Apache-2.0

package press

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// KeySize is the required length in bytes of an encryption key.
const KeySize = 32

// encryptedVersion is the envelope format version, bound into the AEAD
// as associated data so it cannot be rewritten undetected.
const encryptedVersion = 0x01

// hkdfInfoSealed separates keys derived for sealed-artifact envelopes
// from any other use of the same master key.
const hkdfInfoSealed = "strata.sealed.v1"

// ErrDecryptionFailed is returned when an encrypted envelope does not
// authenticate: wrong key, truncation, or tampering. The three are
// deliberately indistinguishable.
var ErrDecryptionFailed = errors.New("decryption failed")

// EncryptSealed wraps a sealed container in an authenticated encrypted
// envelope:
//
//	[version byte] [24-byte nonce] [ciphertext]
//
// The cipher is XChaCha20-Poly1305 under a key derived from key via
// HKDF-SHA256, with the version byte as associated data.
func EncryptSealed(sealed, key []byte) ([]byte, error) {
	aead, err := sealedAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	out := make([]byte, 0, 1+len(nonce)+len(sealed)+aead.Overhead())
	out = append(out, encryptedVersion)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, sealed, []byte{encryptedVersion}), nil
}

// DecryptSealed opens an encrypted envelope and returns the sealed
// container inside it.
func DecryptSealed(envelope, key []byte) ([]byte, error) {
	aead, err := sealedAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(envelope) < 1+aead.NonceSize()+aead.Overhead() {
		return nil, ErrDecryptionFailed
	}
	if envelope[0] != encryptedVersion {
		return nil, ErrDecryptionFailed
	}

	nonce := envelope[1 : 1+aead.NonceSize()]
	ciphertext := envelope[1+aead.NonceSize():]
	sealed, err := aead.Open(nil, nonce, ciphertext, []byte{encryptedVersion})
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return sealed, nil
}

// sealedAEAD derives the envelope cipher from a master key.
func sealedAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}

	derived := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, key, nil, []byte(hkdfInfoSealed))
	if _, err := io.ReadFull(kdf, derived); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return chacha20poly1305.NewX(derived)
}
