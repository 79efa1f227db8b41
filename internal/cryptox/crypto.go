// Package cryptox holds the cryptographic primitives of the admin client:
// the login handshake hash and the key derivation and AEAD sealing used to
// keep the bearer token encrypted at rest.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
)

// KeySize is the AES-256 key length produced by DeriveKey.
const KeySize = 32

// ErrSealedTooShort is returned by Open when the input cannot even hold a nonce.
var ErrSealedTooShort = errors.New("sealed data too short")

// DeriveKey stretches secret with salt using Argon2id
// (t=1, m=64 MiB, p=4) into a KeySize-byte key.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize)
}

// Seal encrypts plaintext with AES-GCM under key. A fresh random nonce is
// generated and prepended to the ciphertext. additionalData is
// authenticated but not stored; Open must be given the same value.
func Seal(plaintext, key, additionalData []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return aesgcm.Seal(nonce, nonce, plaintext, additionalData), nil
}

// Open reverses Seal. Any tampering, a different key or different
// additionalData makes it fail.
func Open(sealed, key, additionalData []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	n := aesgcm.NonceSize()
	if len(sealed) < n+aesgcm.Overhead() {
		return nil, ErrSealedTooShort
	}

	return aesgcm.Open(nil, sealed[:n], sealed[n:], additionalData)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
