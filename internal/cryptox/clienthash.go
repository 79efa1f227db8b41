package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// HashEncoding selects how the SHA-256 digest of the login handshake is
// rendered before it is sent to the server. It has to match what the
// server-side verifier computes, byte for byte.
type HashEncoding string

const (
	// HashHex is lowercase hexadecimal, 64 characters.
	HashHex HashEncoding = "hex"
	// HashBase64 is standard padded base64, 44 characters.
	HashBase64 HashEncoding = "base64"
)

// ParseHashEncoding accepts "hex" or "base64" (case-insensitive).
func ParseHashEncoding(s string) (HashEncoding, error) {
	switch HashEncoding(strings.ToLower(strings.TrimSpace(s))) {
	case HashHex:
		return HashHex, nil
	case HashBase64:
		return HashBase64, nil
	default:
		return "", fmt.Errorf("unknown hash encoding %q (want %q or %q)", s, HashHex, HashBase64)
	}
}

// ComputeClientHash returns encoding(SHA-256(utf8(password) || utf8(salt))).
// It is pure: the same inputs always give the same string.
func ComputeClientHash(password, salt string, encoding HashEncoding) (string, error) {
	return ComputeClientHashBytes([]byte(password), salt, encoding)
}

// ComputeClientHashBytes is ComputeClientHash for a password held in a
// byte slice the caller wipes. No copy of the password outlives the call.
func ComputeClientHashBytes(password []byte, salt string, encoding HashEncoding) (string, error) {
	buf := make([]byte, 0, len(password)+len(salt))
	buf = append(buf, password...)
	buf = append(buf, salt...)
	sum := sha256.Sum256(buf)
	wipe(buf)

	switch encoding {
	case HashHex:
		return hex.EncodeToString(sum[:]), nil
	case HashBase64:
		return base64.StdEncoding.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("unknown hash encoding %q", encoding)
	}
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
