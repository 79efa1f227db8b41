package credstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/dndadmin/internal/filex"
)

// Sealer names accepted by NewSealer.
const (
	SealerAESGCM = "aesgcm"
	SealerAge    = "age"
)

// Sealer encrypts the token before it touches disk.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// NewSealer builds the named sealer with its key material under dir,
// generating the key material on first use.
func NewSealer(name, dir string) (Sealer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SealerAESGCM, "":
		identity, err := UserIdentity()
		if err != nil {
			return nil, fmt.Errorf("resolve user identity: %w", err)
		}
		return NewAESGCMSealer(filepath.Join(dir, aesKeyFile), identity)
	case SealerAge:
		return NewAgeSealer(filepath.Join(dir, ageIdentityFile))
	default:
		return nil, fmt.Errorf("unknown token sealer %q (want %q or %q)", name, SealerAESGCM, SealerAge)
	}
}

// loadOrCreate returns the contents of path, writing gen() to it with mode
// 0600 when it does not exist yet.
func loadOrCreate(path string, gen func() ([]byte, error)) ([]byte, error) {
	ok, err := filex.Exists(path)
	if err != nil {
		return nil, err
	}
	if ok {
		return os.ReadFile(path)
	}

	data, err := gen()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return data, nil
}
