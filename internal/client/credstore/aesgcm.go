package credstore

import (
	"fmt"

	"github.com/dmitrijs2005/dndadmin/internal/common"
	"github.com/dmitrijs2005/dndadmin/internal/cryptox"
)

const aesKeyFile = "token.key"

// AESGCMSealer seals with AES-256-GCM under a key derived (argon2id) from a
// random local secret and the OS user identity. The identity is also bound
// as additional data.
type AESGCMSealer struct {
	key      []byte
	identity []byte
}

// NewAESGCMSealer reads the secret at keyPath, creating it if needed.
func NewAESGCMSealer(keyPath string, identity []byte) (*AESGCMSealer, error) {
	if len(identity) == 0 {
		return nil, fmt.Errorf("user identity is required")
	}
	secret, err := loadOrCreate(keyPath, func() ([]byte, error) {
		return common.GenerateRandByteArray(cryptox.KeySize), nil
	})
	if err != nil {
		return nil, fmt.Errorf("load key %s: %w", keyPath, err)
	}
	defer common.WipeByteArray(secret)

	if len(secret) < cryptox.KeySize {
		return nil, fmt.Errorf("key %s is truncated", keyPath)
	}

	return &AESGCMSealer{
		key:      cryptox.DeriveKey(secret, identity),
		identity: append([]byte(nil), identity...),
	}, nil
}

func (s *AESGCMSealer) Seal(plaintext []byte) ([]byte, error) {
	return cryptox.Seal(plaintext, s.key, s.identity)
}

func (s *AESGCMSealer) Open(sealed []byte) ([]byte, error) {
	return cryptox.Open(sealed, s.key, s.identity)
}
