package credstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESGCMSealer_KeyFileIsReused(t *testing.T) {
	path := filepath.Join(t.TempDir(), aesKeyFile)
	id := []byte("1000:alice")

	a, err := NewAESGCMSealer(path, id)
	require.NoError(t, err)
	sealed, err := a.Seal([]byte("token"))
	require.NoError(t, err)

	b, err := NewAESGCMSealer(path, id)
	require.NoError(t, err)
	plain, err := b.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "token", string(plain))
}

func TestAESGCMSealer_RequiresIdentity(t *testing.T) {
	_, err := NewAESGCMSealer(filepath.Join(t.TempDir(), aesKeyFile), nil)
	require.Error(t, err)
}

func TestAgeSealer_RoundTripAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), ageIdentityFile)

	a, err := NewAgeSealer(path)
	require.NoError(t, err)
	sealed, err := a.Seal([]byte("token"))
	require.NoError(t, err)

	b, err := NewAgeSealer(path)
	require.NoError(t, err)
	plain, err := b.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "token", string(plain))

	_, err = b.Open([]byte("not an age file"))
	require.Error(t, err)
}

func TestNewSealer(t *testing.T) {
	dir := t.TempDir()

	s, err := NewSealer("AESGCM", dir)
	require.NoError(t, err)
	assert.IsType(t, &AESGCMSealer{}, s)

	s, err = NewSealer("age", dir)
	require.NoError(t, err)
	assert.IsType(t, &AgeSealer{}, s)

	_, err = NewSealer("plain", dir)
	require.Error(t, err)
}
