package cryptox

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	expectedHex := "9290403300158e19f27e48e7087f7383b03065bf5b25ef23ebc40229616cd8b3"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	key1 := DeriveKey([]byte("secret-password"), []byte("uid=1000"))
	key2 := DeriveKey([]byte("secret-password"), []byte("uid=1001"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("k"), []byte("s"))
	aad := []byte("user:alice")

	sealed, err := Seal([]byte("tok-1"), key, aad)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "tok-1")

	plain, err := Open(sealed, key, aad)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(plain))
}

func TestSeal_FreshNonceEachTime(t *testing.T) {
	key := DeriveKey([]byte("k"), []byte("s"))

	a, err := Seal([]byte("same"), key, nil)
	require.NoError(t, err)
	b, err := Seal([]byte("same"), key, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpen_Failures(t *testing.T) {
	key := DeriveKey([]byte("k"), []byte("s"))
	otherKey := DeriveKey([]byte("k"), []byte("other"))

	sealed, err := Seal([]byte("tok-1"), key, []byte("user:alice"))
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := Open(sealed, otherKey, []byte("user:alice"))
		require.Error(t, err)
	})

	t.Run("wrong additional data", func(t *testing.T) {
		_, err := Open(sealed, key, []byte("user:bob"))
		require.Error(t, err)
	})

	t.Run("tampered", func(t *testing.T) {
		bad := append([]byte(nil), sealed...)
		bad[len(bad)-1] ^= 0xff
		_, err := Open(bad, key, []byte("user:alice"))
		require.Error(t, err)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := Open([]byte{1, 2, 3}, key, nil)
		require.ErrorIs(t, err, ErrSealedTooShort)
	})

	t.Run("bad key length", func(t *testing.T) {
		_, err := Open(sealed, []byte("short"), nil)
		require.Error(t, err)
	})
}
