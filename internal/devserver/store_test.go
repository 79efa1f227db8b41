package devserver

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/dndadmin/internal/client/models"
	"github.com/dmitrijs2005/dndadmin/internal/common"
	"github.com/dmitrijs2005/dndadmin/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *UserStore {
	t.Helper()
	s := NewUserStore(cryptox.HashHex, models.DefaultRoleOptions)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func TestUserStore_AddAndAuthenticate(t *testing.T) {
	s := newTestStore(t)

	u, err := s.Add("Admin@Example.com", "admin", "Admin", "admin123", true)
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.Nil(t, u.LastLoginAt)

	salt, err := s.Salt("admin@example.com")
	require.NoError(t, err)
	hash, err := cryptox.ComputeClientHash("admin123", salt, cryptox.HashHex)
	require.NoError(t, err)

	got, err := s.Authenticate(" admin@example.com", hash)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.Equal(t, 2026, got.LastLoginAt.Year())

	_, err = s.Authenticate("admin@example.com", "0000")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	_, err = s.Authenticate("ghost@example.com", hash)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUserStore_SaltForUnknownEmailIsRandom(t *testing.T) {
	s := newTestStore(t)

	a, err := s.Salt("ghost@example.com")
	require.NoError(t, err)
	b, err := s.Salt("ghost@example.com")
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestUserStore_InactiveAccountIsForbidden(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add("p@example.com", "p", "User", "pw", false)
	require.NoError(t, err)
	salt, _ := s.Salt("p@example.com")
	hash, _ := cryptox.ComputeClientHash("pw", salt, cryptox.HashHex)

	_, err = s.Authenticate("p@example.com", hash)
	assert.ErrorIs(t, err, common.ErrorForbidden)
}

func TestUserStore_AddValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add("a@b.c", "a", "Wizard", "pw", true)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Add("", "a", "User", "pw", true)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Add("a@b.c", "a", "User", "pw", true)
	require.NoError(t, err)
	_, err = s.Add("A@B.C", "a2", "User", "pw", true)
	assert.ErrorIs(t, err, common.ErrorValidation, "emails are unique case-insensitively")
}

func TestUserStore_UpdatesAndList(t *testing.T) {
	s := newTestStore(t)
	for _, e := range []string{"c@x", "a@x", "b@x"} {
		_, err := s.Add(e, e, "User", "pw", true)
		require.NoError(t, err)
	}

	require.NoError(t, s.SetRole(2, "DM"))
	require.NoError(t, s.SetStatus(3, false))
	assert.ErrorIs(t, s.SetRole(2, "Wizard"), common.ErrorValidation)
	assert.ErrorIs(t, s.SetRole(99, "DM"), common.ErrorNotFound)
	assert.ErrorIs(t, s.SetStatus(99, true), common.ErrorNotFound)

	users := s.List()
	require.Len(t, users, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{users[0].ID, users[1].ID, users[2].ID})
	assert.Equal(t, "DM", users[1].Role)
	assert.False(t, users[2].IsActive)

	_, err := s.ByID(99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
