package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/dndadmin/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	mu sync.Mutex

	LoginRet string
	LoginErr error

	ProfileRet *models.Profile
	ProfileErr error

	UsersRet []models.User
	UsersErr error

	RoleErr   error
	StatusErr error

	// argument capture
	Token          string
	LastLoginEmail string
	LastLoginPass  []byte
	LoginCalls     int
	LastRole       struct {
		ID   int
		Role string
	}
	LastStatus struct {
		ID     int
		Active bool
	}
}

func (f *fakeClient) SetBearerToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Token = token
}

func (f *fakeClient) HasBearerToken() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Token != ""
}

func (f *fakeClient) GetSalt(ctx context.Context, email string) (string, error) {
	return "salt", nil
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	f.LoginCalls++
	f.LastLoginEmail = email
	f.LastLoginPass = append([]byte(nil), password...)
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) CurrentProfile(ctx context.Context) (*models.Profile, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]models.User, error) {
	return append([]models.User(nil), f.UsersRet...), f.UsersErr
}

func (f *fakeClient) UpdateUserRole(ctx context.Context, userID int, role string) error {
	f.LastRole.ID, f.LastRole.Role = userID, role
	return f.RoleErr
}

func (f *fakeClient) UpdateUserStatus(ctx context.Context, userID int, isActive bool) error {
	f.LastStatus.ID, f.LastStatus.Active = userID, isActive
	return f.StatusErr
}

// fakeStore implements TokenStore in memory.
type fakeStore struct {
	token    string
	hasToken bool
	email    string

	SaveErr  error
	LoadErr  error
	ClearErr error

	Cleared int
}

func (s *fakeStore) SaveSession(ctx context.Context, token, email string) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.token, s.hasToken, s.email = token, true, email
	return nil
}

func (s *fakeStore) Load(ctx context.Context) (string, bool, error) {
	if s.LoadErr != nil {
		return "", false, s.LoadErr
	}
	return s.token, s.hasToken, nil
}

func (s *fakeStore) Clear(ctx context.Context) error {
	s.Cleared++
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.token, s.hasToken = "", false
	return nil
}

func (s *fakeStore) LastEmail(ctx context.Context) (string, error) {
	return s.email, nil
}
