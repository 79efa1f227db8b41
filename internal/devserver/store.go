package devserver

import (
	"crypto/subtle"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/dndadmin/internal/client/models"
	"github.com/dmitrijs2005/dndadmin/internal/common"
	"github.com/dmitrijs2005/dndadmin/internal/cryptox"
	"github.com/dmitrijs2005/dndadmin/internal/timex"
)

// RoleAdmin is the role allowed to use the admin endpoints.
const RoleAdmin = "Admin"

type account struct {
	user     models.User
	salt     string
	verifier string
}

// UserStore is an in-memory account table. Each account keeps its salt and
// the client hash of its password in the configured encoding.
type UserStore struct {
	mu       sync.RWMutex
	encoding cryptox.HashEncoding
	roles    []string
	nextID   int
	byID     map[int]*account
	byEmail  map[string]*account
	now      func() time.Time
}

func NewUserStore(encoding cryptox.HashEncoding, roles []string) *UserStore {
	return &UserStore{
		encoding: encoding,
		roles:    slices.Clone(roles),
		nextID:   1,
		byID:     map[int]*account{},
		byEmail:  map[string]*account{},
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Add creates an account with a fresh random salt.
func (s *UserStore) Add(email, username, role, password string, active bool) (models.User, error) {
	key := normalizeEmail(email)
	if key == "" || strings.TrimSpace(username) == "" {
		return models.User{}, fmt.Errorf("%w: email and username are required", common.ErrorValidation)
	}
	if !s.validRole(role) {
		return models.User{}, fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}

	salt, err := common.MakeRandHexString(16)
	if err != nil {
		return models.User{}, err
	}
	verifier, err := cryptox.ComputeClientHash(password, salt, s.encoding)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[key]; ok {
		return models.User{}, fmt.Errorf("%w: email %s already registered", common.ErrorValidation, email)
	}

	acc := &account{
		user: models.User{
			ID:        s.nextID,
			Email:     strings.TrimSpace(email),
			Username:  username,
			Role:      role,
			IsActive:  active,
			CreatedAt: timex.Time{Time: s.now().UTC()},
		},
		salt:     salt,
		verifier: verifier,
	}
	s.nextID++
	s.byID[acc.user.ID] = acc
	s.byEmail[key] = acc
	return acc.user, nil
}

// Salt returns the account's salt. Unknown emails get a random one so the
// endpoint does not reveal which accounts exist.
func (s *UserStore) Salt(email string) (string, error) {
	s.mu.RLock()
	acc, ok := s.byEmail[normalizeEmail(email)]
	s.mu.RUnlock()
	if ok {
		return acc.salt, nil
	}
	return common.MakeRandHexString(16)
}

// Authenticate checks a client hash and records the login time. Inactive
// accounts are refused with common.ErrorForbidden.
func (s *UserStore) Authenticate(email, clientHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byEmail[normalizeEmail(email)]
	if !ok || subtle.ConstantTimeCompare([]byte(acc.verifier), []byte(clientHash)) != 1 {
		return models.User{}, common.ErrorUnauthorized
	}
	if !acc.user.IsActive {
		return models.User{}, common.ErrorForbidden
	}

	at := timex.Time{Time: s.now().UTC()}
	acc.user.LastLoginAt = &at
	return acc.user, nil
}

func (s *UserStore) ByID(id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.byID[id]
	if !ok {
		return models.User{}, common.ErrorNotFound
	}
	return acc.user, nil
}

// List returns all accounts ordered by id.
func (s *UserStore) List() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.byID))
	for _, acc := range s.byID {
		out = append(out, acc.user)
	}
	models.SortByID(out)
	return out
}

func (s *UserStore) SetRole(id int, role string) error {
	if !s.validRole(role) {
		return fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	acc.user.Role = role
	return nil
}

func (s *UserStore) SetStatus(id int, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	acc.user.IsActive = active
	return nil
}

func (s *UserStore) validRole(role string) bool {
	return slices.Contains(s.roles, role)
}
