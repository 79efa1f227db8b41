package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/dndadmin/internal/common"
	"github.com/dmitrijs2005/dndadmin/internal/logging"
	"github.com/go-chi/chi/v5"
)

// Service implements the admin API handlers.
type Service struct {
	users  *UserStore
	secret []byte
	ttl    time.Duration
	logger logging.Logger
}

func NewService(users *UserStore, secret []byte, ttl time.Duration, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{users: users, secret: secret, ttl: ttl, logger: logger}
}

func (s *Service) SaltHandler(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		httpError(w, http.StatusBadRequest, "email is required")
		return
	}

	salt, err := s.users.Salt(email)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "internal error")
		return
	}
	jsonOK(w, map[string]string{"salt": salt})
}

func (s *Service) LoginHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	email, hash := strings.TrimSpace(q.Get("email")), q.Get("password")
	if email == "" || hash == "" {
		httpError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := s.users.Authenticate(email, hash)
	switch {
	case errors.Is(err, common.ErrorForbidden):
		httpError(w, http.StatusForbidden, "account is disabled")
		return
	case err != nil:
		httpError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := GenerateToken(u.ID, u.Role, s.secret, s.ttl)
	if err != nil {
		s.logger.Error(r.Context(), "token generation failed", "error", err)
		httpError(w, http.StatusInternalServerError, "token error")
		return
	}

	s.logger.Info(r.Context(), "login", "user_id", u.ID)
	jsonOK(w, map[string]string{"token": token})
}

func (s *Service) MeHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		httpError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	jsonOK(w, map[string]any{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
	})
}

func (s *Service) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, s.users.List())
}

func (s *Service) UpdateRoleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.targetID(w, r)
	if !ok {
		return
	}

	var in struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Role == "" {
		httpError(w, http.StatusBadRequest, "role is required")
		return
	}

	if me, _ := UserFromContext(r.Context()); me.ID == id && in.Role != RoleAdmin {
		httpError(w, http.StatusConflict, "you cannot remove your own admin role")
		return
	}

	s.writeUpdateResult(w, s.users.SetRole(id, in.Role))
}

func (s *Service) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.targetID(w, r)
	if !ok {
		return
	}

	var in struct {
		IsActive *bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.IsActive == nil {
		httpError(w, http.StatusBadRequest, "isActive is required")
		return
	}

	if me, _ := UserFromContext(r.Context()); me.ID == id && !*in.IsActive {
		httpError(w, http.StatusConflict, "you cannot deactivate your own account")
		return
	}

	s.writeUpdateResult(w, s.users.SetStatus(id, *in.IsActive))
}

func (s *Service) targetID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		httpError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

func (s *Service) writeUpdateResult(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, common.ErrorNotFound):
		httpError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, common.ErrorValidation):
		httpError(w, http.StatusBadRequest, err.Error())
	default:
		httpError(w, http.StatusInternalServerError, "internal error")
	}
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

// httpError writes msg as a plain-text body; clients show it verbatim.
func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}
