package devserver

import (
	"net/http"

	"github.com/dmitrijs2005/dndadmin/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the admin API.
func NewRouter(svc *Service, logger logging.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	// Public endpoints
	r.Get("/api/auth/salt", svc.SaltHandler)
	r.Post("/api/auth/login", svc.LoginHandler)

	// Protected endpoints
	r.Group(func(auth chi.Router) {
		auth.Use(AuthN(svc.users, svc.secret))
		auth.Get("/api/auth/me", svc.MeHandler)

		// Admin-only endpoints
		auth.Group(func(admin chi.Router) {
			admin.Use(AuthZRoles(RoleAdmin))
			admin.Get("/api/admin/users", svc.ListUsersHandler)
			admin.Put("/api/admin/users/{id}/role", svc.UpdateRoleHandler)
			admin.Put("/api/admin/users/{id}/status", svc.UpdateStatusHandler)
		})
	})

	return r
}
