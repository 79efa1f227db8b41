package devserver

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dndadmin/internal/client/models"
	"github.com/dmitrijs2005/dndadmin/internal/common"
	"github.com/dmitrijs2005/dndadmin/internal/logging"
	"github.com/dmitrijs2005/dndadmin/internal/netx"
	"github.com/go-chi/chi/v5/middleware"
)

type contextKey int

const userContextKey contextKey = iota

// UserFromContext returns the account resolved by AuthN.
func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userContextKey).(models.User)
	return u, ok
}

// AuthN requires a valid bearer token for an existing, active account.
func AuthN(users *UserStore, secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := netx.BearerToken(r.Header.Get(common.AuthorizationHeaderName))
			if !ok {
				httpError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := ParseToken(raw, secret)
			if err != nil {
				httpError(w, http.StatusUnauthorized, err.Error())
				return
			}

			id, _ := claims.UserID()
			u, err := users.ByID(id)
			if err != nil || !u.IsActive {
				httpError(w, http.StatusUnauthorized, "unknown or disabled account")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthZRoles lets through accounts whose current role is one of allowed.
func AuthZRoles(allowed ...string) func(http.Handler) http.Handler {
	set := map[string]struct{}{}
	for _, a := range allowed {
		set[a] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				httpError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if _, allowed := set[u.Role]; !allowed {
				httpError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one line per request. Query strings are left out: the
// login query carries the client hash.
func RequestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
				"elapsed", time.Since(started),
			)
		})
	}
}
