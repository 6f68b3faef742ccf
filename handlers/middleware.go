package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"govdir/models"
)

type contextKey string

const identityKey contextKey = "identity"

// SessionCookie is the name of the session cookie set on login.
const SessionCookie = "govdir_session"

// NewStructuredLogger logs one line per request with the fields the rest
// of the service logs with.
func NewStructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// sessionToken pulls the bearer token from the Authorization header or
// falls back to the session cookie.
func sessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// AuthMiddleware resolves the session token, if any, into an Identity on
// the request context. It never rejects: route guards decide what an
// absent identity means.
func AuthMiddleware(app App) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			userID, ok := app.Sessions().Resolve(token)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			user, err := app.DB().UserByID(userID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			identity := user.Identity()
			ctx := context.WithValue(r.Context(), identityKey, &identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentIdentity returns the signed-in identity, or nil for anonymous
// requests.
func CurrentIdentity(r *http.Request) *models.Identity {
	id, _ := r.Context().Value(identityKey).(*models.Identity)
	return id
}

// RequireUser rejects anonymous requests with auth_required.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentIdentity(r) == nil {
			respondError(w, http.StatusUnauthorized, CodeAuthRequired, "sign in to continue")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with auth_required and
// non-admin accounts with forbidden.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := CurrentIdentity(r)
		if identity == nil {
			respondError(w, http.StatusUnauthorized, CodeAuthRequired, "sign in to continue")
			return
		}
		if !identity.IsAdmin() {
			respondError(w, http.StatusForbidden, CodeForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
