package middleware

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/blogportal-dev/blogportal/internal/domain"
	"github.com/blogportal-dev/blogportal/internal/session"
)

type key int

const userKey key = 0

const flashCookieError = "flash_error"

// Auth gates pages on the browser session. Unlike an API middleware it never
// answers 401; unauthenticated users are redirected to the login page with a
// flash message.
type Auth struct {
	sessions      *session.Store
	secureCookies bool
}

func NewAuth(sessions *session.Store, secureCookies bool) *Auth {
	return &Auth{sessions: sessions, secureCookies: secureCookies}
}

// OptionalAuth populates the request context with the current user when a
// session exists, and passes through otherwise.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, ok := a.sessions.CurrentUser(r); ok {
				r = r.WithContext(context.WithValue(r.Context(), userKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects to the login page when there is no session.
func (a *Auth) RequireAuth() func(http.Handler) http.Handler {
	return a.gate(func(user *domain.User) bool { return user != nil }, "Please log in to continue")
}

// AdminOnly additionally requires the admin role.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.gate(func(user *domain.User) bool { return user.IsAdmin() }, "Access denied")
}

func (a *Auth) gate(allowed func(*domain.User) bool, deniedMsg string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := a.sessions.CurrentUser(r)
			if !ok || !allowed(user) {
				a.redirectToLogin(w, r, deniedMsg)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *Auth) redirectToLogin(w http.ResponseWriter, r *http.Request, msg string) {
	// Base64 keeps arbitrary message text cookie-safe.
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieError,
		Value:    base64.StdEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}

// UserFromContext returns the authenticated user placed by the auth
// middleware, or nil.
func UserFromContext(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userKey).(*domain.User)
	return user
}
