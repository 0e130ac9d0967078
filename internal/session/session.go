// Package session is the single source of truth for "is this browser logged
// in". It keeps the backend-issued bearer token and the current user record in
// two cookies that live and die together. No network or validation logic.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blogportal-dev/blogportal/internal/domain"
)

const (
	tokenCookie = "jwt_token"
	userCookie  = "current_user"

	cookieTTL = 30 * 24 * time.Hour
)

// Store is the injected session service. Construct once in setup and pass to
// anything that needs identity.
type Store struct {
	secureCookies bool
}

func New(secureCookies bool) *Store {
	return &Store{secureCookies: secureCookies}
}

// Save persists token and user, overwriting any prior session.
func (s *Store) Save(w http.ResponseWriter, token string, user *domain.User) {
	s.set(w, tokenCookie, token)

	raw, err := json.Marshal(user)
	if err != nil {
		// A user record that cannot be serialized leaves no half-session.
		s.Clear(w)
		return
	}
	s.set(w, userCookie, base64.StdEncoding.EncodeToString(raw))
}

// RefreshUser rewrites the stored user record, keeping the current token.
// Used after profile updates so the navbar reflects the new identity.
func (s *Store) RefreshUser(w http.ResponseWriter, user *domain.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	s.set(w, userCookie, base64.StdEncoding.EncodeToString(raw))
}

// Token returns the stored bearer token, or "" when there is none. The
// literal strings "null" and "undefined" count as absence; past bugs leaked
// them into storage and they must never reach the Authorization header.
func (s *Store) Token(r *http.Request) string {
	c, err := r.Cookie(tokenCookie)
	if err != nil {
		return ""
	}
	token := c.Value
	if token == "" || token == "null" || token == "undefined" {
		return ""
	}
	if expired(token) {
		return ""
	}
	return token
}

// CurrentUser returns the stored user record. Never errors: any garbled or
// missing cookie reads as "not logged in".
func (s *Store) CurrentUser(r *http.Request) (*domain.User, bool) {
	if s.Token(r) == "" {
		return nil, false
	}
	c, err := r.Cookie(userCookie)
	if err != nil {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(c.Value)
	if err != nil {
		return nil, false
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false
	}
	return &user, true
}

// LoggedIn reports whether a usable session exists.
func (s *Store) LoggedIn(r *http.Request) bool {
	return s.Token(r) != ""
}

// Clear removes both cookies. From the caller's point of view this is atomic:
// both expire in the same response.
func (s *Store) Clear(w http.ResponseWriter) {
	s.expire(w, tokenCookie)
	s.expire(w, userCookie)
}

func (s *Store) set(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Store) expire(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// expired inspects the token's exp claim without verifying the signature.
// The token is otherwise opaque to the front end; verification is the
// backend's job, this only avoids sending tokens we know are dead.
func expired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Not a JWT at all: let the backend decide.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
