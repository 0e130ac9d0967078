package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogportal-dev/blogportal/internal/domain"
	"github.com/blogportal-dev/blogportal/internal/session"
)

// loggedInRequest builds a request carrying the session cookies for user,
// by replaying a recorded Save.
func loggedInRequest(t *testing.T, sessions *session.Store, user *domain.User) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	sessions.Save(rec, "opaque-token", user)

	r := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

// capture records the user the middleware put in context, and whether the
// inner handler ran at all.
func capture(called *bool, user **domain.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*user = UserFromContext(r)
		w.WriteHeader(http.StatusOK)
	})
}

func flashMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookieError {
			raw, err := base64.StdEncoding.DecodeString(c.Value)
			require.NoError(t, err)
			return string(raw)
		}
	}
	return ""
}

func TestOptionalAuth(t *testing.T) {
	sessions := session.New(false)
	auth := NewAuth(sessions, false)

	t.Run("anonymous passes through", func(t *testing.T) {
		var called bool
		var user *domain.User
		rec := httptest.NewRecorder()

		auth.OptionalAuth()(capture(&called, &user)).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		assert.True(t, called)
		assert.Nil(t, user)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("session user lands in context", func(t *testing.T) {
		var called bool
		var user *domain.User
		rec := httptest.NewRecorder()
		r := loggedInRequest(t, sessions, &domain.User{Id: 7, Username: "casey"})

		auth.OptionalAuth()(capture(&called, &user)).ServeHTTP(rec, r)

		assert.True(t, called)
		require.NotNil(t, user)
		assert.Equal(t, int64(7), user.Id)
	})
}

func TestRequireAuth(t *testing.T) {
	sessions := session.New(false)
	auth := NewAuth(sessions, false)

	t.Run("anonymous redirected to login", func(t *testing.T) {
		var called bool
		var user *domain.User
		rec := httptest.NewRecorder()

		auth.RequireAuth()(capture(&called, &user)).ServeHTTP(rec, httptest.NewRequest("GET", "/dashboard", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth", rec.Header().Get("Location"))
		assert.Equal(t, "Please log in to continue", flashMessage(t, rec))
	})

	t.Run("logged in passes with user in context", func(t *testing.T) {
		var called bool
		var user *domain.User
		rec := httptest.NewRecorder()
		r := loggedInRequest(t, sessions, &domain.User{Id: 7, Username: "casey"})

		auth.RequireAuth()(capture(&called, &user)).ServeHTTP(rec, r)

		assert.True(t, called)
		require.NotNil(t, user)
		assert.Equal(t, "casey", user.Username)
	})
}

func TestAdminOnly(t *testing.T) {
	sessions := session.New(false)
	auth := NewAuth(sessions, false)

	tests := []struct {
		name      string
		user      *domain.User
		wantPass  bool
		wantFlash string
	}{
		{"anonymous", nil, false, "Access denied"},
		{"regular user", &domain.User{Id: 7, Role: domain.RoleUser}, false, "Access denied"},
		{"admin", &domain.User{Id: 1, Role: domain.RoleAdmin}, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var user *domain.User
			rec := httptest.NewRecorder()

			r := httptest.NewRequest("GET", "/directory/7/promote", nil)
			if tt.user != nil {
				r = loggedInRequest(t, sessions, tt.user)
			}

			auth.AdminOnly()(capture(&called, &user)).ServeHTTP(rec, r)

			assert.Equal(t, tt.wantPass, called)
			if tt.wantPass {
				require.NotNil(t, user)
				assert.True(t, user.IsAdmin())
			} else {
				assert.Equal(t, http.StatusSeeOther, rec.Code)
				assert.Equal(t, "/auth", rec.Header().Get("Location"))
				assert.Equal(t, tt.wantFlash, flashMessage(t, rec))
			}
		})
	}
}
