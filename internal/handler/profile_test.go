package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/blogportal-dev/blogportal/internal/api"
	"github.com/blogportal-dev/blogportal/internal/domain"
)

func TestPasswordChangeHandler(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantUpdate bool
		wantFlash  string
	}{
		{
			"missing current password",
			url.Values{"newPassword": {"new-secret"}, "confirmNewPassword": {"new-secret"}},
			false, "Current password is required.",
		},
		{
			"missing new password",
			url.Values{"oldPassword": {"old-secret"}},
			false, "New password is required.",
		},
		{
			"confirmation mismatch",
			url.Values{"oldPassword": {"old-secret"}, "newPassword": {"new-secret"}, "confirmNewPassword": {"other"}},
			false, "New passwords do not match.",
		},
		{
			"valid change",
			url.Values{"oldPassword": {"old-secret"}, "newPassword": {"new-secret"}, "confirmNewPassword": {"new-secret"}},
			true, "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var updates int
			h, sessions := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodPut && r.URL.Path == "/users/update/8" {
					updates++
					json.NewEncoder(w).Encode(api.UserResponse{UserId: 8, Username: "casey"})
					return
				}
				t.Errorf("unexpected backend call %s %s", r.Method, r.URL.Path)
			}))

			router := chi.NewRouter()
			router.Post("/profile/password", h.PasswordChangeHandler)

			req := formRequest(t, sessions, &domain.User{Id: 8}, "/profile/password", tt.form)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/profile", rec.Header().Get("Location"))
			if tt.wantUpdate {
				assert.Equal(t, 1, updates)
				assert.Equal(t, "Password changed.", flashValue(t, rec, flashCookieSuccess))
			} else {
				assert.Zero(t, updates, "local validation must reject before any network call")
				assert.Equal(t, tt.wantFlash, flashValue(t, rec, flashCookieError))
			}
		})
	}
}
