package handler

import (
	"net/http"

	"github.com/blogportal-dev/blogportal/internal/logger"
)

func (h *Handler) AuthGetHandler(w http.ResponseWriter, r *http.Request) {
	if h.Sessions.LoggedIn(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderTemplate(w, r, "auth.html", nil)
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	token, user, err := h.API.Login(email, password)
	if err != nil {
		logger.Log.Error("during login API call", "error", err)
		// Whatever the backend said, the user sees one message; anything
		// more specific would leak whether the account exists.
		h.redirectWithFlash(w, r, "/auth", flashCookieError, "Invalid email or password")
		return
	}

	h.Sessions.Save(w, token, user)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) SignupPostHandler(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	email := r.FormValue("email")
	displayName := r.FormValue("displayName")
	password := r.FormValue("password")
	confirm := r.FormValue("confirmPassword")

	// Caught before any network call.
	if password != confirm {
		h.redirectWithFlash(w, r, "/auth", flashCookieError, "Passwords do not match")
		return
	}
	if username == "" || email == "" || password == "" {
		h.redirectWithFlash(w, r, "/auth", flashCookieError, "Username, email and password are required")
		return
	}

	if _, err := h.API.CreateUser(username, email, password, displayName); err != nil {
		logger.Log.Error("during signup API call", "error", err)
		h.redirectWithError(w, r, "/auth", err)
		return
	}

	// Log the fresh account in right away.
	token, user, err := h.API.Login(email, password)
	if err != nil {
		h.redirectWithFlash(w, r, "/auth", flashCookieSuccess, "Account created. Please log in.")
		return
	}
	h.Sessions.Save(w, token, user)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}
