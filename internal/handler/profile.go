package handler

import (
	"net/http"

	"github.com/blogportal-dev/blogportal/internal/api"
	"github.com/blogportal-dev/blogportal/internal/logger"
)

func (h *Handler) ProfileGetHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Sessions.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	// Refresh from the backend so the page shows server truth, not the
	// possibly stale session copy.
	fresh, err := h.API.GetUser(r, user.Id)
	if err != nil {
		logger.Log.Error("refreshing profile", "user", user.Id, "error", err)
		h.renderTemplate(w, r, "profile.html", user)
		return
	}
	h.Sessions.RefreshUser(w, &fresh)

	h.renderTemplate(w, r, "profile.html", &fresh)
}

// ProfileUpdateHandler changes display name and email, then refreshes the
// session user from the backend's response.
func (h *Handler) ProfileUpdateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Sessions.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	update := api.UserRequest{
		DisplayName: r.FormValue("displayName"),
		Email:       r.FormValue("email"),
	}

	updated, err := h.API.UpdateUser(r, user.Id, update)
	if err != nil {
		logger.Log.Error("updating profile via API", "user", user.Id, "error", err)
		h.redirectWithError(w, r, "/profile", err)
		return
	}

	h.Sessions.RefreshUser(w, &updated)
	h.redirectWithFlash(w, r, "/profile", flashCookieSuccess, "Profile updated.")
}

// PasswordChangeHandler checks the form fields locally, then sends the new
// password.
func (h *Handler) PasswordChangeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Sessions.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	if r.FormValue("oldPassword") == "" {
		h.redirectWithFlash(w, r, "/profile", flashCookieError, "Current password is required.")
		return
	}
	newPassword := r.FormValue("newPassword")
	if newPassword == "" {
		h.redirectWithFlash(w, r, "/profile", flashCookieError, "New password is required.")
		return
	}
	if newPassword != r.FormValue("confirmNewPassword") {
		h.redirectWithFlash(w, r, "/profile", flashCookieError, "New passwords do not match.")
		return
	}

	update := api.UserRequest{PasswordHash: newPassword}
	if _, err := h.API.UpdateUser(r, user.Id, update); err != nil {
		logger.Log.Error("changing password via API", "user", user.Id, "error", err)
		h.redirectWithFlash(w, r, "/profile", flashCookieError, "Change password failed.")
		return
	}

	h.redirectWithFlash(w, r, "/profile", flashCookieSuccess, "Password changed.")
}

// AccountDeleteHandler deletes the account after explicit confirmation and
// clears the session.
func (h *Handler) AccountDeleteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Sessions.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	if r.FormValue("confirm") != "yes" {
		h.redirectWithFlash(w, r, "/profile", flashCookieError, "Deletion not confirmed.")
		return
	}

	if err := h.API.DeleteUser(r, user.Id); err != nil {
		logger.Log.Error("deleting account via API", "user", user.Id, "error", err)
		h.redirectWithError(w, r, "/profile", err)
		return
	}

	h.Sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
