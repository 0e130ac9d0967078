package handler

import (
	"net/http"

	"github.com/blogportal-dev/blogportal/internal/api"
	"github.com/blogportal-dev/blogportal/internal/domain"
	"github.com/blogportal-dev/blogportal/internal/feed"
	"github.com/blogportal-dev/blogportal/internal/logger"
)

// DirectoryGetHandler renders the user directory: searchable, role-filtered,
// sorted by id with a toggleable direction.
func (h *Handler) DirectoryGetHandler(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	role := queryOr(r, "role", feed.All)
	sortAsc := queryOr(r, "sort", "asc") != "desc"

	var data struct {
		Users   []domain.User
		Search  string
		Role    string
		SortAsc bool
	}
	data.Search = search
	data.Role = role
	data.SortAsc = sortAsc

	users, err := h.API.GetUsers(r)
	if err != nil {
		logger.Log.Error("loading user directory", "error", err)
		h.renderTemplateWithError(w, r, "directory.html", data, "Failed to load users.")
		return
	}

	filtered := feed.FilterUsers(users, search, role)
	feed.SortUsersById(filtered, sortAsc)
	data.Users = filtered

	h.renderTemplate(w, r, "directory.html", data)
}

// PromoteUserHandler grants the admin role. The route is behind AdminOnly;
// the backend still re-checks.
func (h *Handler) PromoteUserHandler(w http.ResponseWriter, r *http.Request) {
	userId, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	adminRole := int(domain.RoleAdmin)
	if _, err := h.API.UpdateUser(r, userId, api.UserRequest{Role: &adminRole}); err != nil {
		logger.Log.Error("promoting user via API", "user", userId, "error", err)
		h.redirectWithError(w, r, "/directory", err)
		return
	}

	h.redirectWithFlash(w, r, "/directory", flashCookieSuccess, "User promoted to admin.")
}
