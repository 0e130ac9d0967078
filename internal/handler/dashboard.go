package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/blogportal-dev/blogportal/internal/feed"
	"github.com/blogportal-dev/blogportal/internal/logger"
)

// DashboardGetHandler runs the full feed pipeline over the query-string
// filters and renders one page of the signed-in user's feed table.
func (h *Handler) DashboardGetHandler(w http.ResponseWriter, r *http.Request) {
	filters := feed.Filters{
		Search:   r.URL.Query().Get("search"),
		Category: queryOr(r, "category", feed.All),
		Status:   queryOr(r, "status", feed.All),
		Featured: queryOr(r, "featured", feed.All),
	}
	page := queryInt(r, "page", 1)

	var data struct {
		Page       feed.Page
		Filters    feed.Filters
		Categories []string
		Pager      []int
		PageURL    func(int) string
	}
	data.Filters = filters

	posts, err := h.API.GetPosts(r)
	if err != nil {
		logger.Log.Error("loading posts for dashboard", "error", err)
		h.renderTemplateWithError(w, r, "dashboard.html", data, "Failed to load posts.")
		return
	}

	users, err := h.API.GetUsers(r)
	if err != nil {
		logger.Log.Error("loading users for dashboard", "error", err)
	}

	data.Page = feed.Build(posts, users, filters, feed.OrderNone, page, h.Cfg.Feed.PageSize)
	data.Categories = feed.Categories(feed.JoinAuthors(posts, users))
	data.Pager = feed.WindowAround(data.Page.Number, data.Page.TotalPages)
	data.PageURL = func(n int) string { return pageURL(filters, n) }

	h.renderTemplate(w, r, "dashboard.html", data)
}

// pageURL rebuilds the dashboard query string for a pager link, keeping the
// active filters.
func pageURL(f feed.Filters, page int) string {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != "" && f.Category != feed.All {
		q.Set("category", f.Category)
	}
	if f.Status != "" && f.Status != feed.All {
		q.Set("status", f.Status)
	}
	if f.Featured != "" && f.Featured != feed.All {
		q.Set("featured", f.Featured)
	}
	q.Set("page", strconv.Itoa(page))
	return "/dashboard?" + q.Encode()
}
