package handler

import (
	"net/http"

	"github.com/blogportal-dev/blogportal/internal/domain"
	"github.com/blogportal-dev/blogportal/internal/feed"
	"github.com/blogportal-dev/blogportal/internal/logger"
)

// HomeGetHandler renders the public landing page: the trending (featured)
// rail over the published set, with a banner built from trending thumbnails.
func (h *Handler) HomeGetHandler(w http.ResponseWriter, r *http.Request) {
	var data struct {
		Trending []domain.Post
		Latest   []domain.Post
		Banner   []string
	}

	posts, err := h.API.GetPosts(r)
	if err != nil {
		logger.Log.Error("loading posts for home page", "error", err)
		h.renderTemplateWithError(w, r, "home.html", data, "Failed to load posts.")
		return
	}

	users, err := h.API.GetUsers(r)
	if err != nil {
		// Author names degrade to "Unknown"; the page still renders.
		logger.Log.Error("loading users for home page", "error", err)
	}

	published := feed.Apply(feed.JoinAuthors(posts, users), feed.Filters{Status: feed.StatusPublished})
	for i := range published {
		published[i].Excerpt = h.Rich.Excerpt(published[i].Content, 160)
	}

	data.Trending = feed.Trending(published)
	data.Latest = published
	data.Banner = feed.BannerImages(published)

	h.renderTemplate(w, r, "home.html", data)
}
