package handler

import (
	"fmt"
	"html/template"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/blogportal-dev/blogportal/internal/api"
	"github.com/blogportal-dev/blogportal/internal/domain"
	"github.com/blogportal-dev/blogportal/internal/logger"
	"github.com/blogportal-dev/blogportal/internal/validation"
)

func (h *Handler) CreateGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "editor.html", editorData{Action: "/create"})
}

type editorData struct {
	Action string
	Post   *domain.Post
}

// CreatePostHandler validates the form and attachments locally, then sends
// the multipart create request.
func (h *Handler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	targetURL := "/create"

	user, ok := h.Sessions.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	if err := validation.LimitRequest(w, r, h.Cfg.Upload.MaxAttachmentSize); err != nil {
		h.redirectWithFlash(w, r, targetURL, flashCookieError, "Upload too large.")
		return
	}

	data, err := postForm(r, user.Id)
	if err != nil {
		h.redirectWithFlash(w, r, targetURL, flashCookieError, template.HTMLEscapeString(err.Error()))
		return
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File["files"]
	}
	if _, err := validation.CheckAttachments(files, h.Cfg.Upload.AllowedImageMimes, h.Cfg.Upload.MaxAttachments); err != nil {
		h.redirectWithFlash(w, r, targetURL, flashCookieError, template.HTMLEscapeString(err.Error()))
		return
	}

	created, err := h.API.CreatePost(r, data, files)
	if err != nil {
		logger.Log.Error("creating post via API", "error", err)
		h.redirectWithError(w, r, targetURL, err)
		return
	}

	h.redirectWithFlash(w, r, fmt.Sprintf("/posts/%d", created.Id), flashCookieSuccess, "Post created.")
}

func (h *Handler) EditGetHandler(w http.ResponseWriter, r *http.Request) {
	postId, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.API.GetPost(r, postId)
	if err != nil {
		logger.Log.Error("loading post for edit", "post", postId, "error", err)
		http.NotFound(w, r)
		return
	}

	user, _ := h.Sessions.CurrentUser(r)
	if !domain.CanEditPost(user, &post) {
		h.redirectWithFlash(w, r, fmt.Sprintf("/posts/%d", postId), flashCookieError, "You do not have permission to edit this post.")
		return
	}

	h.renderTemplate(w, r, "editor.html", editorData{
		Action: fmt.Sprintf("/posts/%d/edit", postId),
		Post:   &post,
	})
}

func (h *Handler) EditPostHandler(w http.ResponseWriter, r *http.Request) {
	postId, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	targetURL := fmt.Sprintf("/posts/%d/edit", postId)

	post, err := h.API.GetPost(r, postId)
	if err != nil {
		h.redirectWithError(w, r, "/dashboard", err)
		return
	}
	user, _ := h.Sessions.CurrentUser(r)
	if !domain.CanEditPost(user, &post) {
		h.redirectWithFlash(w, r, fmt.Sprintf("/posts/%d", postId), flashCookieError, "You do not have permission to edit this post.")
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	if title == "" || content == "" {
		h.redirectWithFlash(w, r, targetURL, flashCookieError, "Title and content are required.")
		return
	}

	status := formStatus(r)
	featured := r.FormValue("featured") == "on"
	update := api.UpdatePostRequest{
		Title:    title,
		Content:  content,
		Status:   &status,
		Category: r.FormValue("category"),
		Featured: &featured,
	}

	updated, err := h.API.UpdatePost(r, postId, update)
	if err != nil {
		logger.Log.Error("updating post via API", "post", postId, "error", err)
		h.redirectWithError(w, r, targetURL, err)
		return
	}

	h.redirectWithFlash(w, r, fmt.Sprintf("/posts/%d", updated.Id), flashCookieSuccess, "Post updated.")
}

func postForm(r *http.Request, authorId int64) (api.CreatePostRequest, error) {
	title := r.FormValue("title")
	content := r.FormValue("content")
	if title == "" || content == "" {
		return api.CreatePostRequest{}, fmt.Errorf("title and content are required")
	}

	category := r.FormValue("category")
	if category == "" {
		category = "General"
	}

	return api.CreatePostRequest{
		AuthorId: authorId,
		Title:    title,
		Content:  content,
		Status:   formStatus(r),
		Category: category,
		Featured: r.FormValue("featured") == "on",
	}, nil
}

func formStatus(r *http.Request) int {
	status, err := strconv.Atoi(r.FormValue("status"))
	if err != nil || status != int(domain.StatusPublished) {
		return int(domain.StatusDraft)
	}
	return status
}
