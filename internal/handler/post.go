package handler

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/blogportal-dev/blogportal/internal/comments"
	"github.com/blogportal-dev/blogportal/internal/domain"
	"github.com/blogportal-dev/blogportal/internal/logger"
)

// PostGetHandler renders the post detail page: sanitized rich-text body,
// image carousel, and the grouped comment thread. A ?reply=<id> query seeds
// the compose box with that comment as the parent.
func (h *Handler) PostGetHandler(w http.ResponseWriter, r *http.Request) {
	postId, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.API.GetPost(r, postId)
	if err != nil {
		logger.Log.Error("loading post", "post", postId, "error", err)
		http.NotFound(w, r)
		return
	}

	thread, err := h.Comments.Load(r, postId)
	if err != nil {
		// The post still renders; the thread section shows the failure.
		logger.Log.Error("loading comments", "post", postId, "error", err)
	}

	var data struct {
		Post     domain.Post
		Body     template.HTML
		Thread   []comments.Node
		Reply    *comments.Reply
		CanEdit  bool
		LoadFail bool
	}
	data.Post = post
	data.Body = h.Rich.Render(post.Content)
	data.Thread = comments.Group(thread)
	data.LoadFail = err != nil

	user, _ := h.Sessions.CurrentUser(r)
	data.CanEdit = domain.CanEditPost(user, &post)

	if replyTo := r.URL.Query().Get("reply"); replyTo != "" {
		if parentId, err := strconv.ParseInt(replyTo, 10, 64); err == nil {
			for _, c := range thread {
				if c.Id == parentId {
					seed := comments.ReplySeed(c)
					data.Reply = &seed
					break
				}
			}
		}
	}

	h.renderTemplate(w, r, "post.html", data)
}

// CommentPostHandler submits a comment or reply, then redirects back to the
// thread (the GET re-fetches, which is the reconciliation step).
func (h *Handler) CommentPostHandler(w http.ResponseWriter, r *http.Request) {
	postId, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	targetURL := fmt.Sprintf("/posts/%d#comments", postId)

	user, ok := h.Sessions.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	content := r.FormValue("content")
	var parentId *int64
	if raw := r.FormValue("parentId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			parentId = &id
		}
	}

	if _, err := h.Comments.Submit(r, postId, user.Id, content, parentId); err != nil {
		logger.Log.Error("submitting comment", "post", postId, "error", err)
		h.redirectWithError(w, r, targetURL, err)
		return
	}

	http.Redirect(w, r, targetURL, http.StatusSeeOther)
}

// CommentDeleteHandler deletes a comment after the advisory ownership check.
func (h *Handler) CommentDeleteHandler(w http.ResponseWriter, r *http.Request) {
	commentId, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, _ := h.Sessions.CurrentUser(r)

	comment, err := h.API.GetComment(r, commentId)
	if err != nil {
		logger.Log.Error("loading comment for delete", "comment", commentId, "error", err)
		h.redirectWithError(w, r, "/dashboard", err)
		return
	}
	targetURL := fmt.Sprintf("/posts/%d#comments", comment.PostId)

	if _, err := h.Comments.Remove(r, user, comment); err != nil {
		logger.Log.Error("deleting comment", "comment", commentId, "error", err)
		h.redirectWithError(w, r, targetURL, err)
		return
	}

	http.Redirect(w, r, targetURL, http.StatusSeeOther)
}

// PostDeleteHandler deletes a post. It requires the explicit confirmation
// field from the confirm dialog and re-checks ownership locally before any
// network call; the backend enforces the real authorization.
func (h *Handler) PostDeleteHandler(w http.ResponseWriter, r *http.Request) {
	postId, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	targetURL := fmt.Sprintf("/posts/%d", postId)

	if r.FormValue("confirm") != "yes" {
		h.redirectWithFlash(w, r, targetURL, flashCookieError, "Deletion not confirmed.")
		return
	}

	post, err := h.API.GetPost(r, postId)
	if err != nil {
		logger.Log.Error("loading post for delete", "post", postId, "error", err)
		h.redirectWithError(w, r, "/dashboard", err)
		return
	}

	user, _ := h.Sessions.CurrentUser(r)
	if !domain.CanEditPost(user, &post) {
		h.redirectWithFlash(w, r, targetURL, flashCookieError, "You do not have permission to delete this post.")
		return
	}

	if err := h.API.DeletePost(r, postId); err != nil {
		logger.Log.Error("deleting post", "post", postId, "error", err)
		h.redirectWithError(w, r, targetURL, err)
		return
	}

	h.redirectWithFlash(w, r, "/dashboard", flashCookieSuccess, "Post deleted.")
}
