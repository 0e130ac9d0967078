package handler

import (
	"encoding/base64"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blogportal-dev/blogportal/internal/domain"
	internal_errors "github.com/blogportal-dev/blogportal/internal/errors"
	"github.com/blogportal-dev/blogportal/internal/middleware"
)

const (
	flashCookieError   = "flash_error"
	flashCookieSuccess = "flash_success"
)

// CommonTemplateData holds fields every page template can rely on, exposed
// to templates as .Common.
type CommonTemplateData struct {
	Error   string
	Success string
	User    *domain.User
}

// initCommonTemplateData pulls the current user and consumes any pending
// flash messages. Flash cookies are read-once: they expire in the same
// response that renders them.
func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) CommonTemplateData {
	common := CommonTemplateData{User: middleware.UserFromContext(r)}
	if common.User == nil {
		// Pages outside the auth middleware still show the navbar state.
		common.User, _ = h.Sessions.CurrentUser(r)
	}
	common.Error = h.consumeFlash(w, r, flashCookieError)
	common.Success = h.consumeFlash(w, r, flashCookieSuccess)
	return common
}

func (h *Handler) setFlash(w http.ResponseWriter, name, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.StdEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   h.Cfg.Server.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) consumeFlash(w http.ResponseWriter, r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cfg.Server.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	decoded, err := base64.StdEncoding.DecodeString(c.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, targetURL, cookieName, msg string) {
	h.setFlash(w, cookieName, msg)
	http.Redirect(w, r, targetURL, http.StatusSeeOther)
}

// redirectWithError escapes err for display and sends the user back.
func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, targetURL string, err error) {
	h.redirectWithFlash(w, r, targetURL, flashCookieError, template.HTMLEscapeString(userMessage(err)))
}

// userMessage keeps backend 5xx details off the page.
func userMessage(err error) string {
	if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok && e.StatusCode < 500 {
		return e.Message
	}
	if _, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
		return "Something went wrong on the server. Please try again."
	}
	return "Backend unavailable. Please try again."
}

// idParam parses the numeric {id} route parameter.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &internal_errors.ErrorWithStatusCode{Message: "invalid " + name, StatusCode: http.StatusBadRequest}
	}
	return id, nil
}

// queryOr returns the query parameter or a default when absent.
func queryOr(r *http.Request, name, fallback string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return fallback
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
