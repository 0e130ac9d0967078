// Package apiclient handles all communication with the blog REST backend.
// It owns the wire-to-display translation: backend postId/userId become
// display ids, featured flags are normalized, asset paths are resolved.
package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/blogportal-dev/blogportal/internal/errors"
	"github.com/blogportal-dev/blogportal/internal/session"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Client is the typed gateway to the backend API.
type Client struct {
	BaseURL    string
	StaticBase string
	HttpClient *http.Client
	Sessions   *session.Store
}

func New(baseURL, staticBase string, sessions *session.Store) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		StaticBase: strings.TrimRight(staticBase, "/"),
		HttpClient: &http.Client{},
		Sessions:   sessions,
	}
}

// do is the single helper for plain requests. The bearer token is read from
// the session store at call time, never cached, so a session change takes
// effect on the very next call.
func (c *Client) do(r *http.Request, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(r, req)

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}

func (c *Client) authorize(r *http.Request, req *http.Request) {
	if r == nil {
		return
	}
	if token := c.Sessions.Token(r); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// checkRequest validates an outgoing DTO before any network traffic happens.
func checkRequest(data any) error {
	if err := validate.Struct(data); err != nil {
		return &internal_errors.ErrorWithStatusCode{Message: "required fields missing or invalid", StatusCode: http.StatusBadRequest}
	}
	return nil
}

// decodeOrFail consumes resp: on a non-success status it returns a backend
// error carrying the status code, otherwise it decodes the body into out.
// A nil out discards the body.
func decodeOrFail(resp *http.Response, action string, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return internal_errors.FromBackend(action, resp.StatusCode, bodyBytes)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cannot decode %s response: %w", action, err)
	}
	return nil
}

// resolveAsset turns a backend-relative asset path into an absolute URL.
// Already-absolute URLs pass through untouched.
func (c *Client) resolveAsset(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.StaticBase + path
}
