package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/blogportal-dev/blogportal/internal/api"
	"github.com/blogportal-dev/blogportal/internal/domain"
)

func toUser(u api.UserResponse) domain.User {
	return domain.User{
		Id:          u.UserId,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        domain.Role(u.Role),
		CreatedAt:   u.CreatedAt,
	}
}

// CreateUser registers a new account. The password travels in the
// passwordHash field; hashing is the backend's job.
func (c *Client) CreateUser(username, email, password, displayName string) (domain.User, error) {
	body := api.UserRequest{
		Username:     username,
		Email:        email,
		PasswordHash: password,
		DisplayName:  displayName,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to marshal signup data: %w", err)
	}

	resp, err := c.do(nil, http.MethodPost, "/users/create", bytes.NewBuffer(jsonBody))
	if err != nil {
		return domain.User{}, err
	}

	var created api.UserResponse
	if err := decodeOrFail(resp, "create account", &created); err != nil {
		return domain.User{}, err
	}
	return toUser(created), nil
}

func (c *Client) GetUsers(r *http.Request) ([]domain.User, error) {
	resp, err := c.do(r, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}

	var raw []api.UserResponse
	if err := decodeOrFail(resp, "load users", &raw); err != nil {
		return nil, err
	}

	users := make([]domain.User, len(raw))
	for i, u := range raw {
		users[i] = toUser(u)
	}
	return users, nil
}

func (c *Client) GetUser(r *http.Request, id int64) (domain.User, error) {
	resp, err := c.do(r, http.MethodGet, fmt.Sprintf("/users/%d", id), nil)
	if err != nil {
		return domain.User{}, err
	}

	var u api.UserResponse
	if err := decodeOrFail(resp, "load user", &u); err != nil {
		return domain.User{}, err
	}
	return toUser(u), nil
}

// UpdateUser sends a partial update; zero-valued fields are omitted from the
// payload. Returns the backend's view of the user after the update.
func (c *Client) UpdateUser(r *http.Request, id int64, update api.UserRequest) (domain.User, error) {
	if err := checkRequest(update); err != nil {
		return domain.User{}, err
	}
	jsonBody, err := json.Marshal(update)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to marshal user update: %w", err)
	}

	resp, err := c.do(r, http.MethodPut, fmt.Sprintf("/users/update/%d", id), bytes.NewBuffer(jsonBody))
	if err != nil {
		return domain.User{}, err
	}

	var u api.UserResponse
	if err := decodeOrFail(resp, "update user", &u); err != nil {
		return domain.User{}, err
	}
	return toUser(u), nil
}

func (c *Client) DeleteUser(r *http.Request, id int64) error {
	resp, err := c.do(r, http.MethodDelete, fmt.Sprintf("/users/delete/%d", id), nil)
	if err != nil {
		return err
	}
	return decodeOrFail(resp, "delete user", nil)
}
