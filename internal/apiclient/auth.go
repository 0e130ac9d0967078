package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/blogportal-dev/blogportal/internal/api"
	"github.com/blogportal-dev/blogportal/internal/domain"
)

// Login exchanges credentials for a bearer token plus the user's identity
// fields. Any non-success status comes back as a generic failure; the handler
// decides what to tell the user.
func (c *Client) Login(email, password string) (string, *domain.User, error) {
	body := api.LoginRequest{Email: email, Password: password}
	if err := checkRequest(body); err != nil {
		return "", nil, err
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal login data: %w", err)
	}

	resp, err := c.do(nil, http.MethodPost, "/users/login", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", nil, err
	}

	var login api.LoginResponse
	if err := decodeOrFail(resp, "log in", &login); err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Id:          login.UserId,
		Email:       login.Email,
		DisplayName: login.DisplayName,
		Role:        domain.Role(login.Role),
	}
	return login.Token, user, nil
}
