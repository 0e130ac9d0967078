package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/blogportal-dev/blogportal/internal/api"
	"github.com/blogportal-dev/blogportal/internal/domain"
)

func toComment(c api.CommentResponse) domain.Comment {
	return domain.Comment{
		Id:        c.Id,
		Content:   c.Content,
		UserId:    c.UserId,
		PostId:    c.PostId,
		ParentId:  c.ParentId,
		CreatedAt: c.CreatedAt,
	}
}

func (c *Client) CreateComment(r *http.Request, data api.CommentRequest) (domain.Comment, error) {
	if err := checkRequest(data); err != nil {
		return domain.Comment{}, err
	}
	jsonBody, err := json.Marshal(data)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to marshal comment data: %w", err)
	}

	resp, err := c.do(r, http.MethodPost, "/comments/create", bytes.NewBuffer(jsonBody))
	if err != nil {
		return domain.Comment{}, err
	}

	var created api.CommentResponse
	if err := decodeOrFail(resp, "post comment", &created); err != nil {
		return domain.Comment{}, err
	}
	return toComment(created), nil
}

// GetCommentsByPost returns the flat thread in backend order. Nesting is
// carried only as parentId data; grouping happens in the comments package.
func (c *Client) GetCommentsByPost(r *http.Request, postId int64) ([]domain.Comment, error) {
	resp, err := c.do(r, http.MethodGet, fmt.Sprintf("/comments/post/%d", postId), nil)
	if err != nil {
		return nil, err
	}

	var raw []api.CommentResponse
	if err := decodeOrFail(resp, "load comments", &raw); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, len(raw))
	for i, cm := range raw {
		comments[i] = toComment(cm)
	}
	return comments, nil
}

func (c *Client) GetComment(r *http.Request, id int64) (domain.Comment, error) {
	resp, err := c.do(r, http.MethodGet, fmt.Sprintf("/comments/%d", id), nil)
	if err != nil {
		return domain.Comment{}, err
	}

	var cm api.CommentResponse
	if err := decodeOrFail(resp, "load comment", &cm); err != nil {
		return domain.Comment{}, err
	}
	return toComment(cm), nil
}

func (c *Client) DeleteComment(r *http.Request, id int64) error {
	resp, err := c.do(r, http.MethodDelete, fmt.Sprintf("/comments/delete/%d", id), nil)
	if err != nil {
		return err
	}
	return decodeOrFail(resp, "delete comment", nil)
}
