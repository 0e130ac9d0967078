package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/blogportal-dev/blogportal/internal/api"
	"github.com/blogportal-dev/blogportal/internal/domain"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (c *Client) toPost(p api.PostResponse) domain.Post {
	category := p.Category
	if category == "" {
		category = "General"
	}
	post := domain.Post{
		Id:        p.PostId,
		Title:     p.Title,
		Content:   p.Content,
		Excerpt:   p.Excerpt,
		Category:  category,
		Status:    domain.PostStatus(p.Status),
		Featured:  bool(p.Featured),
		AuthorId:  p.AuthorId,
		CreatedAt: p.CreatedAt,
		Thumbnail: c.resolveAsset(p.ThumbnailURL),
	}
	for _, img := range p.Images {
		post.Images = append(post.Images, domain.PostImage{Id: img.Id, URL: c.resolveAsset(img.ImageURL)})
	}
	return post
}

func (c *Client) GetPosts(r *http.Request) ([]domain.Post, error) {
	resp, err := c.do(r, http.MethodGet, "/posts", nil)
	if err != nil {
		return nil, err
	}

	var raw []api.PostResponse
	if err := decodeOrFail(resp, "load posts", &raw); err != nil {
		return nil, err
	}

	posts := make([]domain.Post, len(raw))
	for i, p := range raw {
		posts[i] = c.toPost(p)
	}
	return posts, nil
}

func (c *Client) GetPost(r *http.Request, id int64) (domain.Post, error) {
	resp, err := c.do(r, http.MethodGet, fmt.Sprintf("/posts/%d", id), nil)
	if err != nil {
		return domain.Post{}, err
	}

	var p api.PostResponse
	if err := decodeOrFail(resp, "load post", &p); err != nil {
		return domain.Post{}, err
	}
	return c.toPost(p), nil
}

// CreatePost sends the post metadata as a JSON form field plus any uploaded
// files, streamed through a pipe so large attachments never sit in memory.
func (c *Client) CreatePost(r *http.Request, data api.CreatePostRequest, files []*multipart.FileHeader) (domain.Post, error) {
	if err := checkRequest(data); err != nil {
		return domain.Post{}, err
	}

	pipeReader, pipeWriter := io.Pipe()
	writer := multipart.NewWriter(pipeWriter)

	go func() {
		defer pipeWriter.Close()
		defer writer.Close()

		jsonData, err := json.Marshal(data)
		if err != nil {
			pipeWriter.CloseWithError(err)
			return
		}
		if err := writer.WriteField("post", string(jsonData)); err != nil {
			pipeWriter.CloseWithError(err)
			return
		}

		for _, fileHeader := range files {
			file, err := fileHeader.Open()
			if err != nil {
				pipeWriter.CloseWithError(err)
				return
			}

			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition",
				fmt.Sprintf(`form-data; name="files"; filename="%s"`, escapeQuotes(fileHeader.Filename)))
			if contentType := fileHeader.Header.Get("Content-Type"); contentType != "" {
				h.Set("Content-Type", contentType)
			}

			part, err := writer.CreatePart(h)
			if err != nil {
				file.Close()
				pipeWriter.CloseWithError(err)
				return
			}
			if _, err := io.Copy(part, file); err != nil {
				file.Close()
				pipeWriter.CloseWithError(err)
				return
			}
			file.Close()
		}
	}()

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/posts/create", pipeReader)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(r, req)

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return domain.Post{}, fmt.Errorf("backend unavailable: %w", err)
	}

	var created api.PostResponse
	if err := decodeOrFail(resp, "create post", &created); err != nil {
		return domain.Post{}, err
	}
	return c.toPost(created), nil
}

func (c *Client) UpdatePost(r *http.Request, id int64, data api.UpdatePostRequest) (domain.Post, error) {
	jsonBody, err := json.Marshal(data)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to marshal post update: %w", err)
	}

	resp, err := c.do(r, http.MethodPut, fmt.Sprintf("/posts/%d", id), bytes.NewBuffer(jsonBody))
	if err != nil {
		return domain.Post{}, err
	}

	var updated api.PostResponse
	if err := decodeOrFail(resp, "update post", &updated); err != nil {
		return domain.Post{}, err
	}
	return c.toPost(updated), nil
}

func (c *Client) DeletePost(r *http.Request, id int64) error {
	resp, err := c.do(r, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil)
	if err != nil {
		return err
	}
	return decodeOrFail(resp, "delete post", nil)
}
