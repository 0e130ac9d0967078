// Package api defines the wire DTOs of the blog backend. Field names follow
// the backend's JSON exactly (postId, userId, thumbnailUrl); translation to
// display shapes happens in the apiclient.
package api

import (
	"bytes"
	"fmt"
	"time"
)

// Flag is a boolean that the backend serializes inconsistently: sometimes as
// true/false, sometimes as 1/0. Normalized once here, at the wire boundary.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1":
		*f = true
	case "false", "0", "null":
		*f = false
	default:
		return fmt.Errorf("cannot unmarshal %q into boolean flag", data)
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserRequest struct {
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	Role         *int   `json:"role,omitempty"`
}

type CreatePostRequest struct {
	AuthorId int64  `json:"authorId" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Status   int    `json:"status"`
	Category string `json:"category,omitempty"`
	Featured bool   `json:"featured,omitempty"`
}

type UpdatePostRequest struct {
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	Status   *int   `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
	Featured *bool  `json:"featured,omitempty"`
}

type CommentRequest struct {
	PostId   int64  `json:"postId" validate:"required"`
	UserId   int64  `json:"userId" validate:"required"`
	ParentId *int64 `json:"parentId,omitempty"`
	Content  string `json:"content" validate:"required"`
}

// Response DTOs

type LoginResponse struct {
	Token       string `json:"token"`
	UserId      int64  `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        int    `json:"role"`
}

type UserResponse struct {
	UserId      int64     `json:"userId"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        int       `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PostImageResponse struct {
	Id       int64  `json:"id"`
	ImageURL string `json:"imageUrl"`
}

type PostResponse struct {
	PostId       int64               `json:"postId"`
	AuthorId     int64               `json:"authorId"`
	Title        string              `json:"title"`
	Content      string              `json:"content"`
	Excerpt      string              `json:"excerpt"`
	Category     string              `json:"category"`
	Status       int                 `json:"status"`
	Featured     Flag                `json:"featured"`
	ThumbnailURL string              `json:"thumbnailUrl"`
	CreatedAt    time.Time           `json:"createdAt"`
	PublishedAt  *time.Time          `json:"publishedAt"`
	Images       []PostImageResponse `json:"images"`
}

type CommentResponse struct {
	Id        int64     `json:"id"`
	PostId    int64     `json:"postId"`
	UserId    int64     `json:"userId"`
	ParentId  *int64    `json:"parentId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
