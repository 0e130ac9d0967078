// Package domain holds the display shapes used everywhere above the API
// client. The backend wire shapes live in internal/api; the gateway maps
// between the two.
package domain

import "time"

type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

type PostStatus int

const (
	StatusDraft     PostStatus = 0
	StatusPublished PostStatus = 1
)

type User struct {
	Id          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsAdmin uses a value receiver so templates can call it on ranged users.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Name returns the best display label for the user.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Username != "" {
		return u.Username
	}
	return "Unknown"
}

type Post struct {
	Id         int64
	Title      string
	Content    string
	Excerpt    string
	Category   string
	Status     PostStatus
	Featured   bool
	AuthorId   int64
	AuthorName string
	CreatedAt  time.Time
	Thumbnail  string // resolved against the static asset base, "" if none
	Images     []PostImage
}

type PostImage struct {
	Id  int64
	URL string
}

func (p Post) Published() bool {
	return p.Status == StatusPublished
}

// Trending posts are exactly the featured ones.
func (p Post) Trending() bool {
	return p.Featured
}

type Comment struct {
	Id        int64
	Content   string
	UserId    int64
	PostId    int64
	ParentId  *int64
	CreatedAt time.Time
}

func (c Comment) IsReply() bool {
	return c.ParentId != nil
}

// CanEditPost reports whether actor may edit or delete the given post.
// Advisory only; the backend re-checks on every mutation.
func CanEditPost(actor *User, p *Post) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.Id == p.AuthorId
}

// CanDeleteComment reports whether actor may delete the given comment.
// Advisory only; the backend re-checks on every mutation.
func CanDeleteComment(actor *User, c *Comment) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.Id == c.UserId
}
