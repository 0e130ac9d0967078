// Package comments manages the comment thread of a post: loading the flat
// list, composing replies, create/delete, and grouping for display.
//
// After every mutation the full thread is re-fetched instead of patching
// local state. That costs a round trip but the displayed list always matches
// server truth; per-post comment volume is small enough for this to be fine.
package comments

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/blogportal-dev/blogportal/internal/api"
	"github.com/blogportal-dev/blogportal/internal/apiclient"
	"github.com/blogportal-dev/blogportal/internal/domain"
	internal_errors "github.com/blogportal-dev/blogportal/internal/errors"
)

var (
	ErrEmptyContent = &internal_errors.ErrorWithStatusCode{Message: "comment cannot be empty", StatusCode: http.StatusBadRequest}
	ErrNotAllowed   = &internal_errors.ErrorWithStatusCode{Message: "you can only delete your own comments", StatusCode: http.StatusForbidden}
)

type Manager struct {
	api *apiclient.Client
}

func NewManager(client *apiclient.Client) *Manager {
	return &Manager{api: client}
}

// Load fetches the flat thread in backend order.
func (m *Manager) Load(r *http.Request, postId int64) ([]domain.Comment, error) {
	return m.api.GetCommentsByPost(r, postId)
}

// Submit creates a comment (optionally a reply) and returns the re-fetched
// thread. Blank content is rejected before any network call.
func (m *Manager) Submit(r *http.Request, postId, userId int64, content string, parentId *int64) ([]domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	_, err := m.api.CreateComment(r, api.CommentRequest{
		PostId:   postId,
		UserId:   userId,
		ParentId: parentId,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	return m.Load(r, postId)
}

// Remove deletes a comment after the advisory ownership check and returns
// the re-fetched thread. The backend enforces the real authorization.
func (m *Manager) Remove(r *http.Request, actor *domain.User, comment domain.Comment) ([]domain.Comment, error) {
	if !domain.CanDeleteComment(actor, &comment) {
		return nil, ErrNotAllowed
	}

	if err := m.api.DeleteComment(r, comment.Id); err != nil {
		return nil, err
	}

	return m.Load(r, comment.PostId)
}

// Reply is the compose-box state seeded by a "reply" action. Clearing the
// target drops ParentId without touching whatever the user already typed.
type Reply struct {
	ParentId int64
	Prefill  string
}

// ReplySeed builds the compose state for replying to the given comment:
// parentId set and a mention-style prefix referencing the parent's author.
func ReplySeed(parent domain.Comment) Reply {
	return Reply{
		ParentId: parent.Id,
		Prefill:  fmt.Sprintf("@User%d ", parent.UserId),
	}
}

// Node is one top-level comment with its directly nested replies. Deeper
// descendants flatten into the same reply list; one level is rendered.
type Node struct {
	Comment domain.Comment
	Replies []domain.Comment
}

// Group builds the one-level display tree with an explicit indexing pass
// over parentId. Array order is never used to infer nesting. Replies whose
// parent is missing from the thread surface as top-level rather than being
// dropped.
func Group(thread []domain.Comment) []Node {
	topLevel := make(map[int64]int) // comment id -> index in nodes
	var nodes []Node
	for _, c := range thread {
		if !c.IsReply() {
			topLevel[c.Id] = len(nodes)
			nodes = append(nodes, Node{Comment: c})
		}
	}

	// Walk replies up to their top-level ancestor.
	parentOf := make(map[int64]*int64, len(thread))
	for _, c := range thread {
		parentOf[c.Id] = c.ParentId
	}

	for _, c := range thread {
		if !c.IsReply() {
			continue
		}
		if idx, ok := topLevel[rootOf(c.Id, parentOf)]; ok {
			nodes[idx].Replies = append(nodes[idx].Replies, c)
		} else {
			topLevel[c.Id] = len(nodes)
			nodes = append(nodes, Node{Comment: c})
		}
	}
	return nodes
}

// rootOf follows parent links to the topmost known ancestor. The backend is
// trusted not to produce cycles, but a hop limit bounds the walk anyway.
func rootOf(id int64, parentOf map[int64]*int64) int64 {
	current := id
	for hops := 0; hops < len(parentOf)+1; hops++ {
		parent, ok := parentOf[current]
		if !ok || parent == nil {
			return current
		}
		current = *parent
	}
	return current
}
