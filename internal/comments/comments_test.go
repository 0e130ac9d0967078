package comments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogportal-dev/blogportal/internal/api"
	"github.com/blogportal-dev/blogportal/internal/apiclient"
	"github.com/blogportal-dev/blogportal/internal/domain"
	"github.com/blogportal-dev/blogportal/internal/session"
)

func ptr(v int64) *int64 { return &v }

// fakeBackend is an in-memory comments service with the backend's routes.
type fakeBackend struct {
	mu      sync.Mutex
	nextId  int64
	byId    map[int64]api.CommentResponse
	ordered []int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextId: 1, byId: make(map[int64]api.CommentResponse)}
}

func (f *fakeBackend) handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/comments/create", func(w http.ResponseWriter, req *http.Request) {
		var body api.CommentRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		created := api.CommentResponse{
			Id: f.nextId, PostId: body.PostId, UserId: body.UserId,
			ParentId: body.ParentId, Content: body.Content,
		}
		f.byId[created.Id] = created
		f.ordered = append(f.ordered, created.Id)
		f.nextId++
		f.mu.Unlock()
		json.NewEncoder(w).Encode(created)
	})
	r.Get("/comments/post/{postId}", func(w http.ResponseWriter, req *http.Request) {
		postId, _ := strconv.ParseInt(chi.URLParam(req, "postId"), 10, 64)
		f.mu.Lock()
		out := []api.CommentResponse{}
		for _, id := range f.ordered {
			if c, ok := f.byId[id]; ok && c.PostId == postId {
				out = append(out, c)
			}
		}
		f.mu.Unlock()
		json.NewEncoder(w).Encode(out)
	})
	r.Delete("/comments/delete/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
		f.mu.Lock()
		delete(f.byId, id)
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func newTestManager(t *testing.T) (*Manager, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)
	return NewManager(apiclient.New(server.URL, server.URL, session.New(false))), backend
}

func pageRequest() *http.Request {
	return httptest.NewRequest("GET", "http://frontend.local/posts/1", nil)
}

func TestLoadIsIdempotent(t *testing.T) {
	m, _ := newTestManager(t)
	r := pageRequest()

	_, err := m.Submit(r, 1, 7, "first", nil)
	require.NoError(t, err)
	_, err = m.Submit(r, 1, 8, "second", nil)
	require.NoError(t, err)

	first, err := m.Load(r, 1)
	require.NoError(t, err)
	second, err := m.Load(r, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestSubmitReconciles(t *testing.T) {
	m, _ := newTestManager(t)
	r := pageRequest()

	thread, err := m.Submit(r, 1, 7, "hello there", nil)
	require.NoError(t, err)

	// The returned thread is the re-fetched server state, and the new
	// comment appears exactly once.
	count := 0
	for _, c := range thread {
		if c.Content == "hello there" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	reloaded, err := m.Load(r, 1)
	require.NoError(t, err)
	assert.Equal(t, thread, reloaded)
}

func TestSubmitReply(t *testing.T) {
	m, _ := newTestManager(t)
	r := pageRequest()

	thread, err := m.Submit(r, 1, 7, "parent", nil)
	require.NoError(t, err)
	parentId := thread[0].Id

	thread, err = m.Submit(r, 1, 9, "@User7 agreed", &parentId)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	require.NotNil(t, thread[1].ParentId)
	assert.Equal(t, parentId, *thread[1].ParentId)
}

func TestSubmitRejectsBlankContent(t *testing.T) {
	m, backend := newTestManager(t)
	r := pageRequest()

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := m.Submit(r, 1, 7, content, nil)
		assert.ErrorIs(t, err, ErrEmptyContent, "content %q", content)
	}
	assert.Empty(t, backend.ordered, "no network call may be issued")
}

func TestRemove(t *testing.T) {
	m, _ := newTestManager(t)
	r := pageRequest()

	thread, err := m.Submit(r, 1, 7, "mine", nil)
	require.NoError(t, err)
	comment := thread[0]

	author := &domain.User{Id: 7}
	admin := &domain.User{Id: 99, Role: domain.RoleAdmin}
	stranger := &domain.User{Id: 8}

	_, err = m.Remove(r, stranger, comment)
	assert.ErrorIs(t, err, ErrNotAllowed)
	_, err = m.Remove(r, nil, comment)
	assert.ErrorIs(t, err, ErrNotAllowed)

	// The comment is still there: rejected locally, nothing was issued.
	thread, err = m.Load(r, 1)
	require.NoError(t, err)
	require.Len(t, thread, 1)

	got, err := m.Remove(r, author, comment)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Admin may delete someone else's comment.
	thread, err = m.Submit(r, 1, 7, "other", nil)
	require.NoError(t, err)
	got, err = m.Remove(r, admin, thread[0])
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReplySeed(t *testing.T) {
	seed := ReplySeed(domain.Comment{Id: 42, UserId: 7, PostId: 1, Content: "parent"})
	assert.Equal(t, int64(42), seed.ParentId)
	assert.Equal(t, "@User7 ", seed.Prefill)
	assert.True(t, strings.HasPrefix(seed.Prefill, "@User7"))
}

func TestGroup(t *testing.T) {
	thread := []domain.Comment{
		{Id: 1, Content: "top one"},
		{Id: 2, Content: "top two"},
		{Id: 3, ParentId: ptr(1), Content: "reply to one"},
		{Id: 4, ParentId: ptr(2), Content: "reply to two"},
		{Id: 5, ParentId: ptr(3), Content: "nested reply flattens under one"},
	}

	nodes := Group(thread)
	require.Len(t, nodes, 2)

	assert.Equal(t, int64(1), nodes[0].Comment.Id)
	require.Len(t, nodes[0].Replies, 2)
	assert.Equal(t, int64(3), nodes[0].Replies[0].Id)
	assert.Equal(t, int64(5), nodes[0].Replies[1].Id)

	assert.Equal(t, int64(2), nodes[1].Comment.Id)
	require.Len(t, nodes[1].Replies, 1)
}

func TestGroup_IgnoresArrayOrder(t *testing.T) {
	// Replies arriving before their parent still group correctly.
	thread := []domain.Comment{
		{Id: 3, ParentId: ptr(1)},
		{Id: 1},
	}

	nodes := Group(thread)
	require.Len(t, nodes, 1)
	assert.Equal(t, int64(1), nodes[0].Comment.Id)
	require.Len(t, nodes[0].Replies, 1)
	assert.Equal(t, int64(3), nodes[0].Replies[0].Id)
}

func TestGroup_OrphanReplySurfacesTopLevel(t *testing.T) {
	thread := []domain.Comment{
		{Id: 1},
		{Id: 9, ParentId: ptr(404)},
	}

	nodes := Group(thread)
	require.Len(t, nodes, 2)
	assert.Equal(t, int64(9), nodes[1].Comment.Id)
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil))
}
