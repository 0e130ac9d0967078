// Package feed implements the post feed pipeline: join author names, filter,
// sort, paginate. Every step is pure and recomputed from its inputs; there is
// no cached state to invalidate.
package feed

import (
	"sort"
	"strings"

	"github.com/blogportal-dev/blogportal/internal/domain"
)

// Sentinel filter value that disables a predicate.
const All = "all"

const (
	StatusPublished = "published"
	StatusDraft     = "draft"

	FeaturedOnly = "featured"
	FeaturedNone = "normal"
)

// Filters holds the active predicates. A post passes only if it matches all
// of them; the "all" sentinel (or an empty search) disables a predicate.
type Filters struct {
	Search   string
	Category string
	Status   string // "all" | "published" | "draft"
	Featured string // "all" | "featured" | "normal"
}

// Order is the sort applied after filtering.
type Order int

const (
	OrderNone   Order = iota // keep backend order (main feed)
	OrderIdAsc               // directory-style id sort
	OrderIdDesc
)

// Page is one page of the filtered feed.
type Page struct {
	Items      []domain.Post
	Total      int // size of the whole filtered set
	TotalPages int
	Number     int // the page actually shown, after clamping
}

// Build runs the full pipeline over an already-normalized post set.
// users is the one-time directory fetch used to resolve author names.
func Build(posts []domain.Post, users []domain.User, filters Filters, order Order, page, size int) Page {
	joined := JoinAuthors(posts, users)
	filtered := Apply(joined, filters)
	Sort(filtered, order)
	return Paginate(filtered, page, size)
}

// JoinAuthors resolves each post's authorId to a display name. Authors
// missing from the directory read as "Unknown". The input is not mutated.
func JoinAuthors(posts []domain.Post, users []domain.User) []domain.Post {
	names := make(map[int64]string, len(users))
	for i := range users {
		names[users[i].Id] = users[i].Name()
	}

	out := make([]domain.Post, len(posts))
	copy(out, posts)
	for i := range out {
		if name, ok := names[out[i].AuthorId]; ok {
			out[i].AuthorName = name
		} else {
			out[i].AuthorName = "Unknown"
		}
	}
	return out
}

// Apply returns the posts passing every active predicate, in input order.
func Apply(posts []domain.Post, f Filters) []domain.Post {
	q := strings.ToLower(strings.TrimSpace(f.Search))

	filtered := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) {
			continue
		}
		if !matchesCategory(p, f.Category) {
			continue
		}
		if !matchesStatus(p, f.Status) {
			continue
		}
		if !matchesFeatured(p, f.Featured) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesCategory(p domain.Post, category string) bool {
	if category == "" || category == All {
		return true
	}
	return strings.EqualFold(p.Category, category)
}

func matchesStatus(p domain.Post, status string) bool {
	switch status {
	case StatusPublished:
		return p.Published()
	case StatusDraft:
		return !p.Published()
	default:
		return true
	}
}

func matchesFeatured(p domain.Post, featured string) bool {
	switch featured {
	case FeaturedOnly:
		return p.Featured
	case FeaturedNone:
		return !p.Featured
	default:
		return true
	}
}

// Sort orders posts by numeric id in place. OrderNone keeps backend order.
func Sort(posts []domain.Post, order Order) {
	switch order {
	case OrderIdAsc:
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].Id < posts[j].Id })
	case OrderIdDesc:
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].Id > posts[j].Id })
	}
}

// Paginate slices one page out of the filtered set. An empty set still has
// one (empty) page. A page below 1 clamps to 1; a page past the end resets
// to 1, which is what happens when a filter shrinks the set under the
// current page.
func Paginate(posts []domain.Post, page, size int) Page {
	totalPages := (len(posts) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}

	return Page{
		Items:      posts[start:end],
		Total:      len(posts),
		TotalPages: totalPages,
		Number:     page,
	}
}

// Categories derives the selectable category list from the loaded posts:
// the distinct categories present, in first-seen order, behind the "all"
// sentinel.
func Categories(posts []domain.Post) []string {
	seen := make(map[string]struct{})
	categories := []string{All}
	for _, p := range posts {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

// Trending returns the featured subset in input order, for the home rail.
func Trending(posts []domain.Post) []domain.Post {
	var trending []domain.Post
	for _, p := range posts {
		if p.Trending() {
			trending = append(trending, p)
		}
	}
	return trending
}

// BannerImages returns up to three thumbnails from the trending set.
func BannerImages(posts []domain.Post) []string {
	var images []string
	for _, p := range Trending(posts) {
		if p.Thumbnail == "" {
			continue
		}
		images = append(images, p.Thumbnail)
		if len(images) == 3 {
			break
		}
	}
	return images
}

// WindowAround returns the page numbers to render in the pager: the current
// page plus up to two neighbors each side, clamped to valid pages.
func WindowAround(page, totalPages int) []int {
	start := page - 2
	if start < 1 {
		start = 1
	}
	end := page + 2
	if end > totalPages {
		end = totalPages
	}
	window := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		window = append(window, i)
	}
	return window
}
