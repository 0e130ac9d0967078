package feed

import (
	"sort"
	"strings"

	"github.com/blogportal-dev/blogportal/internal/domain"
)

const (
	RoleAdminFilter = "admin"
	RoleUserFilter  = "user"
)

// FilterUsers implements the directory view filter: a case-insensitive
// substring match across username, display name and email, plus an optional
// role filter ("all" passes everyone).
func FilterUsers(users []domain.User, search, role string) []domain.User {
	q := strings.ToLower(strings.TrimSpace(search))

	filtered := make([]domain.User, 0, len(users))
	for _, u := range users {
		haystack := strings.ToLower(u.Username + u.DisplayName + u.Email)
		if q != "" && !strings.Contains(haystack, q) {
			continue
		}
		switch role {
		case RoleAdminFilter:
			if u.Role != domain.RoleAdmin {
				continue
			}
		case RoleUserFilter:
			if u.Role != domain.RoleUser {
				continue
			}
		}
		filtered = append(filtered, u)
	}
	return filtered
}

// SortUsersById orders the directory by numeric id; the view toggles the
// direction on demand.
func SortUsersById(users []domain.User, asc bool) {
	sort.SliceStable(users, func(i, j int) bool {
		if asc {
			return users[i].Id < users[j].Id
		}
		return users[i].Id > users[j].Id
	})
}
