package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blogportal-dev/blogportal/internal/domain"
)

func TestFilterUsers(t *testing.T) {
	users := []domain.User{
		{Id: 1, Username: "alice", DisplayName: "Alice A", Email: "alice@example.com", Role: domain.RoleAdmin},
		{Id: 2, Username: "bob", DisplayName: "Bobby", Email: "bob@example.com", Role: domain.RoleUser},
		{Id: 3, Username: "carol", DisplayName: "Carol", Email: "carol@other.org", Role: domain.RoleUser},
	}

	tests := []struct {
		name    string
		search  string
		role    string
		wantIds []int64
	}{
		{"everything passes by default", "", All, []int64{1, 2, 3}},
		{"search matches username", "ali", All, []int64{1}},
		{"search matches email domain", "example.com", All, []int64{1, 2}},
		{"search is case-insensitive", "BOBBY", All, []int64{2}},
		{"role admin", "", RoleAdminFilter, []int64{1}},
		{"role user", "", RoleUserFilter, []int64{2, 3}},
		{"search and role combine", "carol", RoleAdminFilter, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterUsers(users, tt.search, tt.role)
			ids := make([]int64, 0, len(got))
			for _, u := range got {
				ids = append(ids, u.Id)
			}
			assert.Equal(t, tt.wantIds, ids)
		})
	}
}

func TestSortUsersById(t *testing.T) {
	users := []domain.User{{Id: 3}, {Id: 1}, {Id: 2}}

	SortUsersById(users, true)
	assert.Equal(t, []int64{1, 2, 3}, []int64{users[0].Id, users[1].Id, users[2].Id})

	SortUsersById(users, false)
	assert.Equal(t, []int64{3, 2, 1}, []int64{users[0].Id, users[1].Id, users[2].Id})
}
