package adminmodel

import (
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const DefaultUserName = "Unknown user"

type User struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phoneNumber"`
	ProfilePictureURL string    `json:"profilePictureUrl"`
	IsActive          bool      `json:"isActive"`
	PostCount         int       `json:"postCount"`
	CreatedAt         time.Time `json:"createdAt"`
}

func NormalizeUser(r gjson.Result) User {
	return User{
		ID:                integer(r, 0, "id"),
		Name:              str(r, DefaultUserName, "name", "fullName", "userName"),
		Email:             str(r, "", "email"),
		PhoneNumber:       str(r, "", "phoneNumber"),
		ProfilePictureURL: str(r, "", "profilePictureUrl"),
		IsActive:          boolean(r, false, "isActive"),
		PostCount:         int(integer(r, 0, "postCount")),
		CreatedAt:         timestamp(r, "createdAt"),
	}
}

func NormalizeUsers(items []gjson.Result) []User {
	return normalizeAll(items, NormalizeUser)
}

type UserActivityStats struct {
	TotalPosts     int `json:"totalPosts"`
	ActivePosts    int `json:"activePosts"`
	FavoritesCount int `json:"favoritesCount"`
}

type UserPost struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// UserDetail is the single user view with statistics and recent posts.
type UserDetail struct {
	User
	Stats UserActivityStats `json:"stats"`
	Posts []UserPost        `json:"posts"`
}

func NormalizeUserDetail(r gjson.Result) UserDetail {
	d := UserDetail{
		User: NormalizeUser(r),
		Stats: UserActivityStats{
			TotalPosts:     int(integer(r, 0, "stats.totalPosts")),
			ActivePosts:    int(integer(r, 0, "stats.activePosts")),
			FavoritesCount: int(integer(r, 0, "stats.favoritesCount")),
		},
		Posts: []UserPost{},
	}
	field(r, "posts").ForEach(func(_, p gjson.Result) bool {
		d.Posts = append(d.Posts, UserPost{
			ID:        integer(p, 0, "id"),
			Title:     text(p, "", "title"),
			Status:    ParsePostStatus(field(p, "status")),
			CreatedAt: timestamp(p, "createdAt"),
		})
		return true
	})
	return d
}

type UserStats struct {
	TotalUsers        int `json:"totalUsers"`
	ActiveUsers       int `json:"activeUsers"`
	NewUsersThisMonth int `json:"newUsersThisMonth"`
	UsersWithPosts    int `json:"usersWithPosts"`
}

func NormalizeUserStats(r gjson.Result) UserStats {
	return UserStats{
		TotalUsers:        int(integer(r, 0, "totalUsers")),
		ActiveUsers:       int(integer(r, 0, "activeUsers")),
		NewUsersThisMonth: int(integer(r, 0, "newUsersThisMonth")),
		UsersWithPosts:    int(integer(r, 0, "usersWithPosts")),
	}
}

type UserSort string

const (
	UserSortNewest UserSort = "newest"
	UserSortOldest UserSort = "oldest"
	UserSortName   UserSort = "name"
	UserSortPosts  UserSort = "posts"
)

// SortUsers orders users in place.
func SortUsers(users []User, by UserSort) {
	switch by {
	case UserSortNewest:
		sort.SliceStable(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	case UserSortOldest:
		sort.SliceStable(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	case UserSortName:
		sort.SliceStable(users, func(i, j int) bool { return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name) })
	case UserSortPosts:
		sort.SliceStable(users, func(i, j int) bool { return users[i].PostCount > users[j].PostCount })
	}
}
