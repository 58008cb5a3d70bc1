package adminmodel

import (
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// PostStatus is the display classification of a post.
type PostStatus string

const (
	PostActive   PostStatus = "active"
	PostPassive  PostStatus = "passive"
	PostArchived PostStatus = "archived"
	PostUnknown  PostStatus = "unknown"
)

// ParsePostStatus maps the backend status. Numeric codes are authoritative (1 passive,
// 2 active, 3 archived). The backend's status names are inverted relative to what the console
// shows: "Inactive" is displayed as active and "Active" as passive.
func ParsePostStatus(v gjson.Result) PostStatus {
	switch v.Type {
	case gjson.Number:
		switch v.Int() {
		case 1:
			return PostPassive
		case 2:
			return PostActive
		case 3:
			return PostArchived
		}
	case gjson.String:
		switch v.String() {
		case "1", "Active":
			return PostPassive
		case "2", "Inactive":
			return PostActive
		case "3", "Archived":
			return PostArchived
		}
	}
	return PostUnknown
}

type Post struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	Status       PostStatus `json:"status"`
	RawStatus    string     `json:"rawStatus"`
	CategoryID   int64      `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	UserName     string     `json:"userName"`
	City         string     `json:"city"`
	District     string     `json:"district"`
	PhoneNumber  string     `json:"phoneNumber"`
	ImageURLs    []string   `json:"imageUrls"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func NormalizePost(r gjson.Result) Post {
	p := Post{
		ID:           integer(r, 0, "id"),
		Title:        text(r, "", "title"),
		Description:  text(r, "", "description"),
		Price:        number(r, 0, "price"),
		Status:       ParsePostStatus(field(r, "status")),
		RawStatus:    field(r, "status").String(),
		CategoryID:   integer(r, 0, "category.id", "categoryId"),
		CategoryName: str(r, "", "category.name", "categoryName"),
		UserName:     str(r, "", "user.fullName", "userName"),
		City:         str(r, "", "location.city", "city"),
		District:     str(r, "", "location.district", "district"),
		PhoneNumber:  str(r, "", "phoneNumber"),
		CreatedAt:    timestamp(r, "createdAt"),
	}
	field(r, "images").ForEach(func(_, img gjson.Result) bool {
		if u := str(img, "", "url"); u != "" {
			p.ImageURLs = append(p.ImageURLs, u)
		}
		return true
	})
	return p
}

func NormalizePosts(items []gjson.Result) []Post {
	return normalizeAll(items, NormalizePost)
}

// PostSort orders the post list.
type PostSort string

const (
	PostSortNewest    PostSort = "newest"
	PostSortOldest    PostSort = "oldest"
	PostSortPriceDesc PostSort = "price-desc"
	PostSortPriceAsc  PostSort = "price-asc"
	PostSortTitle     PostSort = "title"
)

// PostFilter is the client side post filter. Zero fields are skipped; set fields combine by AND.
type PostFilter struct {
	Search     string     // title, description, user or city
	Status     PostStatus // empty for all
	CategoryID int64
	Date       time.Time // same calendar day as CreatedAt
	Sort       PostSort
	Location   *time.Location
}

func (f PostFilter) matches(p Post) bool {
	if f.Search != "" {
		if !containsFold(p.Title, f.Search) && !containsFold(p.Description, f.Search) &&
			!containsFold(p.UserName, f.Search) && !containsFold(p.City, f.Search) {
			return false
		}
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
		return false
	}
	if !f.Date.IsZero() && !SameDay(p.CreatedAt, f.Date, f.location()) {
		return false
	}
	return true
}

func (f PostFilter) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

// FilterPosts returns the matching posts in the requested order. The input is not modified.
func FilterPosts(posts []Post, f PostFilter) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if f.matches(p) {
			out = append(out, p)
		}
	}

	switch f.Sort {
	case PostSortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case PostSortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case PostSortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case PostSortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case PostSortTitle:
		sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title) })
	}
	return out
}

type PostStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Passive      int `json:"passive"`
	CreatedToday int `json:"createdToday"`
}

// ComputePostStats counts the loaded posts. today decides what "created today" means.
func ComputePostStats(posts []Post, today time.Time) PostStats {
	s := PostStats{Total: len(posts)}
	for _, p := range posts {
		switch p.Status {
		case PostActive:
			s.Active++
		case PostPassive:
			s.Passive++
		}
		if SameDay(p.CreatedAt, today, today.Location()) {
			s.CreatedToday++
		}
	}
	return s
}
