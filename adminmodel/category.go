package adminmodel

import "github.com/tidwall/gjson"

const (
	DefaultCategoryName  = "Unknown"
	DefaultCategoryIcon  = "th"
	DefaultCategoryColor = "#667eea"
)

type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	IsActive  bool   `json:"isActive"`
	PostCount int    `json:"postCount"`
}

// CategoryInput is the create/update body.
type CategoryInput struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	IsActive bool   `json:"isActive"`
}

func NormalizeCategory(r gjson.Result) Category {
	return Category{
		ID:        integer(r, 0, "id"),
		Name:      str(r, DefaultCategoryName, "name"),
		Icon:      str(r, DefaultCategoryIcon, "icon"),
		Color:     str(r, DefaultCategoryColor, "color"),
		IsActive:  boolean(r, true, "isActive"),
		PostCount: int(integer(r, 0, "postCount")),
	}
}

func NormalizeCategories(items []gjson.Result) []Category {
	return normalizeAll(items, NormalizeCategory)
}

// CategoryStatusFilter selects categories by state.
type CategoryStatusFilter string

const (
	CategoryFilterAll      CategoryStatusFilter = "all"
	CategoryFilterActive   CategoryStatusFilter = "active"
	CategoryFilterInactive CategoryStatusFilter = "inactive"
)

// FilterCategories applies the status filter and a case-insensitive name search. Empty values
// are skipped.
func FilterCategories(categories []Category, status CategoryStatusFilter, search string) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		switch status {
		case CategoryFilterActive:
			if !c.IsActive {
				continue
			}
		case CategoryFilterInactive:
			if c.IsActive {
				continue
			}
		}
		if search != "" && !containsFold(c.Name, search) {
			continue
		}
		out = append(out, c)
	}
	return out
}
