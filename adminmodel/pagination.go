package adminmodel

import "github.com/tidwall/gjson"

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
	TotalCount  int `json:"totalCount"`
}

// NormalizePagination reads a pagination block. A missing block is one page.
func NormalizePagination(r gjson.Result) Pagination {
	p := Pagination{
		CurrentPage: int(integer(r, 1, "currentPage", "page")),
		TotalPages:  int(integer(r, 1, "totalPages")),
		PageSize:    int(integer(r, 0, "pageSize")),
		TotalCount:  int(integer(r, 0, "totalCount", "total")),
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	return p
}

// HasNext reports whether a page follows the current one.
func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

func (p Pagination) HasPrev() bool {
	return p.CurrentPage > 1
}
