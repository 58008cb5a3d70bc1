// Package adminmodel holds the canonical records of the console and the normalization that
// produces them from backend JSON. The backend mixes lowerCamel and UpperCamel field names and
// omits fields freely; every reader here tries lowerCamel, then UpperCamel, then a default.
package adminmodel

import (
	"html"
	"strings"
	"time"

	"github.com/jrsteele09/go-admin-console/internal/utils"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/gjson"
)

var textPolicy = bluemonday.StrictPolicy()

// upperPath upper-cases the first letter of every path segment ("user.name" -> "User.Name").
func upperPath(path string) string {
	parts := strings.Split(path, ".")
	for i, p := range parts {
		parts[i] = utils.UpperFirst(p)
	}
	return strings.Join(parts, ".")
}

// field returns the value at path in either casing. Null counts as absent.
func field(r gjson.Result, path string) gjson.Result {
	if v := r.Get(path); v.Exists() && v.Type != gjson.Null {
		return v
	}
	if v := r.Get(upperPath(path)); v.Exists() && v.Type != gjson.Null {
		return v
	}
	return gjson.Result{}
}

// both returns the values at path in lowerCamel then UpperCamel casing.
func both(r gjson.Result, path string) [2]gjson.Result {
	return [2]gjson.Result{r.Get(path), r.Get(upperPath(path))}
}

// str returns the first non-empty string among paths, or def. An empty lowerCamel value falls
// through to the UpperCamel one.
func str(r gjson.Result, def string, paths ...string) string {
	for _, p := range paths {
		for _, v := range both(r, p) {
			if s := v.String(); s != "" {
				return s
			}
		}
	}
	return def
}

// text is str with markup stripped, for free text typed by end users.
func text(r gjson.Result, def string, paths ...string) string {
	s := str(r, "", paths...)
	if s == "" {
		return def
	}
	if cleaned := CleanText(s); cleaned != "" {
		return cleaned
	}
	return def
}

// CleanText strips markup from s and decodes entities.
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// integer returns the first non-zero number among paths, or def.
func integer(r gjson.Result, def int64, paths ...string) int64 {
	for _, p := range paths {
		for _, v := range both(r, p) {
			if n := v.Int(); n != 0 {
				return n
			}
		}
	}
	return def
}

func number(r gjson.Result, def float64, paths ...string) float64 {
	for _, p := range paths {
		for _, v := range both(r, p) {
			if n := v.Float(); n != 0 {
				return n
			}
		}
	}
	return def
}

// boolean returns the first present value among paths, or def. Unlike the other readers an
// explicit false is kept.
func boolean(r gjson.Result, def bool, paths ...string) bool {
	for _, p := range paths {
		if v := field(r, p); v.Exists() {
			return v.Bool()
		}
	}
	return def
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// timestamp parses the first readable time among paths. Times without a zone are UTC.
// Absent or unreadable times are zero.
func timestamp(r gjson.Result, paths ...string) time.Time {
	for _, p := range paths {
		for _, v := range both(r, p) {
			if t, ok := ParseTime(v.String()); ok {
				return t
			}
		}
	}
	return time.Time{}
}

// ParseTime reads the time formats the backend emits.
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeAll maps each item through fn.
func normalizeAll[T any](items []gjson.Result, fn func(gjson.Result) T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// containsFold reports whether substr occurs in s ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
