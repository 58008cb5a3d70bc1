package adminmodel

import (
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

// Report types.
const (
	ReportTypeUser = "User"
	ReportTypePost = "Post"
)

// Report statuses.
const (
	ReportPending   = "Pending"
	ReportReviewing = "Reviewing"
	ReportResolved  = "Resolved"
	ReportRejected  = "Rejected"
)

// Report is a user complaint about another user or a post.
type Report struct {
	ID             int64     `json:"id"`
	ReportType     string    `json:"reportType"`
	Reason         string    `json:"reason"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	ReporterID     int64     `json:"reporterId"`
	ReportedUserID int64     `json:"reportedUserId"`
	ReportedPostID int64     `json:"reportedPostId"`
	AdminNotes     string    `json:"adminNotes"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NormalizeReport(r gjson.Result) Report {
	return Report{
		ID:             integer(r, 0, "id"),
		ReportType:     str(r, ReportTypePost, "reportType"),
		Reason:         text(r, "", "reason"),
		Description:    text(r, "", "description"),
		Status:         str(r, ReportPending, "status"),
		ReporterID:     integer(r, 0, "reporterId"),
		ReportedUserID: integer(r, 0, "reportedUserId"),
		ReportedPostID: integer(r, 0, "reportedPostId"),
		AdminNotes:     text(r, "", "adminNotes"),
		CreatedAt:      timestamp(r, "createdAt"),
	}
}

func NormalizeReports(items []gjson.Result) []Report {
	return normalizeAll(items, NormalizeReport)
}

// ReportFilter is the client side complaint filter.
type ReportFilter struct {
	Status string
	Type   string
	Search string // reported user id, reported post id or reason
}

func FilterReports(reports []Report, f ReportFilter) []Report {
	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Type != "" && r.ReportType != f.Type {
			continue
		}
		if f.Search != "" && !r.matchesSearch(f.Search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (r Report) matchesSearch(search string) bool {
	if r.ReportedUserID != 0 && containsFold(strconv.FormatInt(r.ReportedUserID, 10), search) {
		return true
	}
	if r.ReportedPostID != 0 && containsFold(strconv.FormatInt(r.ReportedPostID, 10), search) {
		return true
	}
	return containsFold(r.Reason, search)
}

// Target returns the id of the reported user or post.
func (r Report) Target() int64 {
	if r.ReportType == ReportTypeUser {
		return r.ReportedUserID
	}
	return r.ReportedPostID
}

var reportStatusLabels = map[string]string{
	ReportPending:   "Pending",
	ReportReviewing: "Under review",
	ReportResolved:  "Resolved",
	ReportRejected:  "Rejected",
}

func ReportStatusLabel(status string) string {
	if l, ok := reportStatusLabels[status]; ok {
		return l
	}
	return status
}

// ReportUpdate is the body of a complaint update.
type ReportUpdate struct {
	Status     string `json:"status"`
	AdminNotes string `json:"adminNotes"`
}

// ReportsOverview is the summary shown on the reports page.
type ReportsOverview struct {
	TotalUsers    int        `json:"totalUsers"`
	TotalPosts    int        `json:"totalPosts"`
	TotalFeedback int        `json:"totalFeedback"`
	Categories    []Category `json:"categories"`
	TopUsers      []User     `json:"topUsers"`
}
