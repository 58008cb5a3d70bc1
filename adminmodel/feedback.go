package adminmodel

import (
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultFeedbackType    = "general"
	DefaultFeedbackMessage = "No message"
)

type Feedback struct {
	ID            int64     `json:"id"`
	UserName      string    `json:"userName"`
	UserEmail     string    `json:"userEmail"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"createdAt"`
	IsResolved    bool      `json:"isResolved"`
	AdminResponse string    `json:"adminResponse,omitempty"`
}

// NormalizeFeedback reads a feedback item. A missing creation time stays zero so that reloading
// the same payload always yields the same record.
func NormalizeFeedback(r gjson.Result) Feedback {
	return Feedback{
		ID:            integer(r, 0, "id"),
		UserName:      str(r, DefaultUserName, "user.name", "userName"),
		UserEmail:     str(r, "", "user.email", "userEmail"),
		Type:          str(r, DefaultFeedbackType, "type"),
		Message:       text(r, DefaultFeedbackMessage, "message"),
		CreatedAt:     timestamp(r, "createdAt"),
		IsResolved:    boolean(r, false, "isResolved"),
		AdminResponse: text(r, "", "adminResponse"),
	}
}

func NormalizeFeedbacks(items []gjson.Result) []Feedback {
	return normalizeAll(items, NormalizeFeedback)
}

type FeedbackStats struct {
	TotalCount    int `json:"totalCount"`
	PendingCount  int `json:"pendingCount"`
	ResolvedCount int `json:"resolvedCount"`
	TodayCount    int `json:"todayCount"`
}

func NormalizeFeedbackStats(r gjson.Result) FeedbackStats {
	return FeedbackStats{
		TotalCount:    int(integer(r, 0, "totalCount")),
		PendingCount:  int(integer(r, 0, "pendingCount")),
		ResolvedCount: int(integer(r, 0, "resolvedCount")),
		TodayCount:    int(integer(r, 0, "todayCount")),
	}
}

// ComputeFeedbackStats counts a local feedback list, used when the backend is not available.
func ComputeFeedbackStats(items []Feedback, today time.Time) FeedbackStats {
	s := FeedbackStats{TotalCount: len(items)}
	for _, f := range items {
		if f.IsResolved {
			s.ResolvedCount++
		} else {
			s.PendingCount++
		}
		if SameDay(f.CreatedAt, today, today.Location()) {
			s.TodayCount++
		}
	}
	return s
}

// Feedback status filter values.
const (
	FeedbackPending  = "pending"
	FeedbackResolved = "resolved"
)

// FeedbackFilter doubles as the query of the list endpoint and the local filter in demo mode.
type FeedbackFilter struct {
	Status   string // pending, resolved or empty
	Type     string
	Search   string // user name or email
	Date     time.Time
	Location *time.Location
}

// DateParam formats Date for the list endpoint.
func (f FeedbackFilter) DateParam() string {
	if f.Date.IsZero() {
		return ""
	}
	return f.Date.Format("2006-01-02")
}

// FilterFeedback applies f locally.
func FilterFeedback(items []Feedback, f FeedbackFilter) []Feedback {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	out := make([]Feedback, 0, len(items))
	for _, item := range items {
		if f.Status != "" && item.IsResolved != (f.Status == FeedbackResolved) {
			continue
		}
		if f.Type != "" && item.Type != f.Type {
			continue
		}
		if f.Search != "" && !containsFold(item.UserName, f.Search) && !containsFold(item.UserEmail, f.Search) {
			continue
		}
		if !f.Date.IsZero() && !SameDay(item.CreatedAt, f.Date, loc) {
			continue
		}
		out = append(out, item)
	}
	return out
}

var feedbackTypeLabels = map[string]string{
	"bug":        "Bug report",
	"suggestion": "Suggestion",
	"complaint":  "Complaint",
	"feature":    "Feature request",
	"general":    "General feedback",
}

// FeedbackTypeLabel returns the display name of a feedback type.
func FeedbackTypeLabel(t string) string {
	if l, ok := feedbackTypeLabels[t]; ok {
		return l
	}
	return t
}

// DemoFeedback returns the sample feedback shown when the backend cannot be reached. Ages are
// relative to now.
func DemoFeedback(now time.Time) []Feedback {
	day := 24 * time.Hour
	return []Feedback{
		{
			ID: 1, UserName: "Alex Morgan", UserEmail: "alex@example.com", Type: "bug",
			Message:   "I keep getting an error while logging in. The page does not refresh and the action never completes.",
			CreatedAt: now,
		},
		{
			ID: 2, UserName: "Sam Carter", UserEmail: "sam@example.com", Type: "feature",
			Message:       "Could the mobile app get a dark theme? It is hard on the eyes at night.",
			CreatedAt:     now.Add(-day),
			IsResolved:    true,
			AdminResponse: "Thanks for the suggestion! A dark theme is coming in the next update.",
		},
		{
			ID: 3, UserName: "Jordan Lee", UserEmail: "jordan@example.com", Type: "complaint",
			Message:   "Customer support has not answered me for three days.",
			CreatedAt: now.Add(-2 * day),
		},
		{
			ID: 4, UserName: "Riley Quinn", UserEmail: "riley@example.com", Type: "general",
			Message:       "I like the system overall, but loading is a bit slow.",
			CreatedAt:     now.Add(-3 * day),
			IsResolved:    true,
			AdminResponse: "Thanks for the feedback. We are working on server performance.",
		},
	}
}

// RespondInput is the body of a feedback response.
type RespondInput struct {
	ResponseMessage string `json:"responseMessage"`
	MarkAsResolved  bool   `json:"markAsResolved"`
}
