package render_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/pages"
	"github.com/jrsteele09/go-admin-console/render"
	"github.com/jrsteele09/go-admin-console/sessions"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newRenderer(options ...render.Option) *render.Renderer {
	return render.New(append([]render.Option{render.WithNowTime(func() time.Time { return testNow })}, options...)...)
}

func TestCategories(t *testing.T) {
	r := newRenderer()
	state := pages.CategoriesState{
		Categories: []adminmodel.Category{
			{ID: 1, Name: "Sports", Icon: "futbol", Color: "#ff0000", IsActive: true, PostCount: 1200},
			{ID: 2, Name: "Garden", Icon: "leaf", Color: "#00ff00"},
		},
		Status: adminmodel.CategoryFilterActive,
	}

	var buf bytes.Buffer
	require.NoError(t, r.Categories(&buf, state))
	out := buf.String()
	require.Contains(t, out, "Sports")
	require.Contains(t, out, "1,200")
	require.NotContains(t, out, "Garden")
	require.Contains(t, out, "1 of 2 categories")
	require.NotContains(t, out, "\033[", "colour is off by default")

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Categories(&buf, pages.CategoriesState{}))
		require.Contains(t, buf.String(), "No categories found.")
	})
}

func TestPosts(t *testing.T) {
	r := newRenderer()
	state := pages.PostsState{
		Posts: []adminmodel.Post{{
			ID: 5, Title: "Road bike", CategoryName: "Sports", UserName: "Ann", City: "Izmir",
			Price: 1234.5, Status: adminmodel.PostActive, CreatedAt: testNow.Add(-4 * time.Hour),
		}},
		Pagination: adminmodel.Pagination{CurrentPage: 2, TotalPages: 3},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Posts(&buf, state, adminmodel.PostStats{Total: 1, Active: 1}))
	out := buf.String()
	require.Contains(t, out, "Road bike")
	require.Contains(t, out, "1,234.50")
	require.Contains(t, out, "4 hours ago")
	require.Contains(t, out, "Page 2 of 3")
}

func TestFeedback_DemoBanner(t *testing.T) {
	r := newRenderer()
	state := pages.FeedbackState{
		Items: adminmodel.DemoFeedback(testNow),
		Demo:  true,
	}

	var buf bytes.Buffer
	require.NoError(t, r.Feedback(&buf, state))
	out := buf.String()
	require.Contains(t, out, "DEMO MODE")
	require.Contains(t, out, "Alex Morgan")
	require.Contains(t, out, "Bug report")
	require.Contains(t, out, "resolved")
}

func TestReports(t *testing.T) {
	r := newRenderer()
	state := pages.ReportsState{Reports: []adminmodel.Report{
		{ID: 1, ReportType: adminmodel.ReportTypeUser, ReportedUserID: 42, Reason: "Spam", Status: adminmodel.ReportReviewing},
	}}

	var buf bytes.Buffer
	require.NoError(t, r.Reports(&buf, state))
	require.Contains(t, buf.String(), "user 42")
	require.Contains(t, buf.String(), "Under review")
}

func TestDashboard(t *testing.T) {
	r := newRenderer()
	state := pages.DashboardState{
		Loaded: true,
		Days:   7,
		Dashboard: adminmodel.Dashboard{
			Stats: adminmodel.DashboardStats{
				Users: adminmodel.Trend{Total: 1500, ChangeRate: 12.5, IsPositive: true},
				Posts: adminmodel.Trend{Total: 320, ChangeRate: 3.1},
			},
			Distribution: adminmodel.CategoryDistribution{Labels: []string{"Sports", "Home"}, Data: []float64{60, 30}},
			Recent:       []adminmodel.Activity{{Type: "user", Text: "New user joined", Time: "5 minutes ago"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Dashboard(&buf, state))
	out := buf.String()
	require.Contains(t, out, "1,500")
	require.Contains(t, out, "▲ 12.5%")
	require.Contains(t, out, "▼ 3.1%")
	require.Contains(t, out, "last 7 days")
	require.Contains(t, out, "Sports ##############################")
	require.Contains(t, out, "Home   ############### 30")
	require.Contains(t, out, "[user] New user joined (5 minutes ago)")

	t.Run("not loaded", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Dashboard(&buf, pages.DashboardState{}))
		require.Contains(t, buf.String(), "Dashboard not loaded.")
	})
}

func TestHeader(t *testing.T) {
	r := newRenderer()
	var buf bytes.Buffer
	require.NoError(t, r.Header(&buf, pages.HeaderState{
		Badges:        adminmodel.BadgeCounts{Posts: 87, PendingFeedback: 5, Users: 2400, Notifications: 1},
		Notifications: []pages.AdminNotification{{Title: "New report", Message: "Check it", Time: "now", Unread: true}},
	}))
	require.Contains(t, buf.String(), "Posts 87 | Pending feedback 5 | Users 2,400 | Notifications 1")
	require.Contains(t, buf.String(), "* New report: Check it (now)")
}

func TestHomepage(t *testing.T) {
	r := newRenderer()
	content := adminmodel.PublicHomePage{
		Hero:     &adminmodel.HeroSection{Title: "Buy and sell", IsActive: true},
		Sponsors: []adminmodel.Sponsor{{ID: 3, Name: "Acme", WebsiteURL: "https://acme.example.com"}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Homepage(&buf, content, []adminmodel.PageSetting{{Key: "footer", Value: "(c) 2026"}}))
	out := buf.String()
	require.Contains(t, out, "Buy and sell")
	require.Contains(t, out, "Acme")
	require.Contains(t, out, "inactive")
	require.Contains(t, out, "footer")
	require.NotContains(t, out, "Call to action")
}

func TestSession(t *testing.T) {
	r := newRenderer()
	var buf bytes.Buffer
	require.NoError(t, r.Session(&buf, sessions.Session{
		Kind: sessions.KindDemo,
		User: sessions.User{Username: "admin", IsDemo: true, LoginTime: testNow.Add(-2 * time.Hour)},
	}))
	require.Contains(t, buf.String(), "admin")
	require.Contains(t, buf.String(), "demo")
	require.Contains(t, buf.String(), "2 hours ago")
}

func TestOptions(t *testing.T) {
	t.Run("language", func(t *testing.T) {
		r := newRenderer(render.WithLanguage(language.German))
		var buf bytes.Buffer
		require.NoError(t, r.Overview(&buf, adminmodel.ReportsOverview{TotalUsers: 1500}))
		require.Contains(t, buf.String(), "1.500")
	})

	t.Run("colour", func(t *testing.T) {
		r := newRenderer(render.WithColor(true))
		var buf bytes.Buffer
		require.NoError(t, r.Categories(&buf, pages.CategoriesState{Categories: []adminmodel.Category{{ID: 1, Name: "A", IsActive: true}}}))
		require.Contains(t, buf.String(), "\033[32mactive\033[0m")
	})
}
