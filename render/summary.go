package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/pages"
	"github.com/jrsteele09/go-admin-console/sessions"
	"github.com/jrsteele09/go-admin-console/ui"
)

const barWidth = 30

func (r *Renderer) Dashboard(w io.Writer, s pages.DashboardState) error {
	r.title(w, "Dashboard")
	if !s.Loaded {
		fmt.Fprintln(w, "Dashboard not loaded.")
		return nil
	}

	stats := s.Dashboard.Stats
	if err := table(w, []string{"", "TOTAL", "CHANGE"}, [][]string{
		{"Users", r.num(int(stats.Users.Total)), r.trend(stats.Users)},
		{"Posts", r.num(int(stats.Posts.Total)), r.trend(stats.Posts)},
		{"Categories", r.num(stats.Categories.Total), fmt.Sprintf("+%s new", r.num(stats.Categories.NewCount))},
		{"Revenue", r.money(stats.Revenue.Total), r.trend(stats.Revenue)},
	}); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nUser activity, last %d days\n", s.Days)
	activity := s.Dashboard.Activity
	for _, ds := range activity.Datasets {
		fmt.Fprintln(w, ds.Label)
		r.bars(w, activity.Labels, ds.Data)
	}

	fmt.Fprintln(w, "\nCategory distribution")
	r.bars(w, s.Dashboard.Distribution.Labels, s.Dashboard.Distribution.Data)

	if len(s.Dashboard.Recent) > 0 {
		fmt.Fprintln(w, "\nRecent activity")
		for _, a := range s.Dashboard.Recent {
			fmt.Fprintf(w, "  [%s] %s (%s)\n", a.Type, a.Text, a.Time)
		}
	}
	return nil
}

// bars draws one horizontal bar per label, scaled to the largest value.
func (r *Renderer) bars(w io.Writer, labels []string, values []float64) {
	var peak float64
	for _, v := range values {
		peak = max(peak, v)
	}
	width := 0
	for _, l := range labels {
		width = max(width, len([]rune(l)))
	}
	for i, l := range labels {
		var v float64
		if i < len(values) {
			v = values[i]
		}
		n := 0
		if peak > 0 {
			n = int(v / peak * barWidth)
		}
		fmt.Fprintf(w, "  %-*s %s %s\n", width, l, r.paint(ui.Blue, strings.Repeat("#", n)), r.printer.Sprintf("%v", v))
	}
}

// Header writes the badge line and the notification panel.
func (r *Renderer) Header(w io.Writer, s pages.HeaderState) error {
	b := s.Badges
	fmt.Fprintf(w, "Posts %s | Pending feedback %s | Users %s | Notifications %s\n",
		r.num(b.Posts), r.num(b.PendingFeedback), r.num(b.Users), r.paint(ui.Red, r.num(b.Notifications)))
	for _, n := range s.Notifications {
		marker := " "
		if n.Unread {
			marker = r.paint(ui.Red, "*")
		}
		fmt.Fprintf(w, " %s %s: %s (%s)\n", marker, n.Title, n.Message, n.Time)
	}
	return nil
}

// Homepage writes the landing page sections. Inactive records are listed and marked.
func (r *Renderer) Homepage(w io.Writer, content adminmodel.PublicHomePage, settings []adminmodel.PageSetting) error {
	r.title(w, "Homepage")
	if hero := content.Hero; hero != nil {
		if err := fields(w, "Hero", hero.Title, "Subtitle", hero.Subtitle, "Status", r.active(hero.IsActive)); err != nil {
			return err
		}
	}

	sections := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"Statistics", []string{"ID", "LABEL", "VALUE", "ORDER", "STATUS"}, rowsOf(content.Stats, func(s adminmodel.HeroStat) []string {
			return []string{id(s.ID), s.Label, s.Value, r.num(s.DisplayOrder), r.active(s.IsActive)}
		})},
		{"Features", []string{"ID", "ICON", "TITLE", "ORDER", "STATUS"}, rowsOf(content.Features, func(f adminmodel.Feature) []string {
			return []string{id(f.ID), f.Icon, f.Title, r.num(f.DisplayOrder), r.active(f.IsActive)}
		})},
		{"Sponsors", []string{"ID", "NAME", "WEBSITE", "ORDER", "STATUS"}, rowsOf(content.Sponsors, func(s adminmodel.Sponsor) []string {
			return []string{id(s.ID), s.Name, s.WebsiteURL, r.num(s.DisplayOrder), r.active(s.IsActive)}
		})},
		{"App links", []string{"ID", "PLATFORM", "URL", "BUTTON", "STATUS"}, rowsOf(content.AppLinks, func(l adminmodel.AppLink) []string {
			return []string{id(l.ID), l.Platform, l.URL, l.ButtonText, r.active(l.IsActive)}
		})},
		{"Settings", []string{"KEY", "VALUE", "DESCRIPTION"}, rowsOf(settings, func(s adminmodel.PageSetting) []string {
			return []string{s.Key, s.Value, s.Description}
		})},
	}
	for _, sec := range sections {
		fmt.Fprintf(w, "\n%s\n", sec.name)
		if len(sec.rows) == 0 {
			fmt.Fprintln(w, "  none")
			continue
		}
		if err := table(w, sec.header, sec.rows); err != nil {
			return err
		}
	}

	if cta := content.CTA; cta != nil {
		fmt.Fprintln(w)
		return fields(w, "Call to action", cta.Title, "Subtitle", cta.Subtitle, "Status", r.active(cta.IsActive))
	}
	return nil
}

func rowsOf[T any](items []T, row func(T) []string) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, row(item))
	}
	return rows
}

// Overview writes the reports page summary.
func (r *Renderer) Overview(w io.Writer, ov adminmodel.ReportsOverview) error {
	r.title(w, "Overview")
	if err := fields(w,
		"Users", r.num(ov.TotalUsers),
		"Posts", r.num(ov.TotalPosts),
		"Feedback", r.num(ov.TotalFeedback),
	); err != nil {
		return err
	}
	if len(ov.Categories) > 0 {
		fmt.Fprintln(w, "\nTop categories")
		if err := table(w, []string{"NAME", "POSTS"}, rowsOf(ov.Categories, func(c adminmodel.Category) []string {
			return []string{c.Name, r.num(c.PostCount)}
		})); err != nil {
			return err
		}
	}
	if len(ov.TopUsers) > 0 {
		fmt.Fprintln(w, "\nMost active users")
		return table(w, []string{"NAME", "EMAIL", "POSTS"}, rowsOf(ov.TopUsers, func(u adminmodel.User) []string {
			return []string{u.Name, u.Email, r.num(u.PostCount)}
		}))
	}
	return nil
}

// Session writes who is logged in and until when.
func (r *Renderer) Session(w io.Writer, s sessions.Session) error {
	expires := empty
	if !s.ExpiresAt.IsZero() {
		expires = r.ago(s.ExpiresAt)
	}
	mode := string(s.Kind)
	if s.User.IsDemo {
		mode = r.paint(ui.Yellow, "demo")
	}
	return fields(w,
		"User", s.User.Username,
		"Role", s.User.Role,
		"Session", mode,
		"Logged in", r.ago(s.User.LoginTime),
		"Expires", expires,
	)
}
