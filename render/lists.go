package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/pages"
	"github.com/jrsteele09/go-admin-console/ui"
)

func (r *Renderer) Categories(w io.Writer, s pages.CategoriesState) error {
	r.title(w, "Categories")
	visible := s.Visible()
	if len(visible) == 0 {
		fmt.Fprintln(w, "No categories found.")
		return nil
	}

	rows := make([][]string, 0, len(visible))
	for _, c := range visible {
		rows = append(rows, []string{id(c.ID), c.Name, c.Icon, c.Color, r.active(c.IsActive), r.num(c.PostCount)})
	}
	if err := table(w, []string{"ID", "NAME", "ICON", "COLOR", "STATUS", "POSTS"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s of %s categories\n", r.num(len(visible)), r.num(len(s.Categories)))
	return nil
}

func (r *Renderer) Posts(w io.Writer, s pages.PostsState, stats adminmodel.PostStats) error {
	r.title(w, "Posts")
	if err := fields(w,
		"Total", r.num(stats.Total),
		"Active", r.num(stats.Active),
		"Passive", r.num(stats.Passive),
		"Created today", r.num(stats.CreatedToday),
	); err != nil {
		return err
	}
	fmt.Fprintln(w)

	visible := s.Visible()
	if len(visible) == 0 {
		fmt.Fprintln(w, "No posts found.")
	} else {
		rows := make([][]string, 0, len(visible))
		for _, p := range visible {
			rows = append(rows, []string{
				id(p.ID), p.Title, p.CategoryName, p.UserName, p.City, r.money(p.Price), r.postStatus(p.Status), r.ago(p.CreatedAt),
			})
		}
		if err := table(w, []string{"ID", "TITLE", "CATEGORY", "USER", "CITY", "PRICE", "STATUS", "CREATED"}, rows); err != nil {
			return err
		}
	}
	r.pagination(w, s.Pagination)
	return nil
}

// Post writes the detail view of one post.
func (r *Renderer) Post(w io.Writer, p adminmodel.Post) error {
	r.title(w, p.Title)
	location := strings.Trim(p.City+" / "+p.District, " /")
	if err := fields(w,
		"ID", id(p.ID),
		"Status", r.postStatus(p.Status),
		"Category", p.CategoryName,
		"Price", r.money(p.Price),
		"Seller", p.UserName,
		"Phone", p.PhoneNumber,
		"Location", location,
		"Created", r.ago(p.CreatedAt),
		"Images", r.num(len(p.ImageURLs)),
	); err != nil {
		return err
	}
	if p.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.Description)
	}
	return nil
}

func (r *Renderer) Users(w io.Writer, s pages.UsersState) error {
	r.title(w, "Users")
	if err := fields(w,
		"Total", r.num(s.Stats.TotalUsers),
		"Active", r.num(s.Stats.ActiveUsers),
		"New this month", r.num(s.Stats.NewUsersThisMonth),
		"With posts", r.num(s.Stats.UsersWithPosts),
	); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if len(s.Users) == 0 {
		fmt.Fprintln(w, "No users found.")
	} else {
		rows := make([][]string, 0, len(s.Users))
		for _, u := range s.Users {
			rows = append(rows, []string{id(u.ID), u.Name, u.Email, r.active(u.IsActive), r.num(u.PostCount), r.ago(u.CreatedAt)})
		}
		if err := table(w, []string{"ID", "NAME", "EMAIL", "STATUS", "POSTS", "JOINED"}, rows); err != nil {
			return err
		}
	}
	r.pagination(w, s.Pagination)
	return nil
}

func (r *Renderer) UserDetail(w io.Writer, d adminmodel.UserDetail) error {
	r.title(w, d.Name)
	if err := fields(w,
		"ID", id(d.ID),
		"Email", d.Email,
		"Phone", d.PhoneNumber,
		"Status", r.active(d.IsActive),
		"Joined", r.ago(d.CreatedAt),
		"Posts", r.num(d.Stats.TotalPosts),
		"Active posts", r.num(d.Stats.ActivePosts),
		"Favorites", r.num(d.Stats.FavoritesCount),
	); err != nil {
		return err
	}
	if len(d.Posts) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	rows := make([][]string, 0, len(d.Posts))
	for _, p := range d.Posts {
		rows = append(rows, []string{id(p.ID), p.Title, r.postStatus(p.Status), r.ago(p.CreatedAt)})
	}
	return table(w, []string{"ID", "TITLE", "STATUS", "CREATED"}, rows)
}

func (r *Renderer) Feedback(w io.Writer, s pages.FeedbackState) error {
	r.title(w, "Feedback")
	if s.Demo {
		fmt.Fprintln(w, r.paint(ui.YellowInverse, " DEMO MODE: sample data, changes are not saved "))
	}
	if err := fields(w,
		"Total", r.num(s.Stats.TotalCount),
		"Pending", r.num(s.Stats.PendingCount),
		"Resolved", r.num(s.Stats.ResolvedCount),
		"Today", r.num(s.Stats.TodayCount),
	); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if len(s.Items) == 0 {
		fmt.Fprintln(w, "No feedback found.")
		return nil
	}
	rows := make([][]string, 0, len(s.Items))
	for _, f := range s.Items {
		status := r.paint(ui.Yellow, adminmodel.FeedbackPending)
		if f.IsResolved {
			status = r.paint(ui.Green, adminmodel.FeedbackResolved)
		}
		rows = append(rows, []string{
			id(f.ID), f.UserName, f.UserEmail, adminmodel.FeedbackTypeLabel(f.Type), f.Message, status, r.ago(f.CreatedAt),
		})
	}
	return table(w, []string{"ID", "USER", "EMAIL", "TYPE", "MESSAGE", "STATUS", "RECEIVED"}, rows)
}

func (r *Renderer) Reports(w io.Writer, s pages.ReportsState) error {
	r.title(w, "Complaints")
	visible := s.Visible()
	if len(visible) == 0 {
		fmt.Fprintln(w, "No complaints found.")
		return nil
	}
	rows := make([][]string, 0, len(visible))
	for _, rep := range visible {
		rows = append(rows, []string{
			id(rep.ID), rep.ReportType, target(rep), rep.Reason, adminmodel.ReportStatusLabel(rep.Status), r.ago(rep.CreatedAt),
		})
	}
	if err := table(w, []string{"ID", "TYPE", "TARGET", "REASON", "STATUS", "FILED"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s of %s complaints\n", r.num(len(visible)), r.num(len(s.Reports)))
	return nil
}

func (r *Renderer) Report(w io.Writer, rep adminmodel.Report) error {
	r.title(w, fmt.Sprintf("Complaint #%d", rep.ID))
	return fields(w,
		"Type", rep.ReportType,
		"Target", target(rep),
		"Reporter", id(rep.ReporterID),
		"Reason", rep.Reason,
		"Description", rep.Description,
		"Status", adminmodel.ReportStatusLabel(rep.Status),
		"Admin notes", rep.AdminNotes,
		"Filed", r.ago(rep.CreatedAt),
	)
}

func target(rep adminmodel.Report) string {
	if rep.Target() == 0 {
		return empty
	}
	return fmt.Sprintf("%s %d", strings.ToLower(rep.ReportType), rep.Target())
}

func (r *Renderer) pagination(w io.Writer, p adminmodel.Pagination) {
	if p.TotalPages <= 1 {
		return
	}
	fmt.Fprintf(w, "Page %s of %s\n", r.num(p.CurrentPage), r.num(p.TotalPages))
}
