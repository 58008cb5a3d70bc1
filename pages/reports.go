package pages

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"golang.org/x/sync/errgroup"
)

const (
	reportAdminEndpoint = "/Report/admin"
	overviewTopN        = 5
)

// ReportCSVHeader is the first row of a complaint export.
var ReportCSVHeader = []string{"ID", "Type", "Reason", "Status", "Date"}

type ReportsState struct {
	Reports []adminmodel.Report
	Filter  adminmodel.ReportFilter
}

// Visible returns the complaints passing the current filter.
func (s ReportsState) Visible() []adminmodel.Report {
	return adminmodel.FilterReports(s.Reports, s.Filter)
}

// Reports manages user complaints and the statistics overview.
type Reports struct {
	env   *Env
	mu    sync.Mutex
	state ReportsState
}

func NewReports(env *Env) *Reports {
	return &Reports{env: env}
}

func (r *Reports) State() ReportsState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Reports) Open(ctx context.Context) error {
	if err := r.env.open(); err != nil {
		return err
	}
	return r.Load(ctx)
}

// Load replaces the complaint list.
func (r *Reports) Load(ctx context.Context) error {
	done := r.env.busy()
	defer done()

	items, _, err := r.env.getList(ctx, reportAdminEndpoint+"/all", nil)
	if err != nil {
		return r.env.fail(err, "Failed to load complaints")
	}
	reports := adminmodel.NormalizeReports(items)

	r.mu.Lock()
	r.state.Reports = reports
	r.mu.Unlock()
	return nil
}

func (r *Reports) SetFilter(f adminmodel.ReportFilter) {
	f.Search = strings.TrimSpace(f.Search)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Filter = f
}

func (r *Reports) Detail(ctx context.Context, id int64) (adminmodel.Report, error) {
	if err := r.env.open(); err != nil {
		return adminmodel.Report{}, err
	}
	done := r.env.busy()
	defer done()

	obj, err := r.env.getObject(ctx, fmt.Sprintf("%s/%d", reportAdminEndpoint, id))
	if err != nil {
		return adminmodel.Report{}, r.env.fail(err, "Failed to load complaint")
	}
	return adminmodel.NormalizeReport(obj), nil
}

// Update sets the status and admin notes of a complaint.
func (r *Reports) Update(ctx context.Context, id int64, update adminmodel.ReportUpdate) error {
	if update.Status == "" {
		return r.env.fail(errors.Wrapf(errors.ErrValidation, "status is required"), "Failed to update complaint")
	}

	done := r.env.busy()
	_, err := r.env.Client.Put(ctx, fmt.Sprintf("%s/%d", reportAdminEndpoint, id), update)
	done()
	if err != nil {
		return r.env.fail(err, "Failed to update complaint")
	}
	r.env.success("Complaint updated")
	return r.Load(ctx)
}

func (r *Reports) Delete(ctx context.Context, id int64) error {
	if err := r.env.confirm("Delete this complaint?"); err != nil {
		return err
	}

	done := r.env.busy()
	_, err := r.env.Client.Delete(ctx, fmt.Sprintf("%s/%d", reportAdminEndpoint, id))
	done()
	if err != nil {
		return r.env.fail(err, "Failed to delete complaint")
	}
	r.env.success("Complaint deleted")
	return r.Load(ctx)
}

// ExportCSV writes every loaded complaint, filter ignored, as CSV.
func (r *Reports) ExportCSV(w io.Writer) error {
	reports := r.State().Reports

	cw := csv.NewWriter(w)
	if err := cw.Write(ReportCSVHeader); err != nil {
		return errors.Wrapf(err, "write csv header")
	}
	for _, rep := range reports {
		date := ""
		if !rep.CreatedAt.IsZero() {
			date = rep.CreatedAt.Format(time.RFC3339)
		}
		row := []string{strconv.FormatInt(rep.ID, 10), rep.ReportType, rep.Reason, rep.Status, date}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "write csv row %d", rep.ID)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrapf(err, "flush csv")
	}
	r.env.success("Report exported")
	return nil
}

// ExportFileName is the suggested name of an export made on day.
func ExportFileName(day time.Time) string {
	return "complaint-report-" + day.Format("2006-01-02") + ".csv"
}

// Overview gathers the site statistics. Every figure is fetched on its own; one that fails is
// logged and left at zero so the rest still show.
func (r *Reports) Overview(ctx context.Context) (adminmodel.ReportsOverview, error) {
	if err := r.env.open(); err != nil {
		return adminmodel.ReportsOverview{}, err
	}
	done := r.env.busy()
	defer done()

	var ov adminmodel.ReportsOverview
	ov.Categories = []adminmodel.Category{}
	ov.TopUsers = []adminmodel.User{}

	tolerate := func(what string, err error) error {
		if err != nil {
			r.env.Logger.Warn().Err(err).Str("figure", what).Msg("overview figure unavailable")
		}
		return nil
	}

	var g errgroup.Group
	g.Go(func() error {
		resp, err := r.env.Client.Get(ctx, "/Users?page=1&pageSize=1")
		if err == nil {
			ov.TotalUsers = int(resp.JSON().Get("totalCount").Int())
		}
		return tolerate("users", err)
	})
	g.Go(func() error {
		resp, err := r.env.Client.Get(ctx, "/Posts?status=all&page=1&pageSize=1")
		if err == nil {
			ov.TotalPosts = int(resp.JSON().Get("data.pagination.totalCount").Int())
		}
		return tolerate("posts", err)
	})
	g.Go(func() error {
		obj, err := r.env.getObject(ctx, feedbackStatsEndpoint)
		if err == nil {
			stats := adminmodel.NormalizeFeedbackStats(obj)
			ov.TotalFeedback = stats.PendingCount + stats.ResolvedCount
		}
		return tolerate("feedback", err)
	})
	g.Go(func() error {
		items, _, err := r.env.getList(ctx, categoriesEndpoint, nil)
		if err == nil {
			ov.Categories = firstN(adminmodel.NormalizeCategories(items), overviewTopN)
		}
		return tolerate("categories", err)
	})
	g.Go(func() error {
		items, _, err := r.env.getList(ctx, "/Users?page=1&pageSize=5", []string{"users"})
		if err == nil {
			ov.TopUsers = firstN(adminmodel.NormalizeUsers(items), overviewTopN)
		}
		return tolerate("top users", err)
	})
	err := g.Wait()
	return ov, err
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
