package pages

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/apiclient"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardEndpoint = "/Dashboard"

	defaultActivityDays = 7
	recentActivityLimit = 4
)

type DashboardState struct {
	Dashboard adminmodel.Dashboard
	Days      int
	Loaded    bool
}

// Dashboard shows the headline statistics, user activity, category distribution and recent
// activity. The four are loaded all or nothing.
type Dashboard struct {
	env   *Env
	mu    sync.Mutex
	state DashboardState
}

func NewDashboard(env *Env) *Dashboard {
	return &Dashboard{env: env, state: DashboardState{Days: defaultActivityDays}}
}

func (d *Dashboard) State() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dashboard) Open(ctx context.Context) error {
	if err := d.env.open(); err != nil {
		return err
	}
	return d.Load(ctx)
}

// Load fetches everything in parallel. The first failure cancels the other requests and the
// previous dashboard is kept.
func (d *Dashboard) Load(ctx context.Context) error {
	done := d.env.busy()
	defer done()

	days := d.State().Days
	var dash adminmodel.Dashboard

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := d.fetchStats(gctx)
		dash.Stats = stats
		return err
	})
	g.Go(func() error {
		activity, err := d.fetchActivity(gctx, days)
		dash.Activity = activity
		return err
	})
	g.Go(func() error {
		r, err := d.env.getObject(gctx, dashboardEndpoint+"/category-distribution")
		if err != nil {
			return err
		}
		dash.Distribution = adminmodel.NormalizeCategoryDistribution(r)
		return nil
	})
	g.Go(func() error {
		items, _, err := d.env.getList(gctx, dashboardEndpoint+"/recent-activities", nil,
			apiclient.WithQuery("limit", strconv.Itoa(recentActivityLimit)))
		if err != nil {
			return err
		}
		dash.Recent = adminmodel.NormalizeActivities(items)
		return nil
	})
	if err := g.Wait(); err != nil {
		return d.env.fail(err, "Failed to load the dashboard")
	}

	d.mu.Lock()
	d.state.Dashboard = dash
	d.state.Loaded = true
	d.mu.Unlock()
	return nil
}

func (d *Dashboard) fetchStats(ctx context.Context) (adminmodel.DashboardStats, error) {
	r, err := d.env.getObject(ctx, dashboardEndpoint+"/stats")
	if err != nil {
		return adminmodel.DashboardStats{}, err
	}
	return adminmodel.NormalizeDashboardStats(r), nil
}

func (d *Dashboard) fetchActivity(ctx context.Context, days int) (adminmodel.UserActivity, error) {
	r, err := d.env.getObject(ctx, dashboardEndpoint+"/user-activity", apiclient.WithQuery("days", strconv.Itoa(days)))
	if err != nil {
		return adminmodel.UserActivity{}, err
	}
	return adminmodel.NormalizeUserActivity(r, days), nil
}

// SetPeriod refetches user activity for a 7, 30 or 90 day window.
func (d *Dashboard) SetPeriod(ctx context.Context, days int) error {
	if !slices.Contains(adminmodel.ActivityPeriods, days) {
		return d.env.fail(errors.Wrapf(errors.ErrValidation, "unsupported period %d days", days), "Failed to change period")
	}

	done := d.env.busy()
	defer done()

	activity, err := d.fetchActivity(ctx, days)
	if err != nil {
		return d.env.fail(err, "Failed to load user activity")
	}
	d.mu.Lock()
	d.state.Days = days
	d.state.Dashboard.Activity = activity
	d.mu.Unlock()
	return nil
}

// RefreshStats reloads the headline numbers only. It is the periodic refresh job.
func (d *Dashboard) RefreshStats(ctx context.Context) error {
	stats, err := d.fetchStats(ctx)
	if err != nil {
		return d.env.fail(err, "Failed to refresh statistics")
	}
	d.mu.Lock()
	d.state.Dashboard.Stats = stats
	d.mu.Unlock()
	return nil
}
