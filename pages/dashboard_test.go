package pages_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/jrsteele09/go-admin-console/pages"
	"github.com/stretchr/testify/require"
)

func newDashboardFixture(t *testing.T) *fixture {
	f := newFixture(t, testToken)
	f.handle("GET /api/Dashboard/stats", http.StatusOK, `{"success":true,"data":{
		"users":{"total":1500,"changeRate":12.5,"isPositive":true},
		"posts":{"total":320,"changeRate":3.1,"isPositive":false},
		"categories":{"total":12,"newCount":2},
		"revenue":{"total":9100.5,"changeRate":0,"isPositive":true}}}`)
	f.handle("GET /api/Dashboard/user-activity", http.StatusOK, `{"success":true,"data":{
		"labels":["Mon","Tue","Wed"],"datasets":[{"label":"New users","data":[3,5,8]}]}}`)
	f.handle("GET /api/Dashboard/category-distribution", http.StatusOK, `{"success":true,"data":{"labels":["Sports","Home"],"data":[60,40]}}`)
	f.handle("GET /api/Dashboard/recent-activities", http.StatusOK, `{"success":true,"data":[
		{"type":"user","text":"New user <b>joined</b>","time":"5 minutes ago"}]}`)
	return f
}

func TestDashboard_Open(t *testing.T) {
	f := newDashboardFixture(t)
	d := pages.NewDashboard(f.env)
	require.NoError(t, d.Open(context.Background()))

	s := d.State()
	require.True(t, s.Loaded)
	require.Equal(t, 7, s.Days)
	require.Equal(t, 1500.0, s.Dashboard.Stats.Users.Total)
	require.False(t, s.Dashboard.Stats.Posts.IsPositive)
	require.Equal(t, adminmodel.CategoryTrend{Total: 12, NewCount: 2}, s.Dashboard.Stats.Categories)
	require.Equal(t, []string{"Mon", "Tue", "Wed"}, s.Dashboard.Activity.Labels)
	require.Equal(t, []float64{60, 40}, s.Dashboard.Distribution.Data)
	require.Equal(t, []adminmodel.Activity{{Type: "user", Text: "New user joined", Time: "5 minutes ago"}}, s.Dashboard.Recent)

	require.Equal(t, "days=7", f.last(t, http.MethodGet, "/api/Dashboard/user-activity").Query)
	require.Equal(t, "limit=4", f.last(t, http.MethodGet, "/api/Dashboard/recent-activities").Query)
}

func TestDashboard_AllOrNothing(t *testing.T) {
	f := newFixture(t, testToken)
	f.handle("GET /api/Dashboard/stats", http.StatusOK, `{"data":{}}`)
	f.handle("GET /api/Dashboard/user-activity", http.StatusOK, `{"data":{}}`)
	f.handle("GET /api/Dashboard/category-distribution", http.StatusBadGateway, `{"title":"upstream down"}`)
	f.handle("GET /api/Dashboard/recent-activities", http.StatusOK, `{"data":[]}`)
	d := pages.NewDashboard(f.env)

	err := d.Load(context.Background())
	require.Equal(t, http.StatusBadGateway, errors.StatusCode(err))
	require.False(t, d.State().Loaded)
	require.Equal(t, "Failed to load the dashboard: upstream down", f.lastNote(t).Message)
}

func TestDashboard_SetPeriod(t *testing.T) {
	f := newDashboardFixture(t)
	d := pages.NewDashboard(f.env)

	require.NoError(t, d.SetPeriod(context.Background(), 30))
	require.Equal(t, "days=30", f.last(t, http.MethodGet, "/api/Dashboard/user-activity").Query)
	require.Equal(t, 30, d.State().Days)
	require.Equal(t, 30, d.State().Dashboard.Activity.Days)

	require.ErrorIs(t, d.SetPeriod(context.Background(), 14), errors.ErrValidation)
	require.Equal(t, 30, d.State().Days)
}

func TestDashboard_RefreshStats(t *testing.T) {
	f := newDashboardFixture(t)
	d := pages.NewDashboard(f.env)

	require.NoError(t, d.RefreshStats(context.Background()))
	require.Equal(t, 1, f.calls(http.MethodGet, "/api/Dashboard/stats"))
	require.Zero(t, f.calls(http.MethodGet, "/api/Dashboard/user-activity"))
	require.Equal(t, 9100.5, d.State().Dashboard.Stats.Revenue.Total)
}
