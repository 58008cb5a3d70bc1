package pages_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/jrsteele09/go-admin-console/pages"
	"github.com/stretchr/testify/require"
)

const reportsPayload = `{"success":true,"data":[
	{"id":1,"reportType":"User","reason":"Spam, repeated","status":"Pending","reportedUserId":42,"createdAt":"2026-03-10T10:00:00Z"},
	{"id":2,"reportType":"Post","reason":"Fake listing","status":"Resolved","reportedPostId":7}
]}`

func TestReports_LoadAndFilter(t *testing.T) {
	f := newFixture(t, testToken)
	f.handle("GET /api/Report/admin/all", http.StatusOK, reportsPayload)
	r := pages.NewReports(f.env)
	require.NoError(t, r.Open(context.Background()))
	require.Len(t, r.State().Reports, 2)

	r.SetFilter(adminmodel.ReportFilter{Search: "42"})
	visible := r.State().Visible()
	require.Len(t, visible, 1)
	require.Equal(t, int64(1), visible[0].ID)

	r.SetFilter(adminmodel.ReportFilter{Status: adminmodel.ReportResolved, Type: adminmodel.ReportTypePost})
	require.Len(t, r.State().Visible(), 1)
}

func TestReports_BareArray(t *testing.T) {
	f := newFixture(t, testToken)
	f.handle("GET /api/Report/admin/all", http.StatusOK, `[{"id":9,"reason":"Rude"}]`)
	r := pages.NewReports(f.env)
	require.NoError(t, r.Load(context.Background()))

	reports := r.State().Reports
	require.Len(t, reports, 1)
	require.Equal(t, adminmodel.ReportPending, reports[0].Status)
}

func TestReports_UpdateAndDelete(t *testing.T) {
	f := newFixture(t, testToken)
	f.handle("GET /api/Report/admin/all", http.StatusOK, reportsPayload)
	f.handle("GET /api/Report/admin/{id}", http.StatusOK, `{"data":{"id":1,"reportType":"User","description":"Sends links","adminNotes":"watching"}}`)
	f.handle("PUT /api/Report/admin/{id}", http.StatusOK, `{}`)
	f.handle("DELETE /api/Report/admin/{id}", http.StatusOK, `{}`)
	r := pages.NewReports(f.env)

	detail, err := r.Detail(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Sends links", detail.Description)
	require.Equal(t, "watching", detail.AdminNotes)

	require.ErrorIs(t, r.Update(context.Background(), 1, adminmodel.ReportUpdate{}), errors.ErrValidation)
	require.NoError(t, r.Update(context.Background(), 1, adminmodel.ReportUpdate{Status: adminmodel.ReportReviewing, AdminNotes: "checking"}))
	body := decodeBody(t, f.last(t, http.MethodPut, "/api/Report/admin/1"))
	require.Equal(t, map[string]any{"status": "Reviewing", "adminNotes": "checking"}, body)

	f.confirmer.Answer = false
	require.ErrorIs(t, r.Delete(context.Background(), 1), errors.ErrNotConfirmed)
	require.Zero(t, f.calls(http.MethodDelete, "/api/Report/admin/1"))

	f.confirmer.Answer = true
	require.NoError(t, r.Delete(context.Background(), 1))
	require.Equal(t, 1, f.calls(http.MethodDelete, "/api/Report/admin/1"))
	require.Equal(t, 2, f.calls(http.MethodGet, "/api/Report/admin/all"))
}

func TestReports_ExportCSV(t *testing.T) {
	f := newFixture(t, testToken)
	f.handle("GET /api/Report/admin/all", http.StatusOK, reportsPayload)
	r := pages.NewReports(f.env)
	require.NoError(t, r.Load(context.Background()))
	r.SetFilter(adminmodel.ReportFilter{Status: adminmodel.ReportPending})

	var buf bytes.Buffer
	require.NoError(t, r.ExportCSV(&buf))
	require.Equal(t, "ID,Type,Reason,Status,Date\n"+
		"1,User,\"Spam, repeated\",Pending,2026-03-10T10:00:00Z\n"+
		"2,Post,Fake listing,Resolved,\n", buf.String())

	require.Equal(t, "complaint-report-2026-03-14.csv", pages.ExportFileName(testNow.Add(5*time.Hour)))
}

func TestReports_OverviewToleratesFailures(t *testing.T) {
	f := newFixture(t, testToken)
	f.handle("GET /api/Users", http.StatusOK, `{"totalCount":321,"users":[{"id":1,"name":"A"},{"id":2,"name":"B"}]}`)
	f.handle("GET /api/Posts", http.StatusInternalServerError, `{}`)
	f.handle("GET /api/UserFeedback/admin/stats", http.StatusOK, `{"pendingCount":4,"resolvedCount":6}`)
	f.handle("GET /api/Categories", http.StatusOK, `{"data":[{"id":1},{"id":2},{"id":3},{"id":4},{"id":5},{"id":6}]}`)
	r := pages.NewReports(f.env)

	ov, err := r.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, 321, ov.TotalUsers)
	require.Zero(t, ov.TotalPosts)
	require.Equal(t, 10, ov.TotalFeedback)
	require.Len(t, ov.Categories, 5)
	require.Len(t, ov.TopUsers, 2)
}
