package pages_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/pages"
	"github.com/jrsteele09/go-admin-console/sessions"
	"github.com/stretchr/testify/require"
)

const notificationsPayload = `{"notifications":[
	{"id":1,"title":"New report","message":"A post was <i>reported</i>","time":"2 minutes ago","unread":true},
	{"id":2,"title":"Backup","message":"Done","time":"1 hour ago","isUnread":true},
	{"id":3,"title":"Old","message":"Seen","time":"yesterday"}
]}`

func handleHeader(f *fixture) {
	f.handle("GET /api/Posts", http.StatusOK, `{"data":{"posts":[],"pagination":{"totalCount":87}}}`)
	f.handle("GET /api/UserFeedback/admin/stats", http.StatusOK, `{"pendingCount":5}`)
	f.handle("GET /api/Users", http.StatusOK, `{"totalCount":240}`)
	f.handle("GET /api/admin/notifications", http.StatusOK, notificationsPayload)
}

func TestHeader_Refresh(t *testing.T) {
	f := newFixture(t, testToken)
	handleHeader(f)
	h := pages.NewHeader(f.env)

	counts := h.Refresh(context.Background())
	require.Equal(t, adminmodel.BadgeCounts{Posts: 87, PendingFeedback: 5, Users: 240, Notifications: 2}, counts)

	s := h.State()
	require.Equal(t, counts, s.Badges)
	require.Len(t, s.Notifications, 3)
	require.Equal(t, "A post was reported", s.Notifications[0].Message)
	require.True(t, s.Notifications[1].Unread)
	require.Equal(t, "status=all&page=1&pageSize=1", f.last(t, http.MethodGet, "/api/Posts").Query)
}

func TestHeader_ToleratesFailures(t *testing.T) {
	f := newFixture(t, testToken)
	f.handle("GET /api/Posts", http.StatusInternalServerError, `{}`)
	f.handle("GET /api/UserFeedback/admin/stats", http.StatusOK, `{"pendingCount":5}`)
	f.handle("GET /api/Users", http.StatusServiceUnavailable, `{}`)
	h := pages.NewHeader(f.env)

	counts := h.Refresh(context.Background())
	require.Equal(t, adminmodel.BadgeCounts{PendingFeedback: 5}, counts)
	require.Empty(t, h.State().Notifications)
	require.Empty(t, f.notifier.Notes(), "badge failures are not shown to the user")
}

func TestHeader_NoSessionSendsNothing(t *testing.T) {
	f := newFixture(t, "")
	handleHeader(f)
	h := pages.NewHeader(f.env)

	require.Zero(t, h.Refresh(context.Background()))
	require.Empty(t, f.recorded())
}

func TestHeader_Unauthorized(t *testing.T) {
	t.Run("demo session is kept", func(t *testing.T) {
		f := newFixture(t, sessions.NewDemoToken(testNow))
		f.handle("GET /api/Posts", http.StatusUnauthorized, `{}`)
		f.handle("GET /api/UserFeedback/admin/stats", http.StatusUnauthorized, `{}`)
		f.handle("GET /api/Users", http.StatusUnauthorized, `{}`)
		f.handle("GET /api/admin/notifications", http.StatusUnauthorized, `{}`)
		h := pages.NewHeader(f.env)

		require.Zero(t, h.Refresh(context.Background()))
		require.NotEmpty(t, f.store.GetToken())
		require.Empty(t, f.notifier.Notes())
	})

	t.Run("real session is logged out", func(t *testing.T) {
		f := newFixture(t, testToken)
		f.handle("GET /api/Posts", http.StatusUnauthorized, `{}`)
		f.handle("GET /api/UserFeedback/admin/stats", http.StatusOK, `{"pendingCount":5}`)
		f.handle("GET /api/Users", http.StatusOK, `{"totalCount":240}`)
		h := pages.NewHeader(f.env)

		h.Refresh(context.Background())
		require.Empty(t, f.store.GetToken())
		require.NotEmpty(t, f.notifier.Notes())
	})
}

func TestHeader_MarkAllRead(t *testing.T) {
	f := newFixture(t, testToken)
	handleHeader(f)
	f.handle("PUT /api/admin/notifications/mark-all-read", http.StatusOK, `{}`)
	h := pages.NewHeader(f.env)
	h.Refresh(context.Background())

	require.NoError(t, h.MarkAllRead(context.Background()))
	require.Equal(t, 1, f.calls(http.MethodPut, "/api/admin/notifications/mark-all-read"))
	s := h.State()
	require.Zero(t, s.Badges.Notifications)
	require.Equal(t, 87, s.Badges.Posts)
	for _, n := range s.Notifications {
		require.False(t, n.Unread)
	}
}
