package pages_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/jrsteele09/go-admin-console/pages"
	"github.com/jrsteele09/go-admin-console/ui"
	"github.com/stretchr/testify/require"
)

const usersPayload = `{"success":true,"data":{
	"users":[
		{"id":1,"name":"Bea","email":"bea@example.com","isActive":true,"postCount":2,"createdAt":"2026-01-10T00:00:00Z"},
		{"id":2,"name":"Al","email":"al@example.com","isActive":false,"postCount":7,"createdAt":"2026-02-10T00:00:00Z"}
	],
	"pagination":{"currentPage":1,"totalPages":2}
}}`

func newUsersFixture(t *testing.T) *fixture {
	f := newFixture(t, testToken)
	f.handle("GET /api/Admin/users/stats", http.StatusOK, `{"success":true,"data":{"totalUsers":40,"activeUsers":30,"newUsersThisMonth":4,"usersWithPosts":12}}`)
	f.handle("GET /api/Admin/users", http.StatusOK, usersPayload)
	return f
}

func TestUsers_Open(t *testing.T) {
	f := newUsersFixture(t)
	u := pages.NewUsers(f.env)
	require.NoError(t, u.Open(context.Background()))

	s := u.State()
	require.Equal(t, adminmodel.UserStats{TotalUsers: 40, ActiveUsers: 30, NewUsersThisMonth: 4, UsersWithPosts: 12}, s.Stats)
	require.Equal(t, []int64{2, 1}, []int64{s.Users[0].ID, s.Users[1].ID}, "newest first")
	require.True(t, s.Pagination.HasNext())
	require.Equal(t, "page=1&pageSize=20", f.last(t, http.MethodGet, "/api/Admin/users").Query)

	u.SetSort(adminmodel.UserSortName)
	s = u.State()
	require.Equal(t, "Al", s.Users[0].Name)
}

func TestUsers_SearchAndPaging(t *testing.T) {
	f := newUsersFixture(t)
	u := pages.NewUsers(f.env)
	require.NoError(t, u.Load(context.Background()))

	require.NoError(t, u.NextPage(context.Background()))
	require.Equal(t, "page=2&pageSize=20", f.last(t, http.MethodGet, "/api/Admin/users").Query)

	require.NoError(t, u.Search(context.Background(), " bea "))
	require.Equal(t, "page=1&pageSize=20&search=bea", f.last(t, http.MethodGet, "/api/Admin/users").Query)

	require.NoError(t, u.SetStatus(context.Background(), pages.UserStatusInactive))
	require.Equal(t, "page=1&pageSize=20&search=bea&status=inactive", f.last(t, http.MethodGet, "/api/Admin/users").Query)

	require.ErrorIs(t, u.PrevPage(context.Background()), errors.ErrValidation)
}

func TestUsers_JoinFailureKeepsState(t *testing.T) {
	f := newFixture(t, testToken)
	f.handle("GET /api/Admin/users/stats", http.StatusOK, `{"success":true,"data":{"totalUsers":40}}`)
	f.handle("GET /api/Admin/users", http.StatusInternalServerError, `{"message":"boom"}`)
	u := pages.NewUsers(f.env)

	require.Error(t, u.Load(context.Background()))
	s := u.State()
	require.Zero(t, s.Stats.TotalUsers)
	require.Empty(t, s.Users)
	require.Equal(t, ui.KindError, f.lastNote(t).Kind)
}

func TestUsers_FailedPageChangeKeepsPage(t *testing.T) {
	f := newFixture(t, testToken)
	f.handle("GET /api/Admin/users/stats", http.StatusOK, `{"success":true,"data":{"totalUsers":40}}`)
	var served atomic.Int32
	f.mux.HandleFunc("GET /api/Admin/users", func(w http.ResponseWriter, r *http.Request) {
		if served.Add(1) > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(usersPayload))
	})
	u := pages.NewUsers(f.env)
	require.NoError(t, u.Load(context.Background()))

	require.Error(t, u.NextPage(context.Background()))
	s := u.State()
	require.Equal(t, 1, s.Pagination.CurrentPage)
	require.Len(t, s.Users, 2)
}

func TestUsers_SearchDebounced(t *testing.T) {
	f := newUsersFixture(t)
	u := pages.NewUsers(f.env, pages.WithSearchDebounce(20*time.Millisecond))
	t.Cleanup(u.Close)

	done := make(chan error, 3)
	for _, q := range []string{"a", "al", "ali"} {
		u.SearchDebounced(context.Background(), q, func(err error) { done <- err })
	}

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced search never ran")
	}
	require.Equal(t, 1, f.calls(http.MethodGet, "/api/Admin/users"))
	require.Equal(t, "page=1&pageSize=20&search=ali", f.last(t, http.MethodGet, "/api/Admin/users").Query)
}

func TestUsers_Detail(t *testing.T) {
	f := newUsersFixture(t)
	f.handle("GET /api/Admin/users/{id}", http.StatusOK, `{"success":true,"data":{"id":2,"name":"Al",
		"stats":{"totalPosts":7,"activePosts":3,"favoritesCount":1},"posts":[{"id":5,"title":"Lamp","status":1}]}}`)
	u := pages.NewUsers(f.env)

	d, err := u.Detail(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 7, d.Stats.TotalPosts)
	require.Equal(t, adminmodel.PostPassive, d.Posts[0].Status)
}

func TestUsers_ToggleStatus(t *testing.T) {
	f := newUsersFixture(t)
	f.handle("PUT /api/Admin/users/{id}/toggle-status", http.StatusOK, `{"success":true}`)
	u := pages.NewUsers(f.env)
	require.NoError(t, u.Load(context.Background()))

	require.NoError(t, u.ToggleStatus(context.Background(), 2))
	require.Equal(t, []string{"Really activate Al?"}, f.confirmer.Prompts())
	require.Equal(t, 1, f.calls(http.MethodPut, "/api/Admin/users/2/toggle-status"))
	require.Equal(t, 2, f.calls(http.MethodGet, "/api/Admin/users/stats"), "stats reload after a mutation")
	require.Equal(t, 2, f.calls(http.MethodGet, "/api/Admin/users"))
}

func TestUsers_DeleteRefused(t *testing.T) {
	f := newUsersFixture(t)
	f.confirmer.Answer = false
	u := pages.NewUsers(f.env)
	require.NoError(t, u.Load(context.Background()))

	require.ErrorIs(t, u.Delete(context.Background(), 1), errors.ErrNotConfirmed)
	require.Equal(t, []string{"Delete Bea? This cannot be undone."}, f.confirmer.Prompts())
	require.Zero(t, f.calls(http.MethodDelete, "/api/Admin/users/1"))
}
