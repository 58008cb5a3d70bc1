package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/apiclient"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/jrsteele09/go-admin-console/ui"
	"golang.org/x/sync/errgroup"
)

const (
	adminUsersEndpoint      = "/Admin/users"
	adminUsersStatsEndpoint = "/Admin/users/stats"
	usersPageSize           = 20

	defaultSearchDebounce = 500 * time.Millisecond
)

// User status filter values understood by the backend.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

type UsersState struct {
	Users      []adminmodel.User
	Stats      adminmodel.UserStats
	Search     string
	Status     string
	Sort       adminmodel.UserSort
	Pagination adminmodel.Pagination
}

// Users manages the user administration page. Searches typed in quick succession are
// debounced into one request.
type Users struct {
	env       *Env
	debouncer *ui.Debouncer
	mu        sync.Mutex
	state     UsersState
}

type UsersOption func(*Users)

// WithSearchDebounce sets how long typing must pause before a search is sent.
func WithSearchDebounce(d time.Duration) UsersOption {
	return func(u *Users) {
		u.debouncer = ui.NewDebouncer(d)
	}
}

func NewUsers(env *Env, options ...UsersOption) *Users {
	u := &Users{
		env:       env,
		debouncer: ui.NewDebouncer(defaultSearchDebounce),
		state: UsersState{
			Sort:       adminmodel.UserSortNewest,
			Pagination: adminmodel.Pagination{CurrentPage: 1, TotalPages: 1, PageSize: usersPageSize},
		},
	}
	for _, opt := range options {
		opt(u)
	}
	return u
}

func (u *Users) State() UsersState {
	u.mu.Lock()
	defer u.mu.Unlock()
	s := u.state
	s.Users = append([]adminmodel.User(nil), u.state.Users...)
	adminmodel.SortUsers(s.Users, s.Sort)
	return s
}

func (u *Users) Open(ctx context.Context) error {
	if err := u.env.open(); err != nil {
		return err
	}
	return u.Load(ctx)
}

// Load fetches the statistics and the current page of users together. Nothing is kept unless
// both arrive.
func (u *Users) Load(ctx context.Context) error {
	done := u.env.busy()
	defer done()

	u.mu.Lock()
	query := u.query()
	u.mu.Unlock()

	var (
		stats adminmodel.UserStats
		page  usersPage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = u.fetchStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		page, err = u.fetchUsers(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return u.env.fail(err, "Failed to load users")
	}

	u.mu.Lock()
	u.state.Stats = stats
	u.commit(page)
	u.mu.Unlock()
	return nil
}

// usersQuery is what selects one page of users on the server.
type usersQuery struct {
	page   int
	search string
	status string
}

type usersPage struct {
	users      []adminmodel.User
	pagination adminmodel.Pagination
}

// query must be called with mu held.
func (u *Users) query() usersQuery {
	return usersQuery{page: u.state.Pagination.CurrentPage, search: u.state.Search, status: u.state.Status}
}

// commit must be called with mu held.
func (u *Users) commit(p usersPage) {
	u.state.Users = p.users
	u.state.Pagination = p.pagination
}

func (u *Users) fetchStats(ctx context.Context) (adminmodel.UserStats, error) {
	r, err := u.env.getObject(ctx, adminUsersStatsEndpoint)
	if err != nil {
		return adminmodel.UserStats{}, err
	}
	return adminmodel.NormalizeUserStats(r), nil
}

func (u *Users) fetchUsers(ctx context.Context, q usersQuery) (usersPage, error) {
	items, resp, err := u.env.getList(ctx, adminUsersEndpoint, []string{"data.users", "users"},
		apiclient.WithQuery("page", strconv.Itoa(q.page)),
		apiclient.WithQuery("pageSize", strconv.Itoa(usersPageSize)),
		apiclient.WithQuery("search", q.search),
		apiclient.WithQuery("status", q.status))
	if err != nil {
		return usersPage{}, err
	}
	pagination := adminmodel.NormalizePagination(resp.JSON().Get("data.pagination"))
	pagination.CurrentPage = q.page
	pagination.PageSize = usersPageSize
	return usersPage{users: adminmodel.NormalizeUsers(items), pagination: pagination}, nil
}

// reloadUsers fetches page of the current filter. The page number only moves when the page
// arrives.
func (u *Users) reloadUsers(ctx context.Context, page int) error {
	done := u.env.busy()
	defer done()

	u.mu.Lock()
	q := u.query()
	u.mu.Unlock()
	q.page = page

	p, err := u.fetchUsers(ctx, q)
	if err != nil {
		return u.env.fail(err, "Failed to load users")
	}
	u.mu.Lock()
	u.commit(p)
	u.mu.Unlock()
	return nil
}

// Search sends the query at once and goes back to the first page.
func (u *Users) Search(ctx context.Context, query string) error {
	u.mu.Lock()
	u.state.Search = strings.TrimSpace(query)
	u.mu.Unlock()
	return u.reloadUsers(ctx, 1)
}

// SearchDebounced records the query and sends it once typing pauses. Only the last query of a
// burst is sent; onDone, if set, receives its result.
func (u *Users) SearchDebounced(ctx context.Context, query string, onDone func(error)) {
	u.debouncer.Call(func() {
		err := u.Search(ctx, query)
		if onDone != nil {
			onDone(err)
		}
	})
}

// SetStatus filters by active/inactive; empty shows everyone.
func (u *Users) SetStatus(ctx context.Context, status string) error {
	u.mu.Lock()
	u.state.Status = status
	u.mu.Unlock()
	return u.reloadUsers(ctx, 1)
}

// SetSort orders the loaded page. It does not refetch.
func (u *Users) SetSort(by adminmodel.UserSort) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.Sort = by
}

func (u *Users) NextPage(ctx context.Context) error {
	u.mu.Lock()
	if !u.state.Pagination.HasNext() {
		u.mu.Unlock()
		return errors.Wrapf(errors.ErrValidation, "already on the last page")
	}
	next := u.state.Pagination.CurrentPage + 1
	u.mu.Unlock()
	return u.reloadUsers(ctx, next)
}

func (u *Users) PrevPage(ctx context.Context) error {
	u.mu.Lock()
	if !u.state.Pagination.HasPrev() {
		u.mu.Unlock()
		return errors.Wrapf(errors.ErrValidation, "already on the first page")
	}
	prev := u.state.Pagination.CurrentPage - 1
	u.mu.Unlock()
	return u.reloadUsers(ctx, prev)
}

// Detail fetches one user with activity statistics and posts.
func (u *Users) Detail(ctx context.Context, id int64) (adminmodel.UserDetail, error) {
	if err := u.env.open(); err != nil {
		return adminmodel.UserDetail{}, err
	}
	done := u.env.busy()
	defer done()

	r, err := u.env.getObject(ctx, fmt.Sprintf("%s/%d", adminUsersEndpoint, id))
	if err != nil {
		return adminmodel.UserDetail{}, u.env.fail(err, "Failed to load user")
	}
	return adminmodel.NormalizeUserDetail(r), nil
}

func (u *Users) find(id int64) (adminmodel.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.state.Users {
		if user.ID == id {
			return user, true
		}
	}
	return adminmodel.User{}, false
}

func (u *Users) displayName(id int64) string {
	if user, ok := u.find(id); ok {
		return user.Name
	}
	return fmt.Sprintf("user %d", id)
}

// ToggleStatus activates or deactivates a user after confirmation, then reloads the list and
// the statistics.
func (u *Users) ToggleStatus(ctx context.Context, id int64) error {
	verb := "deactivate"
	if user, ok := u.find(id); ok && !user.IsActive {
		verb = "activate"
	}
	if err := u.env.confirm(fmt.Sprintf("Really %s %s?", verb, u.displayName(id))); err != nil {
		return err
	}

	done := u.env.busy()
	_, err := u.env.Client.Put(ctx, fmt.Sprintf("%s/%d/toggle-status", adminUsersEndpoint, id), nil)
	done()
	if err != nil {
		return u.env.fail(err, "Failed to change user status")
	}
	u.env.success("User status changed")
	return u.Load(ctx)
}

func (u *Users) Delete(ctx context.Context, id int64) error {
	if err := u.env.confirm(fmt.Sprintf("Delete %s? This cannot be undone.", u.displayName(id))); err != nil {
		return err
	}

	done := u.env.busy()
	_, err := u.env.Client.Delete(ctx, fmt.Sprintf("%s/%d", adminUsersEndpoint, id))
	done()
	if err != nil {
		return u.env.fail(err, "Failed to delete user")
	}
	u.env.success("User deleted")
	return u.Load(ctx)
}

// Close stops a pending debounced search.
func (u *Users) Close() {
	u.debouncer.Stop()
}
