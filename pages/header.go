package pages

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/apiclient"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

const notificationsEndpoint = "/admin/notifications"

// AdminNotification is an entry of the header notification panel.
type AdminNotification struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Unread  bool   `json:"unread"`
}

func normalizeAdminNotification(r gjson.Result) AdminNotification {
	return AdminNotification{
		ID:      r.Get("id").Int(),
		Title:   adminmodel.CleanText(r.Get("title").String()),
		Message: adminmodel.CleanText(r.Get("message").String()),
		Time:    r.Get("time").String(),
		Unread:  r.Get("unread").Bool() || r.Get("isUnread").Bool(),
	}
}

type HeaderState struct {
	Badges        adminmodel.BadgeCounts
	Notifications []AdminNotification
}

// Header keeps the navigation badge counts and the notification panel. Every count is fetched
// on its own and a failing one stays at zero. During a demo session a 401 does not end the
// session.
type Header struct {
	env   *Env
	mu    sync.Mutex
	state HeaderState
}

func NewHeader(env *Env) *Header {
	return &Header{env: env, state: HeaderState{Notifications: []AdminNotification{}}}
}

func (h *Header) State() HeaderState {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.state
	s.Notifications = append([]AdminNotification{}, h.state.Notifications...)
	return s
}

func (h *Header) requestOptions() []apiclient.RequestOption {
	if h.env.Session.IsDemo() {
		return []apiclient.RequestOption{apiclient.KeepSessionOn401()}
	}
	return nil
}

// Refresh reloads the badge counts and the notifications. It is the periodic refresh job and
// never fails: unavailable figures are logged and show as zero.
func (h *Header) Refresh(ctx context.Context) adminmodel.BadgeCounts {
	if h.env.Session.GetToken() == "" {
		return adminmodel.BadgeCounts{}
	}
	opts := h.requestOptions()

	var (
		counts        adminmodel.BadgeCounts
		notifications = []AdminNotification{}
	)
	count := func(what, endpoint, path string, dst *int) func() error {
		return func() error {
			resp, err := h.env.Client.Get(ctx, endpoint, opts...)
			if err != nil {
				h.tolerate(what, err)
				return nil
			}
			*dst = int(resp.JSON().Get(path).Int())
			return nil
		}
	}

	var g errgroup.Group
	g.Go(count("posts", "/Posts?status=all&page=1&pageSize=1", "data.pagination.totalCount", &counts.Posts))
	g.Go(count("feedback", feedbackStatsEndpoint, "pendingCount", &counts.PendingFeedback))
	g.Go(count("users", "/Users?page=1&pageSize=1", "totalCount", &counts.Users))
	g.Go(func() error {
		resp, err := h.env.Client.Get(ctx, notificationsEndpoint, opts...)
		if err != nil {
			h.tolerate("notifications", err)
			return nil
		}
		resp.JSON().Get("notifications").ForEach(func(_, r gjson.Result) bool {
			notifications = append(notifications, normalizeAdminNotification(r))
			return true
		})
		return nil
	})
	_ = g.Wait()

	for _, n := range notifications {
		if n.Unread {
			counts.Notifications++
		}
	}

	h.mu.Lock()
	h.state.Badges = counts
	h.state.Notifications = notifications
	h.mu.Unlock()
	return counts
}

func (h *Header) tolerate(what string, err error) {
	level := h.env.Logger.Warn()
	if errors.Is(err, errors.ErrAuthenticationExpired) {
		level = h.env.Logger.Debug()
	}
	level.Err(err).Str("badge", what).Msg("header figure unavailable")
}

// MarkAllRead marks every notification read on the backend and locally.
func (h *Header) MarkAllRead(ctx context.Context) error {
	_, err := h.env.Client.Put(ctx, notificationsEndpoint+"/mark-all-read", nil, h.requestOptions()...)
	if err != nil {
		return h.env.fail(err, "Failed to mark notifications as read")
	}

	h.mu.Lock()
	for i := range h.state.Notifications {
		h.state.Notifications[i].Unread = false
	}
	h.state.Badges.Notifications = 0
	h.mu.Unlock()
	h.env.success("All notifications marked as read")
	return nil
}
