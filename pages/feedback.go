package pages

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jrsteele09/go-admin-console/adminmodel"
	"github.com/jrsteele09/go-admin-console/apiclient"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/jrsteele09/go-admin-console/ui"
	"golang.org/x/sync/errgroup"
)

const (
	feedbackEndpoint      = "/UserFeedback"
	feedbackAdminEndpoint = "/UserFeedback/admin"
	feedbackStatsEndpoint = "/UserFeedback/admin/stats"
)

type FeedbackState struct {
	Items  []adminmodel.Feedback
	Stats  adminmodel.FeedbackStats
	Filter adminmodel.FeedbackFilter
	Demo   bool
}

// Feedback manages the user feedback inbox. When the backend cannot be reached it can switch
// to demo mode, where built-in samples are filtered and edited locally.
type Feedback struct {
	env   *Env
	mu    sync.Mutex
	state FeedbackState
	demo  []adminmodel.Feedback
}

func NewFeedback(env *Env) *Feedback {
	return &Feedback{env: env}
}

func (f *Feedback) State() FeedbackState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Open verifies the session and the backend connection, then loads the inbox. A failed
// connection check is returned so the caller can offer demo mode.
func (f *Feedback) Open(ctx context.Context) error {
	if err := f.env.open(); err != nil {
		return err
	}
	if res := f.env.Client.Ping(ctx, feedbackStatsEndpoint); !res.OK() {
		return f.env.fail(res.Err, "Cannot connect to the backend")
	}
	return f.Refresh(ctx)
}

// EnterDemoMode replaces the inbox with sample feedback.
func (f *Feedback) EnterDemoMode() {
	f.mu.Lock()
	f.state.Demo = true
	f.demo = adminmodel.DemoFeedback(f.env.Now())
	f.applyDemoLocked()
	f.mu.Unlock()
	f.env.Notifier.Notify("Demo mode enabled, you are working with sample data.", ui.KindInfo)
}

func (f *Feedback) applyDemoLocked() {
	f.state.Items = adminmodel.FilterFeedback(f.demo, f.state.Filter)
	f.state.Stats = adminmodel.ComputeFeedbackStats(f.demo, f.env.Now())
}

// Refresh reloads the statistics and the filtered list.
func (f *Feedback) Refresh(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Demo {
		f.applyDemoLocked()
		f.mu.Unlock()
		return nil
	}
	filter := f.state.Filter
	f.mu.Unlock()

	done := f.env.busy()
	defer done()

	var (
		stats adminmodel.FeedbackStats
		items []adminmodel.Feedback
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := f.env.getObject(gctx, feedbackStatsEndpoint)
		if err != nil {
			return err
		}
		stats = adminmodel.NormalizeFeedbackStats(r)
		return nil
	})
	g.Go(func() error {
		list, _, err := f.env.getList(gctx, feedbackAdminEndpoint, []string{"feedbacks"},
			apiclient.WithQuery("status", filter.Status),
			apiclient.WithQuery("type", filter.Type),
			apiclient.WithQuery("search", filter.Search),
			apiclient.WithQuery("date", filter.DateParam()))
		if err != nil {
			return err
		}
		items = adminmodel.NormalizeFeedbacks(list)
		return nil
	})
	if err := g.Wait(); err != nil {
		return f.env.fail(err, "Failed to load feedback")
	}

	f.mu.Lock()
	f.state.Stats = stats
	f.state.Items = items
	f.mu.Unlock()
	return nil
}

// SetFilter changes the filter and refreshes.
func (f *Feedback) SetFilter(ctx context.Context, filter adminmodel.FeedbackFilter) error {
	filter.Search = strings.TrimSpace(filter.Search)
	f.mu.Lock()
	f.state.Filter = filter
	f.mu.Unlock()
	return f.Refresh(ctx)
}

// Respond sends an admin answer, optionally marking the feedback resolved.
func (f *Feedback) Respond(ctx context.Context, id int64, message string, resolve bool) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return f.env.fail(errors.Wrapf(errors.ErrValidation, "response message is required"), "Failed to send response")
	}

	if f.inDemo() {
		f.mu.Lock()
		err := f.updateDemoLocked(id, func(item *adminmodel.Feedback) {
			item.AdminResponse = message
			item.IsResolved = resolve
		})
		f.mu.Unlock()
		if err != nil {
			return f.env.fail(err, "Failed to send response")
		}
		f.env.success("Response recorded in demo mode")
		return nil
	}

	done := f.env.busy()
	_, err := f.env.Client.Post(ctx, fmt.Sprintf("%s/%d/respond", feedbackEndpoint, id),
		adminmodel.RespondInput{ResponseMessage: message, MarkAsResolved: resolve})
	done()
	if err != nil {
		return f.env.fail(err, "Failed to send response")
	}
	f.env.success("Response sent")
	return f.Refresh(ctx)
}

// Resolve marks feedback resolved after confirmation.
func (f *Feedback) Resolve(ctx context.Context, id int64) error {
	if err := f.env.confirm("Mark this feedback as resolved?"); err != nil {
		return err
	}

	if f.inDemo() {
		f.mu.Lock()
		err := f.updateDemoLocked(id, func(item *adminmodel.Feedback) { item.IsResolved = true })
		f.mu.Unlock()
		if err != nil {
			return f.env.fail(err, "Failed to resolve feedback")
		}
		f.env.success("Marked as resolved in demo mode")
		return nil
	}

	done := f.env.busy()
	_, err := f.env.Client.Put(ctx, fmt.Sprintf("%s/%d/resolve", feedbackEndpoint, id), nil)
	done()
	if err != nil {
		return f.env.fail(err, "Failed to resolve feedback")
	}
	f.env.success("Feedback marked as resolved")
	return f.Refresh(ctx)
}

// Find returns a feedback item from the current list.
func (f *Feedback) Find(id int64) (adminmodel.Feedback, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.state.Items {
		if item.ID == id {
			return item, true
		}
	}
	return adminmodel.Feedback{}, false
}

func (f *Feedback) inDemo() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Demo
}

func (f *Feedback) updateDemoLocked(id int64, fn func(*adminmodel.Feedback)) error {
	for i := range f.demo {
		if f.demo[i].ID == id {
			fn(&f.demo[i])
			f.applyDemoLocked()
			return nil
		}
	}
	return errors.Wrapf(errors.ErrNotFound, "feedback %d", id)
}
