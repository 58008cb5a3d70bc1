package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Notifier shows transient user-visible messages.
type Notifier interface {
	Notify(message string, kind Kind)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string, kind Kind)

func (f NotifierFunc) Notify(message string, kind Kind) { f(message, kind) }

// Policy decides what happens to visible notifications when a new one arrives.
type Policy string

const (
	// PolicyReplace dismisses whatever is visible before showing the new notification.
	PolicyReplace Policy = "replace"
	// PolicyQueue stacks notifications; each one is dismissed by its own timer.
	PolicyQueue Policy = "queue"
)

// Notification is a visible message.
type Notification struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
}

type activeNotification struct {
	Notification
	timer *time.Timer
}

// Notifications is the shared Notifier. Messages are written to out as they arrive and stay
// in the active set until their timeout elapses.
type Notifications struct {
	mu      sync.Mutex
	out     io.Writer
	policy  Policy
	timeout time.Duration
	color   bool
	logger  zerolog.Logger
	nowFunc func() time.Time
	active  []*activeNotification
}

var _ Notifier = (*Notifications)(nil)

type NotificationsOption func(*Notifications)

func WithColor(enabled bool) NotificationsOption {
	return func(n *Notifications) {
		n.color = enabled
	}
}

func WithNotificationLogger(logger zerolog.Logger) NotificationsOption {
	return func(n *Notifications) {
		n.logger = logger
	}
}

func WithNotificationClock(now func() time.Time) NotificationsOption {
	return func(n *Notifications) {
		n.nowFunc = now
	}
}

// NewNotifications creates a notifier writing to out (nil discards output).
func NewNotifications(out io.Writer, policy Policy, timeout time.Duration, options ...NotificationsOption) *Notifications {
	n := &Notifications{
		out:     out,
		policy:  policy,
		timeout: timeout,
		logger:  zerolog.Nop(),
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(n)
	}
	if n.policy == "" {
		n.policy = PolicyReplace
	}
	if n.timeout <= 0 {
		n.timeout = 4 * time.Second
	}
	return n
}

func (n *Notifications) Notify(message string, kind Kind) {
	note := &activeNotification{
		Notification: Notification{
			ID:        uuid.NewString(),
			Message:   message,
			Kind:      kind,
			CreatedAt: n.nowFunc(),
		},
	}

	n.mu.Lock()
	if n.policy == PolicyReplace {
		for _, a := range n.active {
			a.timer.Stop()
		}
		n.active = n.active[:0]
	}
	note.timer = time.AfterFunc(n.timeout, func() { n.Dismiss(note.ID) })
	n.active = append(n.active, note)
	n.mu.Unlock()

	n.logger.Debug().Str("kind", string(kind)).Str("id", note.ID).Msg(message)

	if n.out != nil {
		line := fmt.Sprintf("%s %s", kindIcons[kind], message)
		fmt.Fprintln(n.out, Colorize(n.color, kindColors[kind], line))
	}
}

// Dismiss removes a notification before its timeout.
func (n *Notifications) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, a := range n.active {
		if a.ID == id {
			a.timer.Stop()
			n.active = append(n.active[:i], n.active[i+1:]...)
			return
		}
	}
}

// Active returns the currently visible notifications, oldest first.
func (n *Notifications) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	visible := make([]Notification, 0, len(n.active))
	for _, a := range n.active {
		visible = append(visible, a.Notification)
	}
	return visible
}

// Close stops all pending dismiss timers.
func (n *Notifications) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, a := range n.active {
		a.timer.Stop()
	}
	n.active = nil
}
