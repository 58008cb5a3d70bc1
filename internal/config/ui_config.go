package config

import (
	"fmt"
	"time"
)

const (
	NotificationPolicyReplace = "replace"
	NotificationPolicyQueue   = "queue"
)

type UIConfig interface {
	GetNotificationTimeout() time.Duration
	GetNotificationPolicy() string
	GetSearchDebounce() time.Duration
}

type UI struct {
	NotificationTimeout time.Duration `env:"ADMIN_NOTIFICATION_TIMEOUT" envDefault:"4s"`
	NotificationPolicy  string        `env:"ADMIN_NOTIFICATION_POLICY" envDefault:"replace"`
	SearchDebounce      time.Duration `env:"ADMIN_SEARCH_DEBOUNCE" envDefault:"500ms"`
}

var _ UIConfig = UI{}

func (u UI) GetNotificationTimeout() time.Duration {
	return u.NotificationTimeout
}

func (u UI) GetNotificationPolicy() string {
	return u.NotificationPolicy
}

func (u UI) GetSearchDebounce() time.Duration {
	return u.SearchDebounce
}

func (u UI) validate() error {
	switch u.NotificationPolicy {
	case NotificationPolicyReplace, NotificationPolicyQueue:
		return nil
	}
	return fmt.Errorf("ADMIN_NOTIFICATION_POLICY must be %q or %q, got %q",
		NotificationPolicyReplace, NotificationPolicyQueue, u.NotificationPolicy)
}
