package config

import (
	"fmt"
	"time"
)

const (
	MalformedTokenFailOpen   = "fail-open"
	MalformedTokenFailClosed = "fail-closed"
)

type SessionConfig interface {
	GetAllowDemoLogin() bool
	GetDemoUsername() string
	GetDemoPassword() string
	GetDemoTokenLifetime() time.Duration
	GetMalformedTokenPolicy() string
	GetLogoutRedirectDelay() time.Duration
	GetLoginRedirectDelay() time.Duration
}

type Session struct {
	AllowDemoLogin       bool          `env:"ADMIN_DEMO_LOGIN" envDefault:"true"`
	DemoUsername         string        `env:"ADMIN_DEMO_USERNAME" envDefault:"admin"`
	DemoPassword         string        `env:"ADMIN_DEMO_PASSWORD" envDefault:"admin123"`
	DemoTokenLifetime    time.Duration `env:"ADMIN_DEMO_TOKEN_LIFETIME" envDefault:"24h"`
	MalformedTokenPolicy string        `env:"ADMIN_MALFORMED_TOKEN_POLICY" envDefault:"fail-open"`
	LogoutRedirectDelay  time.Duration `env:"ADMIN_LOGOUT_REDIRECT_DELAY" envDefault:"2s"`
	LoginRedirectDelay   time.Duration `env:"ADMIN_LOGIN_REDIRECT_DELAY" envDefault:"1500ms"`
}

var _ SessionConfig = Session{}

func (s Session) GetAllowDemoLogin() bool {
	return s.AllowDemoLogin
}

func (s Session) GetDemoUsername() string {
	return s.DemoUsername
}

func (s Session) GetDemoPassword() string {
	return s.DemoPassword
}

func (s Session) GetDemoTokenLifetime() time.Duration {
	return s.DemoTokenLifetime
}

// GetMalformedTokenPolicy decides whether an undecodable signed token counts as valid
// (fail-open) or expired (fail-closed).
func (s Session) GetMalformedTokenPolicy() string {
	return s.MalformedTokenPolicy
}

func (s Session) GetLogoutRedirectDelay() time.Duration {
	return s.LogoutRedirectDelay
}

func (s Session) GetLoginRedirectDelay() time.Duration {
	return s.LoginRedirectDelay
}

func (s Session) validate() error {
	switch s.MalformedTokenPolicy {
	case MalformedTokenFailOpen, MalformedTokenFailClosed:
	default:
		return fmt.Errorf("ADMIN_MALFORMED_TOKEN_POLICY must be %q or %q, got %q",
			MalformedTokenFailOpen, MalformedTokenFailClosed, s.MalformedTokenPolicy)
	}
	if s.DemoTokenLifetime <= 0 {
		return fmt.Errorf("ADMIN_DEMO_TOKEN_LIFETIME must be positive, got %s", s.DemoTokenLifetime)
	}
	return nil
}
