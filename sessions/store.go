package sessions

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jrsteele09/go-admin-console/internal/config"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/jrsteele09/go-admin-console/storage"
	"github.com/jrsteele09/go-admin-console/ui"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	defaultDemoTokenLifetime   = 24 * time.Hour
	defaultLogoutRedirectDelay = 2 * time.Second

	expiredMessage = "Your session has expired, please log in again."
)

// Store owns the bearer token and cached user profile. The local area holds "remember me"
// sessions and is consulted first; the session area holds everything else.
type Store struct {
	local       storage.Area
	session     storage.Area
	notifier    ui.Notifier
	redirector  *ui.Redirector
	logger      zerolog.Logger
	nowFunc     func() time.Time
	demoLife    time.Duration
	logoutDelay time.Duration
	failClosed  bool
}

type Option func(*Store)

// WithSessionConfig applies the demo token lifetime, logout delay and malformed token policy.
func WithSessionConfig(c config.SessionConfig) Option {
	return func(s *Store) {
		s.demoLife = c.GetDemoTokenLifetime()
		s.logoutDelay = c.GetLogoutRedirectDelay()
		s.failClosed = c.GetMalformedTokenPolicy() == config.MalformedTokenFailClosed
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.nowFunc = now
	}
}

// WithFailClosed makes undecodable signed tokens count as expired.
func WithFailClosed(failClosed bool) Option {
	return func(s *Store) {
		s.failClosed = failClosed
	}
}

// NewStore creates a session store over the two storage areas.
func NewStore(local, session storage.Area, notifier ui.Notifier, redirector *ui.Redirector, options ...Option) *Store {
	s := &Store{
		local:       local,
		session:     session,
		notifier:    notifier,
		redirector:  redirector,
		logger:      zerolog.Nop(),
		nowFunc:     time.Now,
		demoLife:    defaultDemoTokenLifetime,
		logoutDelay: defaultLogoutRedirectDelay,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// GetToken returns the stored token, local area first. Empty means not logged in.
func (s *Store) GetToken() string {
	return s.lookup(TokenKey)
}

func (s *Store) lookup(key string) string {
	for _, area := range s.areas() {
		v, ok, err := area.Get(key)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("storage read failed")
			continue
		}
		if ok && v != "" {
			return v
		}
	}
	return ""
}

func (s *Store) areas() []storage.Area {
	return []storage.Area{s.local, s.session}
}

// IsExpired applies the expiry rule for the token's kind.
func (s *Store) IsExpired(token string) bool {
	info := InspectToken(token, s.demoLife)
	if info.Malformed {
		s.logger.Warn().Bool("failClosed", s.failClosed).Msg("token payload could not be decoded")
	}
	return info.expired(s.nowFunc(), s.failClosed)
}

// IsDemo reports whether the current session uses a demo token.
func (s *Store) IsDemo() bool {
	return ClassifyToken(s.GetToken()) == KindDemo
}

// Logout clears both areas, shows an error notification and schedules the redirect to login.
func (s *Store) Logout() {
	s.clear()
	s.notifier.Notify(expiredMessage, ui.KindError)
	s.redirector.After(s.logoutDelay, ui.PageLogin)
}

// SignOut clears both areas and goes to the login page at once. It is the user initiated
// counterpart of Logout.
func (s *Store) SignOut() {
	s.clear()
	s.redirector.Now(ui.PageLogin)
}

func (s *Store) clear() {
	for _, area := range s.areas() {
		for _, key := range []string{TokenKey, UserKey} {
			if err := area.Remove(key); err != nil {
				s.logger.Error().Err(err).Str("key", key).Msg("storage remove failed")
			}
		}
	}
}

// CheckAuth gates every page open. Without a token it redirects to login immediately; an
// expired token goes through Logout.
func (s *Store) CheckAuth() bool {
	token := s.GetToken()
	if token == "" {
		s.redirector.Now(ui.PageLogin)
		return false
	}
	if s.IsExpired(token) {
		s.Logout()
		return false
	}
	return true
}

// RequireAuth is CheckAuth returning the reason as an error.
func (s *Store) RequireAuth() error {
	token := s.GetToken()
	if !s.CheckAuth() {
		if token == "" {
			return errors.ErrAuthenticationMissing
		}
		return errors.ErrAuthenticationExpired
	}
	return nil
}

// Save stores a new session in the local area when remember is set and in the session area
// otherwise. The other area is cleared so that the new token is the one found first.
func (s *Store) Save(token string, user User, remember bool) error {
	if token == "" {
		return errors.Wrapf(errors.ErrValidation, "token is required")
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return errors.Wrapf(err, "json.Marshal user")
	}

	target, other := s.session, s.local
	if remember {
		target, other = s.local, s.session
	}
	for _, key := range []string{TokenKey, UserKey} {
		if err := other.Remove(key); err != nil {
			return errors.Wrapf(err, "remove %s", key)
		}
	}
	if err := target.Set(TokenKey, token); err != nil {
		return errors.Wrapf(err, "store %s", TokenKey)
	}
	if err := target.Set(UserKey, string(userJSON)); err != nil {
		return errors.Wrapf(err, "store %s", UserKey)
	}
	return nil
}

// CurrentUser returns the cached profile. A missing or unreadable profile reports false.
func (s *Store) CurrentUser() (User, bool) {
	raw := s.lookup(UserKey)
	if raw == "" {
		return User{}, false
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Warn().Err(err).Msg("cached user profile is not valid JSON")
		return User{}, false
	}
	return u, u.Username != ""
}

// Current returns the full session view, or false when there is no token.
func (s *Store) Current() (Session, bool) {
	token := s.GetToken()
	if token == "" {
		return Session{}, false
	}
	info := InspectToken(token, s.demoLife)
	user, _ := s.CurrentUser()
	return Session{
		Token:     token,
		Kind:      info.Kind,
		IssuedAt:  info.IssuedAt,
		ExpiresAt: info.ExpiresAt,
		User:      user,
		Malformed: info.Malformed,
	}, true
}

// OAuthToken returns the stored token as a bearer oauth2 token.
func (s *Store) OAuthToken() (*oauth2.Token, bool) {
	token := s.GetToken()
	if token == "" {
		return nil, false
	}
	info := InspectToken(token, s.demoLife)
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer", Expiry: info.ExpiresAt}, true
}

// AuthHeaders returns the default request headers: JSON content type plus the bearer token
// when one is stored.
func (s *Store) AuthHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	if tok, ok := s.OAuthToken(); ok {
		h.Set("Authorization", tok.Type()+" "+tok.AccessToken)
	}
	return h
}

// FlushRedirect fires a pending delayed redirect now. The CLI calls it before exiting.
func (s *Store) FlushRedirect() bool {
	return s.redirector.Flush()
}

// Redirector exposes the redirector shared with the pages.
func (s *Store) Redirector() *ui.Redirector {
	return s.redirector
}

// Notifier exposes the notifier shared with the pages.
func (s *Store) Notifier() ui.Notifier {
	return s.notifier
}
