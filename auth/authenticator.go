package auth

import (
	"context"
	"strings"
	"time"

	"github.com/jrsteele09/go-admin-console/apiclient"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/jrsteele09/go-admin-console/internal/utils"
	"github.com/jrsteele09/go-admin-console/sessions"
	"github.com/jrsteele09/go-admin-console/ui"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	loginEndpoint = "/Auth/admin-login"
	defaultRole   = "admin"

	defaultRedirectDelay = 1500 * time.Millisecond
)

// LoginResult describes a successful login.
type LoginResult struct {
	Token string
	User  sessions.User
	Demo  bool
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Authenticator performs the admin login against the backend, falling back to the demo account
// when the backend cannot be reached.
type Authenticator struct {
	client        *apiclient.Client
	store         *sessions.Store
	demo          *DemoCredentials
	loading       *ui.Loading
	redirectDelay time.Duration
	nowTime       func() time.Time
	logger        zerolog.Logger
}

type AuthenticatorOption func(*Authenticator)

// WithDemoCredentials enables the offline fallback account.
func WithDemoCredentials(demo *DemoCredentials) AuthenticatorOption {
	return func(a *Authenticator) {
		a.demo = demo
	}
}

func WithLoading(loading *ui.Loading) AuthenticatorOption {
	return func(a *Authenticator) {
		a.loading = loading
	}
}

// WithRedirectDelay sets how long the success message shows before going to the feedback page.
func WithRedirectDelay(d time.Duration) AuthenticatorOption {
	return func(a *Authenticator) {
		a.redirectDelay = d
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) AuthenticatorOption {
	return func(a *Authenticator) {
		a.nowTime = nowFunc
	}
}

func WithLogger(logger zerolog.Logger) AuthenticatorOption {
	return func(a *Authenticator) {
		a.logger = logger
	}
}

func NewAuthenticator(client *apiclient.Client, store *sessions.Store, options ...AuthenticatorOption) *Authenticator {
	a := &Authenticator{
		client:        client,
		store:         store,
		loading:       ui.NewLoading(nil),
		redirectDelay: defaultRedirectDelay,
		nowTime:       time.Now,
		logger:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// AlreadyLoggedIn sends a user holding a token straight to the feedback page.
func (a *Authenticator) AlreadyLoggedIn() bool {
	if a.store.GetToken() == "" {
		return false
	}
	a.store.Redirector().Now(ui.PageFeedback)
	return true
}

// Login exchanges credentials for a token and stores the session. remember selects the local
// storage area over the session area.
func (a *Authenticator) Login(ctx context.Context, username, password string, remember bool) (*LoginResult, error) {
	notifier := a.store.Notifier()
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		notifier.Notify("Username and password are required", ui.KindError)
		return nil, errors.Wrapf(errors.ErrValidation, "username and password are required")
	}

	done := a.loading.Begin()
	defer done()

	resp, err := a.client.Post(ctx, loginEndpoint, loginRequest{Username: username, Password: password}, apiclient.WithoutAuth())
	if unreachable(resp, err) {
		a.logger.Warn().Err(err).Msg("login backend unreachable")
		return a.demoLogin(username, password, remember, err)
	}
	if err != nil {
		a.logger.Info().Err(err).Str("username", username).Msg("login rejected")
		notifier.Notify("Invalid username or password", ui.KindError)
		return nil, errors.Wrapf(errors.ErrInvalidCredentials, "%v", err)
	}

	body := resp.JSON()
	token := body.Get("token").String()
	if !body.Get("success").Bool() || token == "" {
		notifier.Notify("Invalid username or password", ui.KindError)
		return nil, errors.ErrInvalidCredentials
	}

	user := sessions.User{
		Username:  utils.FirstNonEmpty(body.Get("user.username").String(), username),
		Role:      utils.FirstNonEmpty(body.Get("user.role").String(), defaultRole),
		LoginTime: a.nowTime().UTC(),
	}
	if err := a.store.Save(token, user, remember); err != nil {
		notifier.Notify("Could not store the session", ui.KindError)
		return nil, err
	}

	a.logger.Info().Str("username", user.Username).Bool("remember", remember).Msg("logged in")
	notifier.Notify("Login successful, redirecting...", ui.KindSuccess)
	a.store.Redirector().After(a.redirectDelay, ui.PageFeedback)
	return &LoginResult{Token: token, User: user}, nil
}

// unreachable is true when no usable answer came back: a transport failure, or a body that is
// not JSON at all whatever the status, such as a proxy's gateway error page.
func unreachable(resp *apiclient.Response, err error) bool {
	if errors.Is(err, errors.ErrTransport) {
		return true
	}
	var httpErr *errors.HTTPError
	if errors.As(err, &httpErr) {
		return !httpErr.JSONBody
	}
	return err == nil && !gjson.ValidBytes(resp.Body)
}

func (a *Authenticator) demoLogin(username, password string, remember bool, cause error) (*LoginResult, error) {
	notifier := a.store.Notifier()
	if !a.demo.Match(username, password) {
		notifier.Notify("Cannot reach the server", ui.KindError)
		if cause == nil {
			cause = errors.ErrPayloadShape
		}
		return nil, errors.Wrapf(errors.ErrTransport, "login: %v", cause)
	}

	now := a.nowTime()
	token := sessions.NewDemoToken(now)
	user := sessions.User{Username: username, IsDemo: true, LoginTime: now.UTC()}
	if err := a.store.Save(token, user, remember); err != nil {
		notifier.Notify("Could not store the session", ui.KindError)
		return nil, err
	}

	a.logger.Warn().Str("username", username).Msg("demo login")
	notifier.Notify("Demo login successful, redirecting...", ui.KindSuccess)
	a.store.Redirector().After(a.redirectDelay, ui.PageFeedback)
	return &LoginResult{Token: token, User: user, Demo: true}, nil
}

// Logout is the user initiated sign out.
func (a *Authenticator) Logout() {
	a.store.SignOut()
	a.logger.Info().Msg("logged out")
}
