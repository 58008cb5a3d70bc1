// Package pages holds the page controllers of the console. Each controller owns an explicit
// state object, talks to the backend through the shared API client and reports failures to the
// shared notifier. Rendering lives in the render package.
package pages

import (
	"context"
	"time"

	"github.com/jrsteele09/go-admin-console/apiclient"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/jrsteele09/go-admin-console/sessions"
	"github.com/jrsteele09/go-admin-console/ui"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// Env carries the collaborators every controller shares.
type Env struct {
	Client    *apiclient.Client
	Session   *sessions.Store
	Notifier  ui.Notifier
	Confirmer ui.Confirmer
	Loading   *ui.Loading
	Logger    zerolog.Logger
	Now       func() time.Time
}

type EnvOption func(*Env)

// WithConfirmer sets who approves destructive actions. Without one every action is refused.
func WithConfirmer(c ui.Confirmer) EnvOption {
	return func(e *Env) {
		e.Confirmer = c
	}
}

// WithNotifier overrides the notifier taken from the session store.
func WithNotifier(n ui.Notifier) EnvOption {
	return func(e *Env) {
		e.Notifier = n
	}
}

func WithLoading(l *ui.Loading) EnvOption {
	return func(e *Env) {
		e.Loading = l
	}
}

func WithLogger(logger zerolog.Logger) EnvOption {
	return func(e *Env) {
		e.Logger = logger
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = nowFunc
	}
}

func NewEnv(client *apiclient.Client, session *sessions.Store, options ...EnvOption) *Env {
	e := &Env{
		Client:    client,
		Session:   session,
		Notifier:  session.Notifier(),
		Confirmer: ui.NeverConfirm,
		Loading:   ui.NewLoading(nil),
		Logger:    zerolog.Nop(),
		Now:       time.Now,
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// open gates a page: it redirects to login and fails when there is no valid session.
func (e *Env) open() error {
	return e.Session.RequireAuth()
}

func (e *Env) busy() func() {
	return e.Loading.Begin()
}

// confirm asks for approval and returns ErrNotConfirmed on refusal.
func (e *Env) confirm(prompt string) error {
	if e.Confirmer.Confirm(prompt) {
		return nil
	}
	return errors.ErrNotConfirmed
}

func (e *Env) success(message string) {
	e.Notifier.Notify(message, ui.KindSuccess)
}

// fail logs err and shows it as an error notification prefixed with what was being done. An
// expired session is not shown again since the session store already announced it.
func (e *Env) fail(err error, doing string) error {
	e.Logger.Error().Err(err).Str("action", doing).Msg("page action failed")
	if !errors.Is(err, errors.ErrAuthenticationExpired) && !errors.Is(err, errors.ErrNotConfirmed) {
		e.Notifier.Notify(doing+": "+Describe(err), ui.KindError)
	}
	return err
}

// Describe turns err into a message for the user.
func Describe(err error) string {
	var httpErr *errors.HTTPError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &httpErr):
		if httpErr.Message != "" {
			return httpErr.Message
		}
		return httpErr.Error()
	case errors.Is(err, errors.ErrTransport):
		return "cannot reach the server"
	case errors.Is(err, errors.ErrAuthenticationExpired), errors.Is(err, errors.ErrAuthenticationMissing):
		return "please log in again"
	}
	return err.Error()
}

// getList fetches endpoint and unwraps the list found under keys or the usual envelopes.
func (e *Env) getList(ctx context.Context, endpoint string, keys []string, options ...apiclient.RequestOption) ([]gjson.Result, *apiclient.Response, error) {
	resp, err := e.Client.Get(ctx, endpoint, options...)
	if err != nil {
		return nil, nil, err
	}
	items, ok := apiclient.UnwrapList(resp.Body, keys...)
	if !ok {
		e.Logger.Warn().Str("endpoint", endpoint).Msg("unrecognised list payload, showing nothing")
	}
	return items, resp, nil
}

// getObject fetches endpoint and unwraps a {data:{...}} envelope when there is one.
func (e *Env) getObject(ctx context.Context, endpoint string, options ...apiclient.RequestOption) (gjson.Result, error) {
	resp, err := e.Client.Get(ctx, endpoint, options...)
	if err != nil {
		return gjson.Result{}, err
	}
	return apiclient.UnwrapObject(resp.Body), nil
}
