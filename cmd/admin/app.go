package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jrsteele09/go-admin-console/apiclient"
	"github.com/jrsteele09/go-admin-console/auth"
	"github.com/jrsteele09/go-admin-console/internal/config"
	"github.com/jrsteele09/go-admin-console/internal/logging"
	"github.com/jrsteele09/go-admin-console/pages"
	"github.com/jrsteele09/go-admin-console/render"
	"github.com/jrsteele09/go-admin-console/sessions"
	"github.com/jrsteele09/go-admin-console/storage"
	"github.com/jrsteele09/go-admin-console/ui"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const localStorageFile = "local-storage.json"

// app is the wired console: one session store, one client and one notifier shared by every
// command of a process.
type app struct {
	cfg      config.Config
	in       io.Reader
	out      io.Writer
	logger   zerolog.Logger
	notes    *ui.Notifications
	store    *sessions.Store
	client   *apiclient.Client
	env      *pages.Env
	auth     *auth.Authenticator
	renderer *render.Renderer
	closers  []io.Closer
}

func newApp(cfg config.Config, in io.Reader, out, logOut io.Writer) (*app, error) {
	a := &app{cfg: cfg, in: in, out: out}
	a.logger = logging.New(logOut, cfg.GetLogLevel(), cfg.GetEnv())

	local, err := a.localArea()
	if err != nil {
		return nil, err
	}

	color := isTerminal(out)
	a.notes = ui.NewNotifications(out, ui.Policy(cfg.GetNotificationPolicy()), cfg.GetNotificationTimeout(),
		ui.WithColor(color), ui.WithNotificationLogger(a.logger))
	a.closers = append(a.closers, closerFunc(a.notes.Close))

	redirector := ui.NewRedirector(ui.NavigatorFunc(func(page ui.Page) {
		fmt.Fprintf(out, "-> next: admin %s\n", page)
	}))
	a.store = sessions.NewStore(local, storage.NewMemoryArea(), a.notes, redirector,
		sessions.WithSessionConfig(cfg), sessions.WithLogger(a.logger))
	a.client = apiclient.New(cfg.GetAPIBaseURL(), a.store, apiclient.WithLogger(a.logger))

	loading := ui.NewLoading(func(visible bool) {
		if visible {
			a.logger.Debug().Msg("loading")
		}
	})
	a.env = pages.NewEnv(a.client, a.store,
		pages.WithConfirmer(ui.NewPromptConfirmer(in, out)),
		pages.WithLoading(loading),
		pages.WithLogger(a.logger))

	authOpts := []auth.AuthenticatorOption{
		auth.WithLoading(loading),
		auth.WithRedirectDelay(cfg.GetLoginRedirectDelay()),
		auth.WithLogger(a.logger),
	}
	if cfg.GetAllowDemoLogin() {
		demo, err := auth.NewDemoCredentials(cfg.GetDemoUsername(), cfg.GetDemoPassword())
		if err != nil {
			return nil, fmt.Errorf("newApp NewDemoCredentials: %w", err)
		}
		authOpts = append(authOpts, auth.WithDemoCredentials(demo))
	}
	a.auth = auth.NewAuthenticator(a.client, a.store, authOpts...)
	a.renderer = render.New(render.WithColor(color))
	return a, nil
}

// localArea picks Redis when a URL is configured and the data folder file otherwise.
func (a *app) localArea() (storage.Area, error) {
	if url := a.cfg.GetRedisURL(); url != "" {
		area, err := storage.NewRedisArea(storage.RedisAreaOptions{URL: url})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, area)
		return area, nil
	}
	if err := os.MkdirAll(a.cfg.GetDataFolder(), 0o700); err != nil {
		return nil, fmt.Errorf("localArea MkdirAll: %w", err)
	}
	return storage.NewFileArea(filepath.Join(a.cfg.GetDataFolder(), localStorageFile)), nil
}

// close fires a pending redirect so the user sees where to go next, then releases resources.
func (a *app) close() {
	a.store.FlushRedirect()
	a.store.Redirector().Stop()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn().Err(err).Msg("close failed")
		}
	}
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
