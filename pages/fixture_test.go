package pages_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-admin-console/apiclient"
	"github.com/jrsteele09/go-admin-console/pages"
	"github.com/jrsteele09/go-admin-console/sessions"
	"github.com/jrsteele09/go-admin-console/storage"
	"github.com/jrsteele09/go-admin-console/ui"
	"github.com/jrsteele09/go-admin-console/ui/uitest"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

const testToken = "opaque-admin-token"

type request struct {
	Method string
	Path   string
	Query  string
	Body   string
	Auth   string
}

type fixture struct {
	mux       *http.ServeMux
	server    *httptest.Server
	local     *storage.MemoryArea
	store     *sessions.Store
	notifier  *uitest.Notifier
	nav       *uitest.Navigator
	confirmer *uitest.Confirmer
	env       *pages.Env

	mu       sync.Mutex
	requests []request
}

// newFixture starts a backend serving mux and an env logged in with token. An empty token
// means no session.
func newFixture(t *testing.T, token string) *fixture {
	t.Helper()
	f := &fixture{
		mux:       http.NewServeMux(),
		local:     storage.NewMemoryArea(),
		notifier:  &uitest.Notifier{},
		nav:       &uitest.Navigator{},
		confirmer: &uitest.Confirmer{Answer: true},
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
			Auth:   r.Header.Get("Authorization"),
		})
		f.mu.Unlock()
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.server.Close)

	redirector := ui.NewRedirector(f.nav)
	t.Cleanup(redirector.Stop)
	f.store = sessions.NewStore(f.local, storage.NewMemoryArea(), f.notifier, redirector,
		sessions.WithClock(func() time.Time { return testNow }))
	if token != "" {
		require.NoError(t, f.store.Save(token, sessions.User{Username: "admin", Role: "admin"}, true))
	}

	client := apiclient.New(f.server.URL+"/api", f.store)
	f.env = pages.NewEnv(client, f.store,
		pages.WithConfirmer(f.confirmer),
		pages.WithNowTime(func() time.Time { return testNow }))
	return f
}

// handle registers a JSON reply for pattern, e.g. "GET /api/Categories".
func (f *fixture) handle(pattern string, status int, body string) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (f *fixture) recorded() []request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]request(nil), f.requests...)
}

// calls counts the requests matching method and path.
func (f *fixture) calls(method, path string) int {
	n := 0
	for _, r := range f.recorded() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// last returns the most recent request matching method and path.
func (f *fixture) last(t *testing.T, method, path string) request {
	t.Helper()
	reqs := f.recorded()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i]
		}
	}
	t.Fatalf("no %s %s request", method, path)
	return request{}
}

func (f *fixture) lastNote(t *testing.T) uitest.Note {
	t.Helper()
	note, ok := f.notifier.Last()
	require.True(t, ok, "expected a notification")
	return note
}

func decodeBody(t *testing.T, r request) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.Body), &m))
	return m
}
