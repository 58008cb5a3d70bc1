package sessions_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-admin-console/internal/config"
	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/jrsteele09/go-admin-console/sessions"
	"github.com/jrsteele09/go-admin-console/storage"
	"github.com/jrsteele09/go-admin-console/ui"
	"github.com/jrsteele09/go-admin-console/ui/uitest"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	local    *storage.MemoryArea
	session  *storage.MemoryArea
	notifier *uitest.Notifier
	nav      *uitest.Navigator
	store    *sessions.Store
}

func newFixture(t *testing.T, options ...sessions.Option) *fixture {
	t.Helper()
	f := &fixture{
		local:    storage.NewMemoryArea(),
		session:  storage.NewMemoryArea(),
		notifier: &uitest.Notifier{},
		nav:      &uitest.Navigator{},
	}
	redirector := ui.NewRedirector(f.nav)
	t.Cleanup(redirector.Stop)
	options = append([]sessions.Option{sessions.WithClock(func() time.Time { return testNow })}, options...)
	f.store = sessions.NewStore(f.local, f.session, f.notifier, redirector, options...)
	return f
}

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestIsExpired_DemoToken(t *testing.T) {
	f := newFixture(t)
	issued := testNow.UnixMilli()

	tests := []struct {
		name    string
		ageMS   int64
		expired bool
	}{
		{"fresh", 0, false},
		{"one hour", 3_600_000, false},
		{"exactly 24h", 86_400_000, false},
		{"24h plus 1ms", 86_400_001, true},
		{"two days", 2 * 86_400_000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := sessions.NewDemoToken(time.UnixMilli(issued - tt.ageMS))
			require.Equal(t, tt.expired, f.store.IsExpired(token))
		})
	}

	t.Run("non numeric timestamp never expires", func(t *testing.T) {
		require.False(t, f.store.IsExpired("demo-token-abc"))
	})
}

func TestIsExpired_SignedToken(t *testing.T) {
	f := newFixture(t)

	t.Run("future exp", func(t *testing.T) {
		token := signedToken(t, jwtlib.MapClaims{"exp": testNow.Add(time.Hour).Unix()})
		require.False(t, f.store.IsExpired(token))
	})

	t.Run("exp equal to now", func(t *testing.T) {
		token := signedToken(t, jwtlib.MapClaims{"exp": testNow.Unix()})
		require.False(t, f.store.IsExpired(token))
	})

	t.Run("past exp", func(t *testing.T) {
		token := signedToken(t, jwtlib.MapClaims{"exp": testNow.Add(-time.Second).Unix()})
		require.True(t, f.store.IsExpired(token))
	})

	t.Run("no exp", func(t *testing.T) {
		token := signedToken(t, jwtlib.MapClaims{"sub": "admin"})
		require.False(t, f.store.IsExpired(token))
	})

	t.Run("unknown alg still decodes", func(t *testing.T) {
		// header {"alg":"XX1","typ":"JWT"}, payload {"exp":1}
		token := "eyJhbGciOiJYWDEiLCJ0eXAiOiJKV1QifQ.eyJleHAiOjF9.c2ln"
		require.True(t, f.store.IsExpired(token))
	})

	t.Run("only the payload segment is decoded", func(t *testing.T) {
		// payload {"exp":1}
		require.True(t, f.store.IsExpired("!!bad-header!!.eyJleHAiOjF9.sig"))
		require.True(t, f.store.IsExpired("hdr.eyJleHAiOjF9"))
	})
}

func TestIsExpired_MalformedToken(t *testing.T) {
	malformed := []string{"not-a-jwt", "a.b.c", "only.two"}

	t.Run("fail open by default", func(t *testing.T) {
		f := newFixture(t)
		for _, token := range malformed {
			require.False(t, f.store.IsExpired(token), token)

			require.NoError(t, f.local.Set(sessions.TokenKey, token))
			require.True(t, f.store.CheckAuth(), token)
		}
		require.Empty(t, f.nav.Pages())
	})

	t.Run("fail closed", func(t *testing.T) {
		f := newFixture(t, sessions.WithSessionConfig(config.Session{
			DemoTokenLifetime:    24 * time.Hour,
			LogoutRedirectDelay:  time.Hour,
			MalformedTokenPolicy: config.MalformedTokenFailClosed,
		}))
		for _, token := range malformed {
			require.True(t, f.store.IsExpired(token), token)
		}
	})
}

func TestGetToken_LocalFirst(t *testing.T) {
	f := newFixture(t)
	require.Empty(t, f.store.GetToken())

	require.NoError(t, f.session.Set(sessions.TokenKey, "session-token"))
	require.Equal(t, "session-token", f.store.GetToken())

	require.NoError(t, f.local.Set(sessions.TokenKey, "local-token"))
	require.Equal(t, "local-token", f.store.GetToken())
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	for _, area := range []*storage.MemoryArea{f.local, f.session} {
		require.NoError(t, area.Set(sessions.TokenKey, "t"))
		require.NoError(t, area.Set(sessions.UserKey, `{"username":"admin"}`))
	}

	f.store.Logout()

	require.Zero(t, f.local.Len())
	require.Zero(t, f.session.Len())

	note, ok := f.notifier.Last()
	require.True(t, ok)
	require.Equal(t, ui.KindError, note.Kind)

	page, pending := f.store.Redirector().Pending()
	require.True(t, pending)
	require.Equal(t, ui.PageLogin, page)
	require.Empty(t, f.nav.Pages(), "redirect is delayed")

	require.True(t, f.store.FlushRedirect())
	require.Equal(t, []ui.Page{ui.PageLogin}, f.nav.Pages())
}

func TestCheckAuth(t *testing.T) {
	t.Run("no token redirects immediately", func(t *testing.T) {
		f := newFixture(t)
		require.False(t, f.store.CheckAuth())
		require.Equal(t, []ui.Page{ui.PageLogin}, f.nav.Pages())
		require.Empty(t, f.notifier.Notes())
		require.ErrorIs(t, f.store.RequireAuth(), errors.ErrAuthenticationMissing)
	})

	t.Run("expired token logs out", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.session.Set(sessions.TokenKey, sessions.NewDemoToken(testNow.Add(-48*time.Hour))))
		require.False(t, f.store.CheckAuth())
		require.Empty(t, f.store.GetToken())
		_, pending := f.store.Redirector().Pending()
		require.True(t, pending)
	})

	t.Run("expired token error", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.session.Set(sessions.TokenKey, sessions.NewDemoToken(testNow.Add(-48*time.Hour))))
		require.ErrorIs(t, f.store.RequireAuth(), errors.ErrAuthenticationExpired)
	})

	t.Run("valid token", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.local.Set(sessions.TokenKey, signedToken(t, jwtlib.MapClaims{"exp": testNow.Add(time.Hour).Unix()})))
		require.True(t, f.store.CheckAuth())
		require.NoError(t, f.store.RequireAuth())
		require.Empty(t, f.nav.Pages())
	})
}

func TestSave(t *testing.T) {
	user := sessions.User{Username: "root", Role: "admin", LoginTime: testNow}

	t.Run("remember uses local area", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.session.Set(sessions.TokenKey, "stale"))

		require.NoError(t, f.store.Save("tok", user, true))

		v, ok, err := f.local.Get(sessions.TokenKey)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "tok", v)
		require.Zero(t, f.session.Len())

		got, ok := f.store.CurrentUser()
		require.True(t, ok)
		require.Equal(t, user.Username, got.Username)
		require.True(t, user.LoginTime.Equal(got.LoginTime))
	})

	t.Run("session area otherwise", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.Save("tok", sessions.User{Username: "admin", IsDemo: true}, false))
		require.Zero(t, f.local.Len())

		raw, ok, err := f.session.Get(sessions.UserKey)
		require.NoError(t, err)
		require.True(t, ok)
		require.JSONEq(t, `{"username":"admin","isDemo":true}`, raw)
	})

	t.Run("empty token rejected", func(t *testing.T) {
		f := newFixture(t)
		require.ErrorIs(t, f.store.Save("", user, false), errors.ErrValidation)
	})
}

func TestCurrent(t *testing.T) {
	f := newFixture(t)
	_, ok := f.store.Current()
	require.False(t, ok)

	issued := testNow.Add(-time.Hour).Truncate(time.Millisecond)
	require.NoError(t, f.store.Save(sessions.NewDemoToken(issued), sessions.User{Username: "admin", IsDemo: true}, false))

	s, ok := f.store.Current()
	require.True(t, ok)
	require.Equal(t, sessions.KindDemo, s.Kind)
	require.True(t, issued.Equal(s.IssuedAt))
	require.True(t, issued.Add(24*time.Hour).Equal(s.ExpiresAt))
	require.True(t, s.User.IsDemo)
	require.True(t, f.store.IsDemo())
}

func TestAuthHeaders(t *testing.T) {
	f := newFixture(t)

	h := f.store.AuthHeaders()
	require.Equal(t, "application/json", h.Get("Content-Type"))
	require.Empty(t, h.Get("Authorization"))

	require.NoError(t, f.local.Set(sessions.TokenKey, "abc"))
	h = f.store.AuthHeaders()
	require.Equal(t, "Bearer abc", h.Get("Authorization"))
}

func TestCurrentUser_Corrupt(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.local.Set(sessions.UserKey, "{not json"))
	_, ok := f.store.CurrentUser()
	require.False(t, ok)
}
