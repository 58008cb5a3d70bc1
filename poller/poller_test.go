package poller_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/jrsteele09/go-admin-console/poller"
	"github.com/stretchr/testify/require"
)

func TestEvery_RejectsShortInterval(t *testing.T) {
	p := poller.New()
	err := p.Every("badges", 500*time.Millisecond, func(context.Context) {})
	require.ErrorIs(t, err, errors.ErrValidation)
}

func TestPoller_RunsAndStops(t *testing.T) {
	p := poller.New()
	var runs atomic.Int32
	cancelled := make(chan struct{})
	require.NoError(t, p.Every("badges", time.Second, func(ctx context.Context) {
		if runs.Add(1) == 1 {
			<-ctx.Done()
			close(cancelled)
		}
	}))

	p.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	p.Stop()
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("job context was not cancelled on stop")
	}
}

func TestPoller_RecoversFromPanics(t *testing.T) {
	p := poller.New()
	var runs atomic.Int32
	require.NoError(t, p.Every("stats", time.Second, func(context.Context) {
		runs.Add(1)
		panic("boom")
	}))

	p.Start()
	t.Cleanup(p.Stop)
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 4*time.Second, 20*time.Millisecond)
}
