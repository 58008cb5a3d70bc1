package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrsteele09/go-admin-console/pages"
	"github.com/jrsteele09/go-admin-console/poller"
)

// runWatch redraws the dashboard stats and the header badges on their refresh intervals until
// interrupted.
func runWatch(ctx context.Context, a *app, _ []string) error {
	d := pages.NewDashboard(a.env)
	if err := d.Open(ctx); err != nil {
		return err
	}
	h := pages.NewHeader(a.env)
	h.Refresh(ctx)

	var mu sync.Mutex
	draw := func() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(a.out)
		if err := a.renderer.Header(a.out, h.State()); err != nil {
			a.logger.Error().Err(err).Msg("render header")
		}
		if err := a.renderer.Dashboard(a.out, d.State()); err != nil {
			a.logger.Error().Err(err).Msg("render dashboard")
		}
	}
	draw()

	p := poller.New(poller.WithLogger(a.logger))
	if err := p.Every("dashboard-stats", a.cfg.GetDashboardRefreshInterval(), func(ctx context.Context) {
		if err := d.RefreshStats(ctx); err == nil {
			draw()
		}
	}); err != nil {
		return err
	}
	if err := p.Every("header-badges", a.cfg.GetBadgeRefreshInterval(), func(ctx context.Context) {
		h.Refresh(ctx)
		draw()
	}); err != nil {
		return err
	}

	p.Start()
	waitForStopSignal(ctx)
	p.Stop()
	return nil
}

func waitForStopSignal(ctx context.Context) {
	<-ctx.Done()
}
