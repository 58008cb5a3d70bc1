// Package poller runs the console's periodic refresh jobs: the dashboard stats and the header
// badges. Runs start on a fixed interval whether or not the previous run has finished.
package poller

import (
	"context"
	"time"

	"github.com/jrsteele09/go-admin-console/internal/errors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is one periodic refresh. ctx is cancelled when the poller stops.
type Job func(ctx context.Context)

type Poller struct {
	cron   *cron.Cron
	logger zerolog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

type Option func(*Poller)

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Poller) {
		p.logger = logger
	}
}

func New(options ...Option) *Poller {
	p := &Poller{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(p)
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())
	cl := cronLogger{p.logger}
	p.cron = cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl)))
	return p
}

// Every schedules job every interval. Intervals are rounded down to whole seconds by cron and
// must be at least one second.
func (p *Poller) Every(name string, interval time.Duration, job Job) error {
	if interval < time.Second {
		return errors.Wrapf(errors.ErrValidation, "poller %q: interval %s is below one second", name, interval)
	}
	p.cron.Schedule(cron.Every(interval), cron.FuncJob(func() {
		start := time.Now()
		job(p.ctx)
		p.logger.Debug().Str("job", name).Dur("took", time.Since(start)).Msg("poll finished")
	}))
	p.logger.Info().Str("job", name).Dur("interval", interval).Msg("poll scheduled")
	return nil
}

func (p *Poller) Start() {
	p.cron.Start()
}

// Stop cancels running jobs and waits for them to return.
func (p *Poller) Stop() {
	p.cancel()
	<-p.cron.Stop().Done()
}

// cronLogger feeds cron's own messages into zerolog.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
