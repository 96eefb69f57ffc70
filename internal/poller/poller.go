package poller

import (
	"context"
	"sync/atomic"
	"time"

	alertservice "github.com/FJR5209/Dashboard-backend/internal/alerting/service"
	authdomain "github.com/FJR5209/Dashboard-backend/internal/auth/domain"
	"github.com/FJR5209/Dashboard-backend/internal/feed"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Poller fetches the newest feed sample on a fixed interval and evaluates
// it against every user's limits. Ticks are single-flight: a tick that
// begins while the previous one still runs is skipped, never queued, so a
// slow fetch cannot pile up duplicate alert sweeps.
type Poller struct {
	feed        feed.Fetcher
	users       authdomain.UserRepository
	alerts      *alertservice.AlertService
	highWater   HighWaterStore
	logger      *zap.Logger
	interval    time.Duration
	feedTimeout time.Duration

	cron    *cron.Cron
	running atomic.Bool
}

func New(fetcher feed.Fetcher, users authdomain.UserRepository, alerts *alertservice.AlertService,
	highWater HighWaterStore, interval, feedTimeout time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		feed:        fetcher,
		users:       users,
		alerts:      alerts,
		highWater:   highWater,
		logger:      logger,
		interval:    interval,
		feedTimeout: feedTimeout,
	}
}

// Start schedules the tick at the configured interval.
func (p *Poller) Start() {
	p.cron = cron.New()
	p.cron.Schedule(cron.Every(p.interval), cron.FuncJob(func() {
		p.RunTick(context.Background())
	}))
	p.cron.Start()

	p.logger.Info("poller started",
		zap.Duration("interval", p.interval),
	)
}

// Stop halts the schedule and waits for a running tick to finish.
func (p *Poller) Stop() {
	if p.cron != nil {
		<-p.cron.Stop().Done()
	}
}

// RunTick executes one poll-and-evaluate cycle. It returns true when the
// cycle ran and false when it was skipped because another tick holds the
// guard.
func (p *Poller) RunTick(ctx context.Context) bool {
	if !p.running.CompareAndSwap(false, true) {
		p.logger.Warn("previous tick still running, skipping")
		return false
	}
	defer p.running.Store(false)

	p.tick(ctx)

	return true
}

func (p *Poller) tick(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.feedTimeout)
	samples, err := p.feed.FetchLatest(fetchCtx)
	cancel()
	if err != nil {
		p.logger.Error("feed fetch failed", zap.Error(err))
		return
	}

	if len(samples) == 0 {
		// An empty feed is a quiet channel, not a failure.
		p.logger.Info("no data available from the feed")
		return
	}

	newest := samples[len(samples)-1]
	for _, sample := range samples {
		if sample.EntryID > newest.EntryID {
			newest = sample
		}
	}

	mark, err := p.highWater.Get(ctx)
	if err != nil {
		p.logger.Error("failed to read high-water mark", zap.Error(err))
		return
	}
	if newest.EntryID <= mark {
		p.logger.Info("newest entry already processed",
			zap.Int64("entry_id", newest.EntryID),
			zap.Int64("high_water", mark),
		)
		return
	}

	p.logger.Info("evaluating feed sample",
		zap.Int64("entry_id", newest.EntryID),
		zap.Float64("temperature", newest.Temperature),
		zap.Float64("humidity", newest.Humidity),
		zap.Time("collected_at", newest.CreatedAt),
	)

	p.evaluateUsers(ctx, newest)

	if err := p.highWater.Set(ctx, newest.EntryID); err != nil {
		p.logger.Error("failed to advance high-water mark", zap.Error(err))
	}
}

// evaluateUsers runs the breach check for every user. One user's failure
// never aborts the sweep for the rest.
func (p *Poller) evaluateUsers(ctx context.Context, sample feed.Sample) {
	users, err := p.users.List(ctx)
	if err != nil {
		p.logger.Error("failed to list users for evaluation", zap.Error(err))
		return
	}

	reading := alertservice.Reading{
		Temperature: sample.Temperature,
		Humidity:    sample.Humidity,
	}

	for i := range users {
		user := &users[i]
		breached, err := p.alerts.EvaluateAndDispatch(ctx, user, reading)
		if err != nil {
			p.logger.Error("failed to evaluate user",
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
			continue
		}
		if breached {
			p.logger.Info("limits breached, alert dispatched",
				zap.String("user_id", user.ID),
			)
		}
	}
}
