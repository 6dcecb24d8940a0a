package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"hoteldash/internal/pkg/logger"
	"hoteldash/internal/session"
)

// Poller periodically recomputes the badge, caches it and pushes it to websocket subscribers.
type Poller struct {
	cron     *cron.Cron
	service  *Service
	cache    SummaryCache
	hub      Broadcaster
	sess     *session.Session
	interval time.Duration
	log      zerolog.Logger
}

func NewPoller(service *Service, cache SummaryCache, hub Broadcaster, sess *session.Session, interval time.Duration) *Poller {
	return &Poller{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		service:  service,
		cache:    cache,
		hub:      hub,
		sess:     sess,
		interval: interval,
		log:      logger.Component("notification_poller"),
	}
}

// Start schedules the poll and runs the first one immediately in the background.
func (p *Poller) Start() error {
	if _, err := p.cron.AddFunc(fmt.Sprintf("@every %s", p.interval), p.Run); err != nil {
		return fmt.Errorf("schedule notification poll: %w", err)
	}
	p.cron.Start()
	go p.Run()
	p.log.Info().Dur("interval", p.interval).Msg("notification poller started")
	return nil
}

// Stop halts scheduling and returns a context that is done once a running poll finishes.
func (p *Poller) Stop() context.Context {
	return p.cron.Stop()
}

// Run performs one poll. Repeated runs are idempotent.
func (p *Poller) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	badge, err := p.service.Badge(ctx, p.sess)
	if err != nil {
		p.log.Error().Err(err).Msg("notification poll failed")
		return
	}

	if err := p.cache.Set(ctx, badge); err != nil {
		p.log.Warn().Err(err).Msg("cache notification badge")
	}
	sent := p.hub.Broadcast(wsMessage{Event: "notifications.summary", Data: badge})

	p.log.Debug().
		Int("total", badge.Summary.Total).
		Int("urgent", badge.Summary.Urgent).
		Int("degraded", len(badge.Degraded)).
		Int("subscribers", sent).
		Msg("notification poll complete")
}
