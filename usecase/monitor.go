package usecase

import (
	"context"
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/channel"
	"github.com/AngellusMortis/sxm-player/domain/model/event"
	"github.com/AngellusMortis/sxm-player/domain/model/pipeline"
	"github.com/AngellusMortis/sxm-player/domain/model/unit"
	"github.com/AngellusMortis/sxm-player/domain/repository"
	"github.com/AngellusMortis/sxm-player/internal/bus"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/AngellusMortis/sxm-player/internal/metrics"
	"github.com/AngellusMortis/sxm-player/internal/timeutil"
	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// one poll must not hang past the next tick
const pollTimeout = 10 * time.Second

type ucMonitor struct {
	source repository.Source
	bus    *bus.Bus
	health *pipeline.Health
}

func NewMonitor(
	source repository.Source,
	eventBus *bus.Bus,
	health *pipeline.Health,
) *ucMonitor {
	return &ucMonitor{
		source: source,
		bus:    eventBus,
		health: health,
	}
}

// Run polls now-playing metadata for one channel until ctx is canceled and
// publishes a boundary event whenever the playing unit changes. The poll
// interval is jittered so channels do not hit the proxy in lockstep.
func (m *ucMonitor) Run(ctx context.Context, ch channel.Channel, config pipeline.Config) error {
	bo := newSourceBackoff(config)

	var current *unit.Unit
	for {
		pollCtx, cancel := context.WithTimeout(ctx, pollTimeout)
		playing, err := m.source.NowPlaying(pollCtx, ch.ID)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			recordFault(m.bus, m.health, ch.ID, "monitor", event.FaultSource, err.Error())

			next := bo.NextBackOff()
			if next == backoff.Stop {
				return errors.Wrap(errutil.ErrSourceUnavailable, "metadata retry budget exhausted")
			}
			log.Ctx(ctx).Warn().Msgf("failed to poll now playing, cooling down (sleep = %s): %v", next, err)
			if err := sleepCtx(ctx, next); err != nil {
				return nil
			}
			continue
		}
		bo.Reset()

		// nil means a sweeper or station ident is on air. The previous unit
		// stays open, its end will be stamped by the next real boundary.
		if playing != nil && (current == nil || current.GUID != playing.GUID) {
			now := time.Now().UTC()
			var previous *unit.Unit
			if current != nil {
				prev := *current
				prev.End = now
				previous = &prev
			}
			m.bus.Publish(bus.TopicChannel(ch.ID), event.NewBoundary(ch.ID, previous, *playing, now))
			metrics.IncBoundary(ch.ID)
			log.Ctx(ctx).Info().Msgf("now playing %s", playing.PrettyName())
			current = playing
		}

		if err := sleepCtx(ctx, timeutil.Jitter(config.PollInterval, 0.25)); err != nil {
			return nil
		}
	}
}
