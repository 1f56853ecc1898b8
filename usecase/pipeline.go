package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/channel"
	"github.com/AngellusMortis/sxm-player/domain/model/event"
	"github.com/AngellusMortis/sxm-player/domain/model/nowplaying"
	"github.com/AngellusMortis/sxm-player/domain/model/pipeline"
	"github.com/AngellusMortis/sxm-player/domain/model/unit"
	"github.com/AngellusMortis/sxm-player/domain/repository"
	"github.com/AngellusMortis/sxm-player/internal/bus"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/AngellusMortis/sxm-player/internal/metrics"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ucPipeline fans one process out into per-channel worker sets and a
// shared splice pool. Channels fail independently, the splice queue and
// the bus are the only things they share.
type ucPipeline struct {
	catalog  repository.Catalog
	monitor  *ucMonitor
	recorder *ucRecorder
	splicer  *ucSplicer
	state    *nowplaying.State
	bus      *bus.Bus
	health   *pipeline.Health
	jobs     chan unit.Unit
}

func NewPipeline(
	catalog repository.Catalog,
	monitor *ucMonitor,
	recorder *ucRecorder,
	splicer *ucSplicer,
	state *nowplaying.State,
	eventBus *bus.Bus,
	health *pipeline.Health,
	config pipeline.Config,
) *ucPipeline {
	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	return &ucPipeline{
		catalog:  catalog,
		monitor:  monitor,
		recorder: recorder,
		splicer:  splicer,
		state:    state,
		bus:      eventBus,
		health:   health,
		jobs:     make(chan unit.Unit, queueSize),
	}
}

// Run blocks until ctx is canceled. It only ever returns nil: a channel
// that dies takes itself out of service and announces the fact, it does
// not bring the process down.
func (p *ucPipeline) Run(ctx context.Context, channels []channel.Channel, config pipeline.Config) error {
	eg, ctx := errgroup.WithContext(ctx)

	workers := config.SpliceWorkers
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		eg.Go(func() error {
			workerCtx := log.Ctx(ctx).With().Str("worker", "splice").Logger().WithContext(ctx)
			return p.splicer.Worker(workerCtx, config, p.jobs)
		})
	}

	for _, ch := range channels {
		ch := ch
		eg.Go(func() error {
			return p.runChannel(ctx, ch, config)
		})
	}

	return eg.Wait()
}

func (p *ucPipeline) runChannel(ctx context.Context, ch channel.Channel, config pipeline.Config) error {
	logger := log.Ctx(ctx).With().Str("channel", ch.ID).Logger()
	ctx = logger.WithContext(ctx)

	p.health.SetRunning(ch.ID, true)
	defer p.health.SetRunning(ch.ID, false)

	p.seedState(ctx, ch, config)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return p.monitor.Run(ctx, ch, config) })
	eg.Go(func() error { return p.recorder.Run(ctx, ch, config) })
	eg.Go(func() error { return p.splicer.Intake(ctx, ch, p.jobs) })
	eg.Go(func() error { return p.applyState(ctx, ch) })

	err := eg.Wait()
	if err == nil {
		return nil
	}

	kind := event.FaultInternal
	if stderrors.Is(err, errutil.ErrSourceUnavailable) || stderrors.Is(err, errutil.ErrStreamClosed) {
		kind = event.FaultSource
	}

	// one channel going down must not take its siblings with it
	logger.Error().Msgf("channel pipeline stopped: %v", err)
	p.health.RecordFault(ch.ID, err.Error())
	metrics.IncFault(ch.ID, kind.String())
	p.bus.Publish(bus.TopicLifecycle, event.NewFault("pipeline", ch.ID, kind, err.Error(), true))
	return nil
}

// seedState rebuilds the history half of the now-playing state from the
// catalog so the api has something to show right after a restart.
func (p *ucPipeline) seedState(ctx context.Context, ch channel.Channel, config pipeline.Config) {
	entries, err := p.catalog.Recent(ctx, ch.ID, config.HistorySize)
	if err != nil {
		log.Ctx(ctx).Warn().Msgf("failed to load recent catalog entries: %v", err)
		return
	}

	// Recent is newest first, Seed wants oldest first
	units := make([]unit.Unit, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		units = append(units, entries[i].Unit)
	}
	p.state.Seed(ch.ID, units)
}

// applyState folds boundary events into the shared now-playing snapshot.
func (p *ucPipeline) applyState(ctx context.Context, ch channel.Channel) error {
	sub := p.bus.Subscribe(bus.TopicChannel(ch.ID))
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.C():
			if !ok {
				return nil
			}
			if ev.Type != event.TypeBoundary {
				continue
			}
			p.state.Apply(*ev.Boundary)
		}
	}
}

// SweepSplices is the periodic catch-up pass for cuts that missed their
// event, scheduler-driven.
func (p *ucPipeline) SweepSplices(ctx context.Context, channels []channel.Channel) error {
	return p.splicer.Sweep(ctx, channels, p.jobs)
}

// SweepArchive drops archive segments that aged out of the retention
// window, scheduler-driven.
func (p *ucPipeline) SweepArchive(ctx context.Context, channels []channel.Channel, config pipeline.Config) error {
	return p.recorder.SweepArchive(ctx, channels, config)
}

// recordFault notes a recoverable worker fault everywhere it is visible:
// the health snapshot, the metrics and the channel's event topic.
func recordFault(b *bus.Bus, health *pipeline.Health, channelID, worker string, kind event.FaultKind, detail string) {
	health.RecordFault(channelID, detail)
	metrics.IncFault(channelID, kind.String())
	b.Publish(bus.TopicChannel(channelID), event.NewFault(worker, channelID, kind, detail, false))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// newSourceBackoff is the shared cooldown ladder for upstream failures.
// NextBackOff returns backoff.Stop once the elapsed budget is spent.
func newSourceBackoff(config pipeline.Config) *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = config.BackoffInitial
	bo.MaxInterval = config.BackoffMax
	bo.MaxElapsedTime = config.BackoffBudget
	bo.Reset()
	return bo
}
