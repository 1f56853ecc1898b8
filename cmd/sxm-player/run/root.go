package run

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/channel"
	"github.com/AngellusMortis/sxm-player/domain/model/event"
	"github.com/AngellusMortis/sxm-player/domain/model/nowplaying"
	"github.com/AngellusMortis/sxm-player/domain/model/pipeline"
	"github.com/AngellusMortis/sxm-player/domain/model/playqueue"
	"github.com/AngellusMortis/sxm-player/domain/repository"
	"github.com/AngellusMortis/sxm-player/infrastructures/ffmpeg"
	"github.com/AngellusMortis/sxm-player/infrastructures/playerapi"
	"github.com/AngellusMortis/sxm-player/infrastructures/sqlite"
	"github.com/AngellusMortis/sxm-player/infrastructures/sxm"
	"github.com/AngellusMortis/sxm-player/internal/bus"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/AngellusMortis/sxm-player/internal/logutil"
	"github.com/AngellusMortis/sxm-player/usecase"
	"github.com/caarlos0/env/v6"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	log = logutil.NewLogger()
)

func Command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "run",
		Short: "run the recorder and the player api",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	return rootCmd
}

func run() error {
	log.Info().Msg("start")

	// optional .env for local runs
	_ = godotenv.Load()

	var config config
	err := env.Parse(&config, env.Options{
		Prefix: "SXM_",
		OnSet: func(tag string, value interface{}, isDefault bool) {
			log.Info().Msgf("Set %s to %v (default? %v)\n", tag, value, isDefault)
		},
	})
	if err != nil {
		return err
	}

	db, err := sqlite.NewDB(config.SqlitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	err = sqlite.Setup(db)
	if err != nil {
		return err
	}
	log.Info().Msg("setup done")

	infraCatalog := sqlite.New(db)
	infraSource, err := sxm.New(config.BaseURL)
	if err != nil {
		return err
	}
	infraCutter := ffmpeg.New()

	pipelineConfig := pipeline.Config{
		OutputDir:        config.OutputDir,
		PollInterval:     config.PollInterval,
		SegmentDuration:  config.SegmentDuration,
		FlushInterval:    config.FlushInterval,
		ArchiveRetention: config.ArchiveRetention,
		SweepInterval:    config.SweepInterval,
		SpliceWorkers:    config.SpliceWorkers,
		CutAttempts:      config.CutAttempts,
		HistorySize:      config.HistorySize,
		QueueSize:        config.QueueSize,
		BackoffInitial:   config.BackoffInitial,
		BackoffMax:       config.BackoffMax,
		BackoffBudget:    config.BackoffBudget,
		ShutdownTimeout:  config.ShutdownTimeout,
	}

	eventBus := bus.New()
	health := pipeline.NewHealth()
	state := nowplaying.New(config.HistorySize)
	queue := playqueue.New(config.QueueSize)

	ctx, cancel := context.WithCancel(log.WithContext(context.Background()))
	defer cancel()

	channels, err := loadChannels(ctx, infraSource, config.Channels)
	if err != nil {
		return err
	}

	ucPipeline := usecase.NewPipeline(
		infraCatalog,
		usecase.NewMonitor(infraSource, eventBus, health),
		usecase.NewRecorder(infraSource, eventBus, health),
		usecase.NewSplicer(infraCatalog, infraCutter, eventBus, health),
		state,
		eventBus,
		health,
		pipelineConfig,
	)

	api := playerapi.New(playerapi.Deps{
		Channels:    channels,
		State:       state,
		Catalog:     infraCatalog,
		Source:      infraSource,
		Queue:       queue,
		Bus:         eventBus,
		Health:      health,
		HistorySize: config.HistorySize,
	}, config.ListenAddr)

	scheduler := gocron.NewScheduler(time.UTC)

	jobSpliceSweep := func(ctx context.Context, job gocron.Job) {
		ctx = logutil.NewLogger().With().
			Int("job_count", job.RunCount()).
			Str("job", "splice_sweep").
			Logger().WithContext(ctx)
		err := ucPipeline.SweepSplices(ctx, channels)
		if err != nil {
			zlog.Ctx(ctx).Error().Msgf("%+v", err)
		}
	}
	_, err = scheduler.Every(config.SweepInterval).DoWithJobDetails(jobSpliceSweep, ctx)
	if err != nil {
		return errors.Wrap(errutil.ErrScheduler, err.Error())
	}

	jobArchiveSweep := func(ctx context.Context, job gocron.Job) {
		ctx = logutil.NewLogger().With().
			Int("job_count", job.RunCount()).
			Str("job", "archive_sweep").
			Logger().WithContext(ctx)
		err := ucPipeline.SweepArchive(ctx, channels, pipelineConfig)
		if err != nil {
			zlog.Ctx(ctx).Error().Msgf("%+v", err)
		}
	}
	_, err = scheduler.Every(10 * time.Minute).DoWithJobDetails(jobArchiveSweep, ctx)
	if err != nil {
		return errors.Wrap(errutil.ErrScheduler, err.Error())
	}

	jobHealth := func(ctx context.Context, job gocron.Job) {
		ctx = logutil.NewLogger().With().
			Int("job_count", job.RunCount()).
			Str("job", "health").
			Logger().WithContext(ctx)
		for _, ch := range health.Snapshot() {
			zlog.Ctx(ctx).Info().Msgf("channel %s (running = %v, faults = %d)", ch.ChannelID, ch.Running, ch.Faults)
		}
	}
	_, err = scheduler.Every(time.Minute).DoWithJobDetails(jobHealth, ctx)
	if err != nil {
		return errors.Wrap(errutil.ErrScheduler, err.Error())
	}

	pipeDone := make(chan error, 1)
	go func() {
		pipeDone <- ucPipeline.Run(ctx, channels, pipelineConfig)
	}()

	api.StartPumps(ctx)
	apiDone := make(chan error, 1)
	go func() {
		apiDone <- api.Start(ctx)
	}()

	scheduler.StartAsync()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info().Msg("Interrupt")
	case err := <-apiDone:
		if err != nil {
			return err
		}
	}

	eventBus.Publish(bus.TopicLifecycle, event.NewShutdown())
	scheduler.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer shutdownCancel()

	err = api.Shutdown(shutdownCtx)
	if err != nil {
		log.Warn().Msgf("failed to shut the api down cleanly: %v", err)
	}

	// recorder defers close out their part files on the way down
	select {
	case <-pipeDone:
	case <-shutdownCtx.Done():
		log.Warn().Msg("shutdown timeout exceeded, some segments may be left as part files")
	}

	eventBus.Close()
	log.Info().Msg("bye")
	return nil
}

// loadChannels resolves the configured channel ids against the upstream
// directory, dropping the ones it does not know.
func loadChannels(ctx context.Context, source repository.Source, ids []string) ([]channel.Channel, error) {
	all, err := source.Channels(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]channel.Channel, len(all))
	for _, ch := range all {
		byID[ch.ID] = ch
	}

	channels := make([]channel.Channel, 0, len(ids))
	for _, id := range ids {
		ch, ok := byID[id]
		if !ok {
			zlog.Ctx(ctx).Warn().Msgf("channel not in the upstream directory, skipping (channel = %s)", id)
			continue
		}
		channels = append(channels, ch)
	}

	if len(channels) == 0 {
		return nil, errors.Wrap(errutil.ErrChannelUnknown, "none of the requested channels exist upstream")
	}

	return channels, nil
}
