package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/catalog"
	"github.com/AngellusMortis/sxm-player/domain/model/channel"
	"github.com/AngellusMortis/sxm-player/domain/model/event"
	"github.com/AngellusMortis/sxm-player/domain/model/nowplaying"
	"github.com/AngellusMortis/sxm-player/domain/model/pipeline"
	"github.com/AngellusMortis/sxm-player/domain/model/unit"
	"github.com/AngellusMortis/sxm-player/internal/bus"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	mock_repository "github.com/AngellusMortis/sxm-player/testdata/mock/domain/repository"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
)

// One channel burning through its retry budget must not stop its siblings.
func Test_ucPipeline_Run_channelIsolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := pipeline.Config{
		OutputDir:        t.TempDir(),
		PollInterval:     5 * time.Millisecond,
		SegmentDuration:  time.Second,
		FlushInterval:    100 * time.Millisecond,
		ArchiveRetention: time.Hour,
		SpliceWorkers:    1,
		CutAttempts:      4,
		HistorySize:      10,
		QueueSize:        8,
		BackoffInitial:   5 * time.Millisecond,
		BackoffMax:       10 * time.Millisecond,
		BackoffBudget:    40 * time.Millisecond,
	}
	channels := []channel.Channel{
		{ID: "octane", Name: "Octane"},
		{ID: "turbo", Name: "Turbo"},
	}

	song := unit.Unit{
		GUID:      "turbo:song:111",
		Kind:      unit.KindSong,
		ChannelID: "turbo",
		Title:     "Du Hast",
		Artist:    "Rammstein",
		Start:     time.Date(2023, 4, 12, 10, 0, 4, 0, time.UTC),
	}

	mockSource := mock_repository.NewMockSource(ctrl)
	mockSource.EXPECT().
		NowPlaying(gomock.Any(), "octane").
		Return(nil, errors.Wrap(errutil.ErrHTTPRequest, "octane is broken")).
		AnyTimes()
	mockSource.EXPECT().
		OpenStream(gomock.Any(), "octane").
		Return(nil, errors.Wrap(errutil.ErrHTTPRequest, "octane is broken")).
		AnyTimes()
	mockSource.EXPECT().
		NowPlaying(gomock.Any(), "turbo").
		DoAndReturn(func(ctx context.Context, channelID string) (*unit.Unit, error) {
			u := song
			return &u, nil
		}).
		AnyTimes()
	mockSource.EXPECT().
		OpenStream(gomock.Any(), "turbo").
		DoAndReturn(func(ctx context.Context, channelID string) (io.ReadCloser, error) {
			// a healthy connection that just never delivers a byte
			return &timedStream{ctx: ctx, drained: make(chan struct{})}, nil
		}).
		AnyTimes()

	mockCatalog := mock_repository.NewMockCatalog(ctrl)
	mockCatalog.EXPECT().
		Recent(gomock.Any(), gomock.Any(), config.HistorySize).
		Return([]catalog.Entry{}, nil).
		AnyTimes()
	mockCatalog.EXPECT().SavePending(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCatalog.EXPECT().LoadPending(gomock.Any(), gomock.Any(), gomock.Any()).Return([]unit.Unit{}, nil).AnyTimes()
	mockCutter := mock_repository.NewMockCutter(ctrl)

	eventBus := bus.New()
	defer eventBus.Close()
	lifecycle := eventBus.Subscribe(bus.TopicLifecycle)
	defer lifecycle.Close()

	health := pipeline.NewHealth()
	state := nowplaying.New(config.HistorySize)

	p := NewPipeline(
		mockCatalog,
		NewMonitor(mockSource, eventBus, health),
		NewRecorder(mockSource, eventBus, health),
		NewSplicer(mockCatalog, mockCutter, eventBus, health),
		state,
		eventBus,
		health,
		config,
	)

	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx, channels, config)
	}()

	// octane dies and says so on the lifecycle topic
	fatal := recvFatalFault(t, lifecycle)
	if fatal.ChannelID != "octane" {
		t.Errorf("fatal fault on channel %s, want octane", fatal.ChannelID)
	}

	// turbo is still polling and knows what is on air
	waitFor(t, "turbo now playing", func() bool {
		u := state.Current("turbo")
		return u != nil && u.GUID == song.GUID
	})
	waitFor(t, "octane marked stopped", func() bool {
		for _, h := range health.Snapshot() {
			if h.ChannelID == "octane" {
				return !h.Running
			}
		}
		return false
	})
	for _, h := range health.Snapshot() {
		if h.ChannelID == "turbo" && !h.Running {
			t.Error("turbo stopped running")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func recvFatalFault(t *testing.T, sub *bus.Subscription) event.Fault {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-sub.C():
			if ev.Type == event.TypeFault && ev.Fault.Fatal {
				return *ev.Fault
			}
		case <-deadline:
			t.Fatal("timed out waiting for a fatal fault")
		}
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
