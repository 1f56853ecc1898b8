// Package playerapi is the local surface external players talk to: channel
// state, catalog search, the play queue, a live relay and the event stream.
package playerapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/channel"
	"github.com/AngellusMortis/sxm-player/domain/model/event"
	"github.com/AngellusMortis/sxm-player/domain/model/nowplaying"
	"github.com/AngellusMortis/sxm-player/domain/model/pipeline"
	"github.com/AngellusMortis/sxm-player/domain/model/playqueue"
	"github.com/AngellusMortis/sxm-player/domain/repository"
	"github.com/AngellusMortis/sxm-player/internal/bus"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/r3labs/sse/v2"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

const lifecycleStream = "lifecycle"

type Deps struct {
	Channels    []channel.Channel
	State       *nowplaying.State
	Catalog     repository.Catalog
	Source      repository.Source
	Queue       *playqueue.Queue
	Bus         *bus.Bus
	Health      *pipeline.Health
	HistorySize int
}

type Server struct {
	deps   Deps
	byID   map[string]channel.Channel
	events *sse.Server
	http   *http.Server
}

func New(deps Deps, addr string) *Server {
	events := sse.New()
	events.AutoReplay = false
	for _, ch := range deps.Channels {
		events.CreateStream(ch.ID)
	}
	events.CreateStream(lifecycleStream)

	byID := make(map[string]channel.Channel, len(deps.Channels))
	for _, ch := range deps.Channels {
		byID[ch.ID] = ch
	}

	s := &Server{
		deps:   deps,
		byID:   byID,
		events: events,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/channels", s.handleChannels)
		r.Get("/channels/{channelID}/now", s.handleNow)
		r.Get("/channels/{channelID}/history", s.handleHistory)
		r.Get("/search", s.handleSearch)
		r.Get("/queue", s.handleQueueList)
		r.Post("/queue", s.handleQueuePush)
		r.Post("/queue/next", s.handleQueueNext)
	})
	r.Get("/live/{channelID}", s.handleLive)
	r.Get("/events", s.handleEvents)
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})

	s.http = &http.Server{
		Addr:    addr,
		Handler: c.Handler(r),
	}
	return s
}

// StartPumps forwards bus events onto their SSE streams, one goroutine per
// topic. Call it once before Start.
func (s *Server) StartPumps(ctx context.Context) {
	for _, ch := range s.deps.Channels {
		go s.pump(ctx, bus.TopicChannel(ch.ID), ch.ID)
	}
	go s.pump(ctx, bus.TopicLifecycle, lifecycleStream)
}

func (s *Server) pump(ctx context.Context, topic string, streamID string) {
	sub := s.deps.Bus.Subscribe(topic)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C():
			if !ok {
				return
			}
			data, err := eventData(ev)
			if err != nil {
				log.Ctx(ctx).Error().Msgf("failed to encode event (type = %s): %v", ev.Type, err)
				continue
			}
			s.events.Publish(streamID, &sse.Event{
				Event: []byte(ev.Type.String()),
				Data:  data,
			})
		}
	}
}

func eventData(ev event.Event) ([]byte, error) {
	switch ev.Type {
	case event.TypeBoundary:
		return json.Marshal(ev.Boundary)
	case event.TypeSegmentClosed:
		return json.Marshal(ev.Segment)
	case event.TypeFault:
		return json.Marshal(ev.Fault)
	default:
		return json.Marshal(struct{}{})
	}
}

// Start serves until Shutdown. ctx becomes the base context of every
// request, which is how handlers pick up the process logger.
func (s *Server) Start(ctx context.Context) error {
	s.http.BaseContext = func(net.Listener) context.Context {
		return ctx
	}
	log.Ctx(ctx).Info().Msgf("player api listening (addr = %s)", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown closes the SSE streams first so their handlers return, then
// drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.events.Close()
	return s.http.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Ctx(r.Context()).Debug().Msgf("%s %s (status = %d, took = %s)",
			r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
