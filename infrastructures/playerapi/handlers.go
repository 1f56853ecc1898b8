package playerapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/AngellusMortis/sxm-player/domain/model/catalog"
	"github.com/AngellusMortis/sxm-player/domain/model/pipeline"
	"github.com/AngellusMortis/sxm-player/domain/model/unit"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/AngellusMortis/sxm-player/internal/fileutil"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Channels)
}

func (s *Server) handleNow(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "channelID")
	if _, ok := s.byID[channelID]; !ok {
		writeError(w, http.StatusNotFound, "unknown channel")
		return
	}

	playing := s.deps.State.Current(channelID)
	if playing == nil {
		writeError(w, http.StatusNotFound, "nothing on air yet")
		return
	}
	writeJSON(w, http.StatusOK, playing)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "channelID")
	if _, ok := s.byID[channelID]; !ok {
		writeError(w, http.StatusNotFound, "unknown channel")
		return
	}

	n := s.deps.HistorySize
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "n must be a positive number")
			return
		}
		n = parsed
	}

	history := s.deps.State.History(channelID, n)
	if history == nil {
		history = []unit.Unit{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	text := query.Get("q")
	if text == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	kind := unit.Kind(query.Get("kind"))
	if kind != "" && kind != unit.KindSong && kind != unit.KindEpisode {
		writeError(w, http.StatusBadRequest, "kind must be song or episode")
		return
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = parsed
	}

	entries, err := s.deps.Catalog.Search(r.Context(), kind, text, limit)
	if err != nil {
		log.Ctx(r.Context()).Error().Msgf("search failed (q = %s): %v", text, err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if entries == nil {
		entries = []catalog.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

type queuePushRequest struct {
	GUID string `json:"guid"`
}

type queuePushResponse struct {
	GUID     string `json:"guid"`
	Position int    `json:"position"`
}

func (s *Server) handleQueuePush(w http.ResponseWriter, r *http.Request) {
	var req queuePushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GUID == "" {
		writeError(w, http.StatusBadRequest, "body must be json with a guid")
		return
	}

	entry, err := s.deps.Catalog.Get(r.Context(), req.GUID)
	if err != nil {
		if errors.Is(err, errutil.ErrDatabaseNotFoundUnit) {
			writeError(w, http.StatusNotFound, "unknown unit")
			return
		}
		log.Ctx(r.Context()).Error().Msgf("queue lookup failed (guid = %s): %v", req.GUID, err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	// the catalog can outlive the files it points at
	if !fileutil.Exists(entry.FilePath) {
		writeError(w, http.StatusNotFound, "file is gone")
		return
	}

	if err := s.deps.Queue.Push(req.GUID); err != nil {
		switch {
		case errors.Is(err, errutil.ErrAlreadyQueued):
			writeError(w, http.StatusConflict, "already queued")
		case errors.Is(err, errutil.ErrQueueFull):
			writeError(w, http.StatusTooManyRequests, "queue is full")
		default:
			writeError(w, http.StatusInternalServerError, "queue push failed")
		}
		return
	}

	writeJSON(w, http.StatusAccepted, queuePushResponse{
		GUID:     req.GUID,
		Position: s.deps.Queue.Len(),
	})
}

func (s *Server) handleQueueList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Items []string `json:"items"`
	}{Items: s.deps.Queue.Items()})
}

func (s *Server) handleQueueNext(w http.ResponseWriter, r *http.Request) {
	guid, ok := s.deps.Queue.Next()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		GUID string `json:"guid"`
	}{GUID: guid})
}

// handleLive relays the upstream audio stream byte for byte. The client
// going away cancels the request context, which unblocks the upstream read.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	channelID := chi.URLParam(r, "channelID")
	if _, ok := s.byID[channelID]; !ok {
		writeError(w, http.StatusNotFound, "unknown channel")
		return
	}

	stream, err := s.deps.Source.OpenStream(r.Context(), channelID)
	if err != nil {
		log.Ctx(r.Context()).Warn().Msgf("live relay failed to open stream (channel = %s): %v", channelID, err)
		writeError(w, http.StatusBadGateway, "upstream unavailable")
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 32*1024)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.events.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Channels []pipeline.ChannelHealth `json:"channels"`
	}{Channels: s.deps.Health.Snapshot()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Msgf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: message})
}
