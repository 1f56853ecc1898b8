package pipeline

import (
	"sort"
	"sync"
	"time"
)

type ChannelHealth struct {
	ChannelID   string    `json:"channel_id"`
	Running     bool      `json:"running"`
	Faults      int64     `json:"faults"`
	LastFault   string    `json:"last_fault,omitempty"`
	LastFaultAt time.Time `json:"last_fault_at,omitempty"`
}

// Health tracks per-channel pipeline liveness for the healthz endpoint.
type Health struct {
	mu       sync.RWMutex
	channels map[string]*ChannelHealth
}

func NewHealth() *Health {
	return &Health{
		channels: map[string]*ChannelHealth{},
	}
}

func (h *Health) get(channelID string) *ChannelHealth {
	ch, ok := h.channels[channelID]
	if !ok {
		ch = &ChannelHealth{ChannelID: channelID}
		h.channels[channelID] = ch
	}
	return ch
}

func (h *Health) SetRunning(channelID string, running bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.get(channelID).Running = running
}

func (h *Health) RecordFault(channelID string, detail string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := h.get(channelID)
	ch.Faults++
	ch.LastFault = detail
	ch.LastFaultAt = time.Now().UTC()
}

func (h *Health) Snapshot() []ChannelHealth {
	h.mu.RLock()
	defer h.mu.RUnlock()
	snapshot := make([]ChannelHealth, 0, len(h.channels))
	for _, ch := range h.channels {
		snapshot = append(snapshot, *ch)
	}
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].ChannelID < snapshot[j].ChannelID
	})
	return snapshot
}
