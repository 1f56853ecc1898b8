package nowplaying

import (
	"sync"

	"github.com/AngellusMortis/sxm-player/domain/model/event"
	"github.com/AngellusMortis/sxm-player/domain/model/unit"
)

// State is the in-memory answer to "what is on this channel right now".
// One applier goroutine per channel feeds it boundaries in detection
// order; any number of readers may query it.
type State struct {
	mu      sync.RWMutex
	size    int
	current map[string]unit.Unit
	history map[string][]unit.Unit // newest first
}

func New(historySize int) *State {
	if historySize <= 0 {
		historySize = 10
	}
	return &State{
		size:    historySize,
		current: make(map[string]unit.Unit),
		history: make(map[string][]unit.Unit),
	}
}

// Apply folds one boundary into the snapshot.
func (s *State) Apply(b event.Boundary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.Previous != nil {
		s.push(b.ChannelID, *b.Previous)
	}
	s.current[b.ChannelID] = b.Current
}

// Seed pre-fills history, oldest first, when state is rebuilt after a
// restart. It never overwrites what the monitor has already applied.
func (s *State) Seed(channelID string, units []unit.Unit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history[channelID]) > 0 {
		return
	}
	for _, u := range units {
		s.push(channelID, u)
	}
}

func (s *State) push(channelID string, u unit.Unit) {
	h := append([]unit.Unit{u}, s.history[channelID]...)
	if len(h) > s.size {
		h = h[:s.size]
	}
	s.history[channelID] = h
}

// Current returns nil until the first boundary for the channel arrives.
func (s *State) Current(channelID string) *unit.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.current[channelID]
	if !ok {
		return nil
	}
	cp := u
	return &cp
}

// History returns up to n units, newest first.
func (s *State) History(channelID string, n int) []unit.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h := s.history[channelID]
	if n <= 0 || n > len(h) {
		n = len(h)
	}
	out := make([]unit.Unit, n)
	copy(out, h[:n])
	return out
}
