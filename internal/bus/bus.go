// Package bus carries pipeline events between workers and the http api
// without the two sides knowing about each other.
package bus

import (
	"sync"

	"github.com/AngellusMortis/sxm-player/domain/model/event"
	"github.com/AngellusMortis/sxm-player/internal/metrics"
)

const (
	// shutdown notices and fatal faults
	TopicLifecycle = "lifecycle"

	defaultQueueSize = 64
)

// TopicChannel names the per-channel topic boundary and segment events go to.
func TopicChannel(channelID string) string {
	return "channel." + channelID
}

type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]*Subscription
	closed bool
}

func New() *Bus {
	return &Bus{
		subs: map[string][]*Subscription{},
	}
}

type Subscription struct {
	bus   *Bus
	topic string
	ch    chan event.Event
	once  sync.Once
}

func (s *Subscription) C() <-chan event.Event {
	return s.ch
}

// Close detaches the subscription and closes its channel. Safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.detach(s)
		close(s.ch)
	})
}

func (b *Bus) Subscribe(topic string) *Subscription {
	return b.SubscribeBuffer(topic, defaultQueueSize)
}

func (b *Bus) SubscribeBuffer(topic string, size int) *Subscription {
	if size <= 0 {
		size = defaultQueueSize
	}
	s := &Subscription{bus: b, topic: topic, ch: make(chan event.Event, size)}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		s.once.Do(func() { close(s.ch) })
		return s
	}
	b.subs[topic] = append(b.subs[topic], s)
	return s
}

// Publish never blocks. A subscriber whose queue is full loses its oldest
// queued event, not the one being published.
func (b *Bus) Publish(topic string, ev event.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, s := range b.subs[topic] {
		select {
		case s.ch <- ev:
			continue
		default:
		}
		select {
		case <-s.ch:
			metrics.IncBusDrop(topic)
		default:
		}
		select {
		case s.ch <- ev:
		default:
			metrics.IncBusDrop(topic)
		}
	}
}

func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	var all []*Subscription
	for _, subs := range b.subs {
		all = append(all, subs...)
	}
	b.subs = map[string][]*Subscription{}
	b.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}

func (b *Bus) detach(target *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[target.topic]
	for i, s := range subs {
		if s == target {
			b.subs[target.topic] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}
