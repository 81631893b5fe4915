// Package broadcast fans out domain events to in-process subscribers.
//
// Delivery is best-effort: publishers never block and a slow subscriber
// silently loses events. Anything that needs a consistent view must poll
// the database; the hub only shortens the latency of the happy path.
package broadcast

import (
	"log/slog"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultBuffer = 16

// Topics published by the services.
const (
	TopicLocks    = "locks"
	TopicBookings = "bookings"
)

// Event is a single broadcast frame. Payload is pre-encoded JSON.
type Event struct {
	Topic   string    `json:"topic"`
	Kind    string    `json:"kind"`
	Payload []byte    `json:"payload"`
	At      time.Time `json:"at"`
}

// Hub is a topic-scoped subscriber registry.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

// Subscribe registers a new subscriber on topic. The caller must Close the
// subscription when done or its slot leaks until process exit.
func (h *Hub) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		hub:    h,
		topic:  topic,
		events: make(chan Event, defaultBuffer),
	}
	h.mu.Lock()
	set, ok := h.subs[topic]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[topic] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Publish encodes payload and delivers it to every current subscriber of
// topic. Sends never block: a full subscriber buffer drops the event.
func (h *Hub) Publish(topic, kind string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("broadcast: payload encode failed", "topic", topic, "kind", kind, "error", err.Error())
		return
	}
	ev := Event{Topic: topic, Kind: kind, Payload: raw, At: time.Now()}

	// Sends happen under the lock so Close cannot close a channel while a
	// send is in flight. Each send is non-blocking, so the hold is short.
	h.mu.Lock()
	dropped := 0
	for sub := range h.subs[topic] {
		select {
		case sub.events <- ev:
		default:
			dropped++
		}
	}
	h.mu.Unlock()

	if dropped > 0 {
		slog.Debug("broadcast: dropped events for slow subscribers", "topic", topic, "kind", kind, "dropped", dropped)
	}
}

// SubscriberCount reports the current number of subscribers on topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[topic])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	if set, ok := h.subs[sub.topic]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.topic)
		}
	}
	h.mu.Unlock()
}

// Subscription is a single subscriber's receive side.
type Subscription struct {
	hub    *Hub
	topic  string
	events chan Event
	once   sync.Once
}

// Events returns the receive channel. It is closed by Close.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close unregisters the subscription and closes its channel. Safe to call
// more than once and concurrently with Publish.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
		// Publish sends under the hub lock, so once remove returns no send
		// can still target this channel.
		close(s.events)
	})
}
