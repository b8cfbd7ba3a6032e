package sse

import (
	"sync"
)

// Event is one server-sent event delivered to the subscribers of a topic.
type Event struct {
	Type string
	Data interface{}
}

// Hub fans events out to subscribers grouped by topic. Topics are company IDs.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	buffer      int
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		buffer:      16,
	}
}

// Subscribe registers a subscriber for topic and returns its channel and a cleanup function.
// The channel is closed by cleanup or by Close.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subscribers[topic][ch]; !ok {
				return
			}
			delete(h.subscribers[topic], ch)
			close(ch)
			if len(h.subscribers[topic]) == 0 {
				delete(h.subscribers, topic)
			}
		})
	}
	return ch, cleanup
}

// Publish delivers event to every subscriber of topic and reports how many received it.
// Subscribers with a full buffer miss the event.
func (h *Hub) Publish(topic string, event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.subscribers[topic] {
		select {
		case ch <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// SubscriberCount returns the number of active subscribers for topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

// TotalSubscribers returns the number of active subscribers across all topics.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}

// Close closes every subscriber channel so open streams end. Later subscriptions get a
// closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for topic, subs := range h.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(h.subscribers, topic)
	}
}
