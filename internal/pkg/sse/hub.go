// Package sse fans events out to the open event streams of a user.
package sse

import (
	"sync"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/metrics"
)

// bufferSize bounds the events queued per stream before new ones are dropped
const bufferSize = 16

// Event is one server-sent event addressed to a user
type Event struct {
	UserID string
	Name   string
	Data   interface{}
}

// Hub keeps the subscribers of every user currently streaming
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for userID. The returned cleanup unregisters it
// and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}
	metrics.SSESubscribers.Inc()

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[userID], ch)
			close(ch)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
			metrics.SSESubscribers.Dec()
		})
	}

	return ch, cleanup
}

// Publish delivers event to every stream of userID without blocking.
// A stream whose buffer is full misses the event.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.UserID = userID
	for ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of open streams of userID
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[userID])
}
