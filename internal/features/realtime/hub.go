package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is pushed to every connected console after a committed change
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// Hub fans events out to subscribers. Slow subscribers lose events rather than block publishers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
	buffer      int
	log         *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]chan Event),
		buffer:      32,
		log:         log.Named("realtime"),
	}
}

// Subscribe registers a new listener; call Unsubscribe with the returned id when done
func (h *Hub) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	return id, ch
}

func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Publish delivers an event to every subscriber without blocking
func (h *Hub) Publish(eventType string, payload any) {
	event := Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		Payload: payload,
		At:      time.Now().UTC(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.log.Warn("Dropping realtime event for slow subscriber",
				zap.String("subscriber", id), zap.String("event", eventType))
		}
	}
}

// Subscribers returns the number of live subscribers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
