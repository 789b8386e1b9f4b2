// Package realtime fans user-scoped change events out to subscribers. It
// replaces the document-store change listeners of the hosted-backend
// version of the app: the service layer publishes an event after every
// mutation and the WebSocket handler bridges subscriptions to clients.
package realtime

import (
	"sync"
)

// Event tells a subscriber that a resource belonging to the user changed.
// Events carry no payload; clients re-fetch the resource they care about.
type Event struct {
	Type     string `json:"type"`
	Resource string `json:"resource"`
}

// Resource names used in events.
const (
	ResourceFriends   = "friends"
	ResourceRequests  = "friendRequests"
	ResourceSessions  = "studySessions"
	ResourceTodos     = "todos"
	ResourceExpenses  = "expenses"
	ResourceTimetable = "timetable"
	ResourceLibrary   = "library"
)

// EventChanged is the only event type currently emitted.
const EventChanged = "changed"

type subscriber struct {
	userID string
	ch     chan Event
}

// Hub is an in-process publish/subscribe registry keyed by user ID. A nil
// *Hub is valid and drops all events, so components can treat the feed as
// optional.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]*subscriber
	nextID int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]*subscriber),
	}
}

// Subscribe registers interest in events for userID. It returns the event
// channel and a cancel function; the channel is closed when cancel is
// called. Cancel is safe to call more than once.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	sub := &subscriber{
		userID: userID,
		ch:     make(chan Event, 16),
	}
	h.subs[id] = sub

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if s, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(s.ch)
			}
		})
	}

	return sub.ch, cancel
}

// Publish delivers an event to every subscriber of userID. Delivery is
// best effort: a subscriber whose buffer is full misses the event rather
// than blocking the publisher. Handlers receiving from the channel must
// not assume they run exclusively.
func (h *Hub) Publish(userID string, ev Event) {
	if h == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if sub.userID != userID {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// Changed publishes the standard change event for a resource.
func (h *Hub) Changed(userID, resource string) {
	h.Publish(userID, Event{Type: EventChanged, Resource: resource})
}
