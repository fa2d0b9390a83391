package http

import (
	"context"
	"strings"
	"sync"

	"github.com/aretw0/storefront/pkg/domain"
)

// Event names sent on the SSE stream.
const (
	EventDiff    = "diff"
	EventDeleted = "deleted"
)

// Event is a single notification for one session.
type Event struct {
	Name string
	Diff *domain.StateDiff
}

// StreamManager fans session changes out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- Event]struct{}
	buffer      int
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- Event]struct{}),
		buffer:      10,
	}
}

// Subscribe registers a listener for a session. The returned cancel func must be called.
func (sm *StreamManager) Subscribe(sessionID string) (<-chan Event, func()) {
	ch := make(chan Event, sm.buffer)

	sm.mu.Lock()
	if sm.subscribers[sessionID] == nil {
		sm.subscribers[sessionID] = make(map[chan<- Event]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}
	sm.mu.Unlock()

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[sessionID]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(sm.subscribers, sessionID)
			}
		}
	}
}

// Subscribers reports how many listeners a session has.
func (sm *StreamManager) Subscribers(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

// Broadcast sends an event to every listener of a session.
// Slow listeners whose buffer is full miss the event.
func (sm *StreamManager) Broadcast(sessionID string, ev Event) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Observe adapts the manager to session.Observer.
func (sm *StreamManager) Observe(_ context.Context, prev, next *domain.State) {
	if next == nil {
		if prev != nil {
			sm.Broadcast(prev.SessionID, Event{Name: EventDeleted, Diff: &domain.StateDiff{SessionID: prev.SessionID}})
		}
		return
	}
	if diff := domain.Diff(prev, next); diff != nil {
		sm.Broadcast(next.SessionID, Event{Name: EventDiff, Diff: diff})
	}
}

// watchFilter keeps the parts of a diff a subscriber asked for.
type watchFilter struct {
	page bool
	cart bool
}

func parseWatch(raw string) watchFilter {
	if strings.TrimSpace(raw) == "" {
		return watchFilter{page: true, cart: true}
	}
	var f watchFilter
	for _, part := range strings.Split(raw, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "page":
			f.page = true
		case "cart":
			f.cart = true
		}
	}
	return f
}

// apply returns the filtered diff, or nil when nothing of interest is left.
func (f watchFilter) apply(d *domain.StateDiff) *domain.StateDiff {
	out := &domain.StateDiff{SessionID: d.SessionID}
	if f.page {
		out.Page = d.Page
	}
	if f.cart {
		out.Upserted = d.Upserted
		out.Removed = d.Removed
		out.TotalItems = d.TotalItems
		out.TotalCost = d.TotalCost
	}
	if out.IsEmpty() {
		return nil
	}
	return out
}
