// Package notify implements the push side of the thread feed: a
// per-conversation fan-out hub whose signals tell connected clients that
// the feed grew and the thread should be refetched. The hub carries no
// thread data itself; watchers always refetch through the HTTP API.
package notify

import (
	"sync"

	"github.com/skeinlab/skein/pkg/logger"
)

// Invalidation is the payload pushed to watchers on every append.
type Invalidation struct {
	ConversationID string `json:"conversation_id"`
	EventCount     int64  `json:"event_count"`
}

// subscriberBuffer bounds how many undelivered signals a watcher may lag
// behind before new signals are dropped for it. A dropped signal is
// harmless: the next one triggers the same refetch.
const subscriberBuffer = 8

// Hub fans append signals out to per-conversation subscribers. Safe for
// concurrent use.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Invalidation]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan Invalidation]struct{}),
	}
}

// Subscribe registers a watcher for one conversation. The returned cancel
// function must be called when the watcher disconnects.
func (h *Hub) Subscribe(conversationID string) (<-chan Invalidation, func()) {
	ch := make(chan Invalidation, subscriberBuffer)

	h.mu.Lock()
	set, ok := h.subs[conversationID]
	if !ok {
		set = make(map[chan Invalidation]struct{})
		h.subs[conversationID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[conversationID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, conversationID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// NotifyAppend pushes an invalidation to every watcher of the
// conversation. Non-blocking: watchers that cannot keep up miss signals
// instead of stalling the ingest path.
func (h *Hub) NotifyAppend(conversationID string, eventCount int64) {
	inv := Invalidation{ConversationID: conversationID, EventCount: eventCount}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[conversationID] {
		select {
		case ch <- inv:
		default:
			logger.Debug("[Notify] dropping signal for slow watcher of %s", conversationID)
		}
	}
}

// WatcherCount returns the number of active watchers for a conversation.
func (h *Hub) WatcherCount(conversationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[conversationID])
}
