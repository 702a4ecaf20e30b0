package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
)

// nowFunc is swappable in tests.
var nowFunc = time.Now

// EventStore is an in-memory implementation of the EventRepository
// interface. Feeds are slices keyed by conversation id; reads hand out deep
// copies so snapshots stay immutable under concurrent appends.
type EventStore struct {
	mu    sync.RWMutex
	feeds map[string][]*entity.Event
}

// NewEventStore creates a new instance of the EventStore.
func NewEventStore() *EventStore {
	return &EventStore{
		feeds: make(map[string][]*entity.Event),
	}
}

func (s *EventStore) Append(_ context.Context, conversationID string, events []*entity.Event) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	feed := s.feeds[conversationID]
	for _, ev := range events {
		cp := &entity.Event{}
		if err := copier.CopyWithOption(cp, ev, copier.Option{DeepCopy: true}); err != nil {
			return 0, fmt.Errorf("failed to copy event: %w", err)
		}
		cp.ConversationID = conversationID
		cp.Seq = int64(len(feed)) + 1
		feed = append(feed, cp)
	}
	s.feeds[conversationID] = feed
	return int64(len(feed)), nil
}

func (s *EventStore) ListByConversation(_ context.Context, conversationID string) ([]*entity.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	feed := s.feeds[conversationID]
	out := make([]*entity.Event, 0, len(feed))
	for _, ev := range feed {
		cp := &entity.Event{}
		if err := copier.CopyWithOption(cp, ev, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("failed to copy event: %w", err)
		}
		out = append(out, cp)
	}
	return out, nil
}

func (s *EventStore) CountByConversation(_ context.Context, conversationID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.feeds[conversationID])), nil
}

func (s *EventStore) DeleteByConversation(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.feeds, conversationID)
	return nil
}
