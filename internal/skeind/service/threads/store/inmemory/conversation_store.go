package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
	"github.com/skeinlab/skein/internal/skeind/service/threads/pkg/errno"
)

// ConversationStore is an in-memory implementation of the
// ConversationRepository interface.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*entity.Conversation
}

// NewConversationStore creates a new instance of the ConversationStore.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]*entity.Conversation),
	}
}

func (s *ConversationStore) Create(_ context.Context, conv *entity.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[conv.ID]; ok {
		return errno.ErrConversationExists
	}
	cp := *conv
	s.conversations[conv.ID] = &cp
	return nil
}

func (s *ConversationStore) Get(_ context.Context, id string) (*entity.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, errno.ErrConversationNotFound
	}
	cp := *conv
	return &cp, nil
}

func (s *ConversationStore) List(_ context.Context) ([]*entity.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Conversation, 0, len(s.conversations))
	for _, conv := range s.conversations {
		cp := *conv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *ConversationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[id]; !ok {
		return errno.ErrConversationNotFound
	}
	delete(s.conversations, id)
	return nil
}

func (s *ConversationStore) Touch(_ context.Context, id string, eventCount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		return errno.ErrConversationNotFound
	}
	conv.EventCount = eventCount
	conv.UpdatedAt = nowFunc()
	return nil
}
