package boltdb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/boltdb/bolt"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
	"github.com/skeinlab/skein/internal/skeind/service/threads/pkg/errno"
	"github.com/skeinlab/skein/pkg/utils/json"
)

// ConversationStore implements the ConversationRepository interface using
// BoltDB.
type ConversationStore struct {
	boltDB *bolt.DB
}

// NewConversationStore creates a new ConversationStore instance.
func NewConversationStore(boltDB *DB) *ConversationStore {
	return &ConversationStore{boltDB: boltDB.Bolt()}
}

func (s *ConversationStore) Create(_ context.Context, conv *entity.Conversation) error {
	return s.boltDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversationStore)
		if b.Get([]byte(conv.ID)) != nil {
			return errno.ErrConversationExists
		}
		data, err := json.Marshal(conv)
		if err != nil {
			return fmt.Errorf("failed to marshal conversation: %w", err)
		}
		return b.Put([]byte(conv.ID), data)
	})
}

func (s *ConversationStore) Get(_ context.Context, id string) (*entity.Conversation, error) {
	var conv entity.Conversation
	err := s.boltDB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversationStore)
		data := b.Get([]byte(id))
		if data == nil {
			return errno.ErrConversationNotFound
		}
		return json.Unmarshal(data, &conv)
	})
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *ConversationStore) List(_ context.Context) ([]*entity.Conversation, error) {
	var conversations []*entity.Conversation
	err := s.boltDB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversationStore)
		return b.ForEach(func(k, v []byte) error {
			var conv entity.Conversation
			if err := json.Unmarshal(v, &conv); err != nil {
				return fmt.Errorf("failed to unmarshal conversation: %w", err)
			}
			conversations = append(conversations, &conv)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].UpdatedAt.After(conversations[j].UpdatedAt)
	})
	return conversations, nil
}

func (s *ConversationStore) Delete(_ context.Context, id string) error {
	return s.boltDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversationStore)
		if b.Get([]byte(id)) == nil {
			return errno.ErrConversationNotFound
		}
		return b.Delete([]byte(id))
	})
}

func (s *ConversationStore) Touch(_ context.Context, id string, eventCount int64) error {
	return s.boltDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversationStore)
		data := b.Get([]byte(id))
		if data == nil {
			return errno.ErrConversationNotFound
		}
		var conv entity.Conversation
		if err := json.Unmarshal(data, &conv); err != nil {
			return fmt.Errorf("failed to unmarshal conversation: %w", err)
		}
		conv.EventCount = eventCount
		conv.UpdatedAt = time.Now()
		updated, err := json.Marshal(&conv)
		if err != nil {
			return fmt.Errorf("failed to marshal conversation: %w", err)
		}
		return b.Put([]byte(id), updated)
	})
}
