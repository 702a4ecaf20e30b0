package boltdb

import (
	"bytes"
	"context"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
	"github.com/skeinlab/skein/pkg/utils/json"
)

// EventStore implements the EventRepository interface using BoltDB.
//
// Keys are "<conversationID>/<seq>" with the sequence zero-padded so a
// cursor prefix scan yields the feed in arrival order.
type EventStore struct {
	boltDB *bolt.DB
}

// NewEventStore creates a new EventStore instance.
func NewEventStore(boltDB *DB) *EventStore {
	return &EventStore{boltDB: boltDB.Bolt()}
}

func eventKey(conversationID string, seq int64) []byte {
	return []byte(fmt.Sprintf("%s/%020d", conversationID, seq))
}

func feedPrefix(conversationID string) []byte {
	return []byte(conversationID + "/")
}

func (s *EventStore) Append(_ context.Context, conversationID string, events []*entity.Event) (int64, error) {
	var total int64
	err := s.boltDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEventStore)
		total = countFeed(b, conversationID)
		for _, ev := range events {
			total++
			ev.ConversationID = conversationID
			ev.Seq = total
			data, err := json.Marshal(ev)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			if err := b.Put(eventKey(conversationID, total), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to append events to %q: %w", conversationID, err)
	}
	return total, nil
}

func (s *EventStore) ListByConversation(_ context.Context, conversationID string) ([]*entity.Event, error) {
	var events []*entity.Event
	err := s.boltDB.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketEventStore).Cursor()
		prefix := feedPrefix(conversationID)
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var ev entity.Event
			if err := json.Unmarshal(v, &ev); err != nil {
				return fmt.Errorf("failed to unmarshal event: %w", err)
			}
			events = append(events, &ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events for %q: %w", conversationID, err)
	}
	return events, nil
}

func (s *EventStore) CountByConversation(_ context.Context, conversationID string) (int64, error) {
	var total int64
	err := s.boltDB.View(func(tx *bolt.Tx) error {
		total = countFeed(tx.Bucket(bucketEventStore), conversationID)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *EventStore) DeleteByConversation(_ context.Context, conversationID string) error {
	return s.boltDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEventStore)
		// Collect keys first: deleting while the cursor iterates
		// invalidates it.
		var keys [][]byte
		c := b.Cursor()
		prefix := feedPrefix(conversationID)
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func countFeed(b *bolt.Bucket, conversationID string) int64 {
	var n int64
	c := b.Cursor()
	prefix := feedPrefix(conversationID)
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		n++
	}
	return n
}
