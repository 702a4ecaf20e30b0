package repo

import (
	"context"

	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
)

// EventRepository persists the append-only event feed per conversation.
//
// Events are immutable once appended; the only mutation a feed sees is
// growth at the tail (and whole-feed removal when its conversation is
// deleted).
type EventRepository interface {
	// Append stores the batch at the tail of the conversation's feed,
	// assigning each event its arrival sequence number. Returns the new
	// total event count.
	Append(ctx context.Context, conversationID string, events []*entity.Event) (int64, error)

	// ListByConversation returns the full feed in arrival order. The
	// returned events are deep copies: callers hold an immutable snapshot
	// that later appends cannot disturb.
	ListByConversation(ctx context.Context, conversationID string) ([]*entity.Event, error)

	// CountByConversation returns the current feed length.
	CountByConversation(ctx context.Context, conversationID string) (int64, error)

	// DeleteByConversation removes the whole feed.
	DeleteByConversation(ctx context.Context, conversationID string) error
}
