package repo

import (
	"context"

	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
)

// ConversationRepository persists conversation records.
type ConversationRepository interface {
	// Create stores a new conversation.
	Create(ctx context.Context, conv *entity.Conversation) error

	// Get returns the conversation by id, or errno.ErrConversationNotFound.
	Get(ctx context.Context, id string) (*entity.Conversation, error)

	// List returns all conversations, most recently updated first.
	List(ctx context.Context) ([]*entity.Conversation, error)

	// Delete removes the conversation record.
	Delete(ctx context.Context, id string) error

	// Touch bumps the conversation's event count and updated timestamp
	// after an append.
	Touch(ctx context.Context, id string, eventCount int64) error
}
