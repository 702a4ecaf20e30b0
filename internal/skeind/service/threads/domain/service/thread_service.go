package service

import (
	"context"

	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
)

// Thread is a reconstructed conversation view: the ordered display groups
// plus the tool ids still awaiting results (for hint lookup by renderers).
type Thread struct {
	ConversationID string                 `json:"conversation_id"`
	EventCount     int64                  `json:"event_count"`
	Groups         []*entity.DisplayGroup `json:"groups"`
	PendingToolIDs []string               `json:"pending_tool_ids,omitempty"`
}

// AppendResult reports the outcome of an event batch append.
type AppendResult struct {
	ConversationID string `json:"conversation_id"`
	Appended       int    `json:"appended"`
	EventCount     int64  `json:"event_count"`
}

// ThreadService is the application-facing API of the threads module.
type ThreadService interface {
	// CreateConversation registers a new event feed.
	CreateConversation(ctx context.Context, title, agentID string) (*entity.Conversation, error)

	// GetConversation returns a conversation record by id.
	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)

	// ListConversations returns all conversations, most recent first.
	ListConversations(ctx context.Context) ([]*entity.Conversation, error)

	// DeleteConversation removes the conversation and its feed.
	DeleteConversation(ctx context.Context, id string) error

	// AppendEvents validates and appends a batch to the feed's tail,
	// then signals watchers that the thread must be refetched.
	AppendEvents(ctx context.Context, conversationID string, events []*entity.Event) (*AppendResult, error)

	// ListEvents returns the raw feed in arrival order.
	ListEvents(ctx context.Context, conversationID string) ([]*entity.Event, error)

	// GetThread reconstructs the display-ready thread from the current
	// feed snapshot.
	GetThread(ctx context.Context, conversationID string) (*Thread, error)
}
