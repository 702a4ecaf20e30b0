package v1

import (
	"time"

	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
)

// CreateConversationRequest is the body for POST /v1/conversations.
type CreateConversationRequest struct {
	Title   string `json:"title,omitempty"`
	AgentID string `json:"agent_id,omitempty"`
}

// ConversationResponse is the wire form of a conversation record.
type ConversationResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title,omitempty"`
	AgentID    string `json:"agent_id,omitempty"`
	EventCount int64  `json:"event_count"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// AppendEventsRequest is the body for POST /v1/conversations/:id/events.
// Events are taken verbatim; ids and timestamps are filled in when absent.
type AppendEventsRequest struct {
	Events []*entity.Event `json:"events" binding:"required"`
}

// SetHintRequest is the body for PUT /v1/hints/:toolId.
type SetHintRequest struct {
	Text string `json:"text" binding:"required"`
}

// ThreadResponse is the body for GET /v1/conversations/:id/thread: the
// reconstructed display groups plus hints for calls still pending.
type ThreadResponse struct {
	ConversationID string                 `json:"conversation_id"`
	EventCount     int64                  `json:"event_count"`
	Groups         []*entity.DisplayGroup `json:"groups"`
	PendingToolIDs []string               `json:"pending_tool_ids,omitempty"`

	// Hints maps pending tool ids to their short-lived activity hints.
	// Best effort: ids with no hint set are simply absent.
	Hints map[string]string `json:"hints,omitempty"`
}

// FormatTime renders timestamps in the wire format used across the API.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toConversationResponse(conv *entity.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:         conv.ID,
		Title:      conv.Title,
		AgentID:    conv.AgentID,
		EventCount: conv.EventCount,
		CreatedAt:  FormatTime(conv.CreatedAt),
		UpdatedAt:  FormatTime(conv.UpdatedAt),
	}
}
