package entity

import (
	"time"
)

// Conversation is one agent activity feed: an append-only sequence of
// events owned by a single top-level agent run.
type Conversation struct {
	// ID is the unique conversation identifier.
	ID string `json:"id"`

	// Title is a human-readable label for listings.
	Title string `json:"title,omitempty"`

	// AgentID identifies the agent that produced this feed.
	AgentID string `json:"agent_id,omitempty"`

	// EventCount is the number of events appended so far.
	EventCount int64 `json:"event_count"`

	// CreatedAt is when the conversation was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when events were last appended.
	UpdatedAt time.Time `json:"updated_at"`
}
