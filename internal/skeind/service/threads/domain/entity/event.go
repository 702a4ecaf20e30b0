package entity

import (
	"time"
)

// EventKind identifies the type of a conversation event.
//
// The feed is a closed tag set; thread reconstruction only distinguishes
// tool calls, tool results, and "everything else", but the full set is kept
// so renderers can dispatch exhaustively.
type EventKind string

const (
	// EventKindText is plain user or agent text.
	EventKindText EventKind = "text"

	// EventKindToolCall is a tool invocation issued by the agent.
	EventKindToolCall EventKind = "tool_call"

	// EventKindToolResult answers a prior tool call, referenced by tool id.
	EventKindToolResult EventKind = "tool_result"

	// EventKindApprovalRequest asks the user to approve a pending action.
	EventKindApprovalRequest EventKind = "approval_request"

	// EventKindUserQuestion is a clarifying question directed at the user.
	EventKindUserQuestion EventKind = "user_question"

	// EventKindError is a fault reported by the agent runtime.
	EventKindError EventKind = "error"

	// EventKindPending is a placeholder for an operation still in flight.
	EventKindPending EventKind = "pending"
)

// Valid reports whether k is a member of the closed kind set.
func (k EventKind) Valid() bool {
	switch k {
	case EventKindText, EventKindToolCall, EventKindToolResult,
		EventKindApprovalRequest, EventKindUserQuestion,
		EventKindError, EventKindPending:
		return true
	}
	return false
}

// Tool names with special meaning to thread reconstruction.
const (
	// ToolNameSpawn is the agent-spawning tool: a tool_call with this name
	// starts a sub-agent identified by the call's own tool id.
	ToolNameSpawn = "Task"

	// ToolNamePoll is the polling tool used to check on a background
	// sub-agent. Polling calls back-reference the spawn via Subagent.TaskID.
	ToolNamePoll = "TaskStatus"
)

// SubagentDescriptor carries sub-agent parameters on a spawn or polling call.
type SubagentDescriptor struct {
	// Type is the sub-agent flavor, e.g. "Explore" or "Plan".
	Type string `json:"type,omitempty"`

	// RunInBackground marks a spawn as asynchronous: the spawn returns
	// immediately and progress is observed through polling calls.
	RunInBackground bool `json:"run_in_background,omitempty"`

	// TaskID names the spawn a polling call is checking on. Empty on
	// spawn calls themselves.
	TaskID string `json:"task_id,omitempty"`
}

// ToolDescriptor describes the request side of a tool_call event.
type ToolDescriptor struct {
	// ToolID is the request identifier, unique per call.
	ToolID string `json:"tool_id"`

	// Name is the tool being invoked.
	Name string `json:"name"`

	// Arguments is the JSON string of the call's argument payload.
	Arguments string `json:"arguments,omitempty"`

	// ParentToolUseID names the ToolID of the enclosing spawn when this
	// call was issued by a sub-agent. Empty for top-level calls.
	ParentToolUseID string `json:"parent_tool_use_id,omitempty"`

	// Subagent is set when the tool is the spawning or polling tool.
	Subagent *SubagentDescriptor `json:"subagent,omitempty"`
}

// ResultPayload describes the response side of a tool_result event.
type ResultPayload struct {
	// ToolCallID references the ToolID of the call this result answers.
	ToolCallID string `json:"tool_call_id"`

	// IsError marks the call as failed.
	IsError bool `json:"is_error,omitempty"`

	// Content is the JSON string of the result content.
	Content string `json:"content,omitempty"`
}

// Event is one immutable record in a conversation's append-only feed.
//
// Events are never edited or removed once appended; the only change over
// time is that more events are appended at the tail. Timestamps are used
// only for ordering and proximity heuristics and are not assumed monotonic
// across different agents.
type Event struct {
	// ID is the opaque unique identifier assigned at ingest.
	ID string `json:"id"`

	// ConversationID is the feed this event belongs to.
	ConversationID string `json:"conversation_id"`

	// Seq is the arrival position within the conversation, assigned by the
	// event store on append. Strictly increasing per conversation.
	Seq int64 `json:"seq"`

	// Timestamp is when the event was recorded at origin.
	Timestamp time.Time `json:"timestamp"`

	// Kind identifies the event type.
	Kind EventKind `json:"kind"`

	// Text is the message body for text-like kinds.
	Text string `json:"text,omitempty"`

	// Tool is present on tool_call events.
	Tool *ToolDescriptor `json:"tool,omitempty"`

	// Result is present on tool_result events.
	Result *ResultPayload `json:"result,omitempty"`
}

// IsToolCall reports whether the event is a well-formed tool call.
func (e *Event) IsToolCall() bool {
	return e.Kind == EventKindToolCall && e.Tool != nil
}

// IsSpawn reports whether the event is a sub-agent spawn: a tool call using
// the spawning tool.
func (e *Event) IsSpawn() bool {
	return e.IsToolCall() && e.Tool.Name == ToolNameSpawn
}

// IsPoll reports whether the event is a polling call against a background
// spawn.
func (e *Event) IsPoll() bool {
	return e.IsToolCall() && e.Tool.Name == ToolNamePoll
}

// IsBackgroundSpawn reports whether the event is a spawn marked to run in
// the background.
func (e *Event) IsBackgroundSpawn() bool {
	return e.IsSpawn() && e.Tool.Subagent != nil && e.Tool.Subagent.RunInBackground
}
