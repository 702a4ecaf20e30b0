package entity

// GroupKind identifies the type of a display group, the unit of thread
// reconstruction output.
type GroupKind string

const (
	// GroupKindMessage is a single plain event, optionally paired with its
	// tool result.
	GroupKindMessage GroupKind = "message"

	// GroupKindSubagent is one collapsed sub-agent block.
	GroupKindSubagent GroupKind = "subagent"

	// GroupKindParallelSubagents is a cluster of sub-agent blocks
	// recognized as having run concurrently.
	GroupKindParallelSubagents GroupKind = "parallel_subagents"
)

// PollStatus is the liveness state of a background spawn as reported by its
// most recent polling call.
type PollStatus string

const (
	PollStatusRunning   PollStatus = "running"
	PollStatusCompleted PollStatus = "completed"
	PollStatusFailed    PollStatus = "failed"
)

// IsTerminal reports whether the status is a final state.
func (s PollStatus) IsTerminal() bool {
	return s == PollStatusCompleted || s == PollStatusFailed
}

// MessageData is the payload of a message group.
type MessageData struct {
	// Event is the displayed event.
	Event *Event `json:"event"`

	// Result is the paired tool_result when Event is a tool_call.
	// Nil while the call is still pending.
	Result *Event `json:"result,omitempty"`
}

// SubagentData is one resolved sub-agent block: the spawn call, everything
// the sub-agent did, and its outcome.
type SubagentData struct {
	// Spawn is the tool_call event that started the sub-agent.
	Spawn *Event `json:"spawn"`

	// NestedCalls are the tool calls issued by the sub-agent, in arrival
	// order. Polling calls are included here as well as in PollingCalls.
	NestedCalls []*Event `json:"nested_calls,omitempty"`

	// SpawnResult is the tool_result answering the spawn itself.
	// Nil while the sub-agent is still running.
	SpawnResult *Event `json:"spawn_result,omitempty"`

	// PollingCalls are the status checks against a background spawn, in
	// arrival order. Empty for foreground spawns.
	PollingCalls []*Event `json:"polling_calls,omitempty"`

	// LastPollStatus is the liveness state derived from the most recent
	// polling call's result. Empty for foreground spawns.
	LastPollStatus PollStatus `json:"last_poll_status,omitempty"`

	// ClusterSize is the number of spawns in this block's parallel
	// cluster; 1 for a standalone block.
	ClusterSize int `json:"cluster_size"`
}

// DisplayGroup is one unit of reconstructed thread output. Exactly one of
// Message, Subagent, Parallel is populated, matching Kind.
type DisplayGroup struct {
	// Kind selects which payload field is populated.
	Kind GroupKind `json:"kind"`

	// Message is set when Kind is GroupKindMessage.
	Message *MessageData `json:"message,omitempty"`

	// Subagent is set when Kind is GroupKindSubagent.
	Subagent *SubagentData `json:"subagent,omitempty"`

	// Parallel is set when Kind is GroupKindParallelSubagents, ordered by
	// spawn timestamp.
	Parallel []*SubagentData `json:"parallel,omitempty"`
}
