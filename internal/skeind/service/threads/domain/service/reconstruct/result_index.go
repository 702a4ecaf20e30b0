// Package reconstruct turns a flat, append-only stream of agent events into
// a nested, display-ready list of groups.
//
// The feed carries no explicit tree structure beyond a single
// parent-reference field on tool calls; this package rebuilds the implicit
// request/response pairing and sub-agent nesting from ids alone. Both
// transforms are pure functions over an immutable snapshot of the feed:
// callers re-run them whenever the feed grows, and reprocessing never
// produces a different grouping for events already shown.
package reconstruct

import (
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
)

// ResultIndex maps a tool call's id to its matching tool_result event.
//
// Calls still in flight have no entry; downstream treats absence as "still
// pending". A result whose call never appears in the feed is indexed too,
// and simply never looked up.
type ResultIndex map[string]*entity.Event

// BuildResultIndex builds the call-id → result lookup over the full event
// list in a single linear pass. Total over any input, including the empty
// list. If a call id recurs among results, the last write wins.
func BuildResultIndex(events []*entity.Event) ResultIndex {
	index := make(ResultIndex)
	for _, ev := range events {
		if ev.Kind != entity.EventKindToolResult || ev.Result == nil {
			continue
		}
		if ev.Result.ToolCallID == "" {
			continue
		}
		index[ev.Result.ToolCallID] = ev
	}
	return index
}
