package reconstruct

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
)

// --- scenario builders ---

var seqCounter int64

func nextSeq() int64 {
	seqCounter++
	return seqCounter
}

func textEvent(text string, ts time.Time) *entity.Event {
	return &entity.Event{
		ID:        fmt.Sprintf("ev-text-%d", nextSeq()),
		Seq:       seqCounter,
		Timestamp: ts,
		Kind:      entity.EventKindText,
		Text:      text,
	}
}

func toolCall(toolID, name string, ts time.Time) *entity.Event {
	return &entity.Event{
		ID:        fmt.Sprintf("ev-call-%d", nextSeq()),
		Seq:       seqCounter,
		Timestamp: ts,
		Kind:      entity.EventKindToolCall,
		Tool:      &entity.ToolDescriptor{ToolID: toolID, Name: name},
	}
}

func toolResult(callID string, ts time.Time, isError bool, content string) *entity.Event {
	return &entity.Event{
		ID:        fmt.Sprintf("ev-result-%d", nextSeq()),
		Seq:       seqCounter,
		Timestamp: ts,
		Kind:      entity.EventKindToolResult,
		Result:    &entity.ResultPayload{ToolCallID: callID, IsError: isError, Content: content},
	}
}

func spawn(toolID string, ts time.Time) *entity.Event {
	ev := toolCall(toolID, entity.ToolNameSpawn, ts)
	ev.Tool.Subagent = &entity.SubagentDescriptor{Type: "Explore"}
	return ev
}

func backgroundSpawn(toolID string, ts time.Time) *entity.Event {
	ev := spawn(toolID, ts)
	ev.Tool.Subagent.RunInBackground = true
	return ev
}

func nestedCall(parentID, toolID, name string, ts time.Time) *entity.Event {
	ev := toolCall(toolID, name, ts)
	ev.Tool.ParentToolUseID = parentID
	return ev
}

func pollCall(parentID, taskID, toolID string, ts time.Time) *entity.Event {
	ev := nestedCall(parentID, toolID, entity.ToolNamePoll, ts)
	ev.Tool.Subagent = &entity.SubagentDescriptor{TaskID: taskID}
	return ev
}

func group(events []*entity.Event) []*entity.DisplayGroup {
	return GroupThread(events, BuildResultIndex(events))
}

func kinds(groups []*entity.DisplayGroup) []entity.GroupKind {
	out := make([]entity.GroupKind, len(groups))
	for i, g := range groups {
		out[i] = g.Kind
	}
	return out
}

// --- tests ---

func TestGroupThreadEmpty(t *testing.T) {
	groups := GroupThread(nil, BuildResultIndex(nil))
	if len(groups) != 0 {
		t.Fatalf("expected no groups for empty input, got %d", len(groups))
	}
}

// End-to-end scenario: a spawn with one nested call and a terminal result,
// followed by a top-level text event.
func TestGroupThreadSubagentScenario(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		spawn("task-a", base),
		textEvent("working on it", base.Add(1*time.Millisecond)),
		nestedCall("task-a", "tc-read", "Read", base.Add(2*time.Millisecond)),
		toolResult("task-a", base.Add(3*time.Millisecond), false, "done"),
	}

	groups := group(events)

	want := []entity.GroupKind{entity.GroupKindSubagent, entity.GroupKindMessage}
	if !reflect.DeepEqual(kinds(groups), want) {
		t.Fatalf("group kinds = %v, want %v", kinds(groups), want)
	}

	sub := groups[0].Subagent
	if sub.Spawn.Tool.ToolID != "task-a" {
		t.Errorf("spawn tool id = %q, want task-a", sub.Spawn.Tool.ToolID)
	}
	if len(sub.NestedCalls) != 1 || sub.NestedCalls[0].Tool.Name != "Read" {
		t.Errorf("nested calls = %+v, want single Read call", sub.NestedCalls)
	}
	if sub.SpawnResult == nil || sub.SpawnResult.Result.Content != "done" {
		t.Errorf("spawn result not paired: %+v", sub.SpawnResult)
	}
	if sub.ClusterSize != 1 {
		t.Errorf("cluster size = %d, want 1", sub.ClusterSize)
	}
	if groups[1].Message.Event.Text != "working on it" {
		t.Errorf("message event = %+v, want the text event", groups[1].Message.Event)
	}
}

func TestGroupThreadIdempotence(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		textEvent("hello", base),
		spawn("task-a", base.Add(100*time.Millisecond)),
		spawn("task-b", base.Add(600*time.Millisecond)),
		nestedCall("task-a", "tc-1", "Bash", base.Add(700*time.Millisecond)),
		toolCall("tc-top", "Grep", base.Add(800*time.Millisecond)),
		toolResult("tc-top", base.Add(900*time.Millisecond), false, "matches"),
	}
	index := BuildResultIndex(events)

	first := GroupThread(events, index)
	second := GroupThread(events, index)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("grouping is not idempotent: two runs over the same input differ")
	}
}

// Every non-result, non-nested event appears in exactly one group, exactly
// once, and spawns are never duplicated across cluster members.
func TestGroupThreadCoverage(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		textEvent("start", base),
		spawn("task-a", base.Add(1*time.Second)),
		spawn("task-b", base.Add(1500*time.Millisecond)), // clusters with task-a
		nestedCall("task-a", "tc-1", "Read", base.Add(2*time.Second)),
		nestedCall("task-b", "tc-2", "Bash", base.Add(2*time.Second)),
		toolCall("tc-top", "Glob", base.Add(3*time.Second)),
		toolResult("tc-1", base.Add(4*time.Second), false, "ok"),
		toolResult("task-a", base.Add(5*time.Second), false, "ok"),
		textEvent("end", base.Add(6*time.Second)),
	}

	groups := group(events)

	want := []entity.GroupKind{
		entity.GroupKindMessage,
		entity.GroupKindParallelSubagents,
		entity.GroupKindMessage,
		entity.GroupKindMessage,
	}
	if !reflect.DeepEqual(kinds(groups), want) {
		t.Fatalf("group kinds = %v, want %v", kinds(groups), want)
	}

	seen := map[string]int{}
	for _, g := range groups {
		switch g.Kind {
		case entity.GroupKindMessage:
			seen[g.Message.Event.ID]++
		case entity.GroupKindSubagent:
			seen[g.Subagent.Spawn.ID]++
		case entity.GroupKindParallelSubagents:
			for _, d := range g.Parallel {
				seen[d.Spawn.ID]++
			}
		}
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("event %s emitted %d times, want exactly once", id, n)
		}
	}
	if len(groups[1].Parallel) != 2 {
		t.Errorf("cluster size = %d, want 2", len(groups[1].Parallel))
	}
}

// Clustering threshold: spawns at t, t+1999ms, t+4200ms. The first two
// cluster (within the window of the seed); the third is more than the
// window away from the seed and stands alone.
func TestGroupThreadClusteringThreshold(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		spawn("task-a", base),
		spawn("task-b", base.Add(1999*time.Millisecond)),
		spawn("task-c", base.Add(4200*time.Millisecond)),
	}

	groups := group(events)

	want := []entity.GroupKind{entity.GroupKindParallelSubagents, entity.GroupKindSubagent}
	if !reflect.DeepEqual(kinds(groups), want) {
		t.Fatalf("group kinds = %v, want %v", kinds(groups), want)
	}
	if len(groups[0].Parallel) != 2 {
		t.Fatalf("cluster size = %d, want 2", len(groups[0].Parallel))
	}
	for _, d := range groups[0].Parallel {
		if d.ClusterSize != 2 {
			t.Errorf("member cluster size = %d, want 2", d.ClusterSize)
		}
	}
	if got := groups[1].Subagent.Spawn.Tool.ToolID; got != "task-c" {
		t.Errorf("standalone spawn = %q, want task-c", got)
	}
}

// Clustering is anchored to the seed, not pairwise: the cluster is emitted
// once, at the position of its first-encountered member, and later members
// do not re-emit it.
func TestGroupThreadClusterEmittedOnce(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		spawn("task-a", base),
		textEvent("between", base.Add(500*time.Millisecond)),
		spawn("task-b", base.Add(1*time.Second)),
	}

	groups := group(events)

	want := []entity.GroupKind{entity.GroupKindParallelSubagents, entity.GroupKindMessage}
	if !reflect.DeepEqual(kinds(groups), want) {
		t.Fatalf("group kinds = %v, want %v", kinds(groups), want)
	}
}

// Background polling liveness: three polls resolving running, running,
// failed: the last poll wins.
func TestGroupThreadBackgroundPollStatus(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		backgroundSpawn("task-bg", base),
		pollCall("task-bg", "task-bg", "poll-1", base.Add(1*time.Minute)),
		toolResult("poll-1", base.Add(61*time.Second), false, `{"status":"running"}`),
		pollCall("task-bg", "task-bg", "poll-2", base.Add(2*time.Minute)),
		toolResult("poll-2", base.Add(121*time.Second), false, `{"status":"running"}`),
		pollCall("task-bg", "task-bg", "poll-3", base.Add(3*time.Minute)),
		toolResult("poll-3", base.Add(181*time.Second), true, "task crashed"),
	}

	groups := group(events)

	if len(groups) != 1 || groups[0].Kind != entity.GroupKindSubagent {
		t.Fatalf("groups = %v, want single subagent group", kinds(groups))
	}
	sub := groups[0].Subagent
	if len(sub.PollingCalls) != 3 {
		t.Fatalf("polling calls = %d, want 3", len(sub.PollingCalls))
	}
	if sub.LastPollStatus != entity.PollStatusFailed {
		t.Errorf("last poll status = %q, want failed", sub.LastPollStatus)
	}
}

func TestGroupThreadBackgroundPollDefaults(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("no polls yet reads as running", func(t *testing.T) {
		groups := group([]*entity.Event{backgroundSpawn("task-bg", base)})
		if got := groups[0].Subagent.LastPollStatus; got != entity.PollStatusRunning {
			t.Errorf("status = %q, want running", got)
		}
	})

	t.Run("latest poll unanswered reads as running", func(t *testing.T) {
		groups := group([]*entity.Event{
			backgroundSpawn("task-bg", base),
			pollCall("task-bg", "task-bg", "poll-1", base.Add(time.Minute)),
		})
		if got := groups[0].Subagent.LastPollStatus; got != entity.PollStatusRunning {
			t.Errorf("status = %q, want running", got)
		}
	})

	t.Run("successful poll with completed status", func(t *testing.T) {
		groups := group([]*entity.Event{
			backgroundSpawn("task-bg", base),
			pollCall("task-bg", "task-bg", "poll-1", base.Add(time.Minute)),
			toolResult("poll-1", base.Add(61*time.Second), false, `{"status":"completed"}`),
		})
		if got := groups[0].Subagent.LastPollStatus; got != entity.PollStatusCompleted {
			t.Errorf("status = %q, want completed", got)
		}
	})

	t.Run("foreground spawn has no poll status", func(t *testing.T) {
		groups := group([]*entity.Event{spawn("task-fg", base)})
		if got := groups[0].Subagent.LastPollStatus; got != "" {
			t.Errorf("status = %q, want empty for foreground spawn", got)
		}
	})
}

// Orphan nesting: a call referencing an unknown parent is invisible, not
// top-level, not attached anywhere.
func TestGroupThreadOrphanNestedCall(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		nestedCall("unknown-id", "tc-orphan", "Read", base),
		textEvent("visible", base.Add(time.Second)),
	}

	groups := group(events)

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1 (orphan must be invisible)", len(groups))
	}
	if groups[0].Kind != entity.GroupKindMessage || groups[0].Message.Event.Text != "visible" {
		t.Errorf("surviving group = %+v, want the text event", groups[0])
	}
}

// A nested call may arrive before its parent spawn; attachment is id-based,
// not position-based.
func TestGroupThreadNestedBeforeParent(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		nestedCall("task-a", "tc-early", "Read", base),
		spawn("task-a", base.Add(time.Second)),
	}

	groups := group(events)

	if len(groups) != 1 || groups[0].Kind != entity.GroupKindSubagent {
		t.Fatalf("groups = %v, want single subagent group", kinds(groups))
	}
	nested := groups[0].Subagent.NestedCalls
	if len(nested) != 1 || nested[0].Tool.ToolID != "tc-early" {
		t.Errorf("nested calls = %+v, want the early call attached", nested)
	}
}

// Result pairing on top-level calls: present result attaches, absent result
// leaves the field nil.
func TestGroupThreadMessageResultPairing(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		toolCall("tc-answered", "Read", base),
		toolCall("tc-pending", "Bash", base.Add(time.Second)),
		toolResult("tc-answered", base.Add(2*time.Second), false, "contents"),
	}

	groups := group(events)

	want := []entity.GroupKind{entity.GroupKindMessage, entity.GroupKindMessage}
	if !reflect.DeepEqual(kinds(groups), want) {
		t.Fatalf("group kinds = %v, want %v", kinds(groups), want)
	}
	if groups[0].Message.Result == nil || groups[0].Message.Result.Result.Content != "contents" {
		t.Errorf("answered call not paired: %+v", groups[0].Message.Result)
	}
	if groups[1].Message.Result != nil {
		t.Errorf("pending call should have nil result, got %+v", groups[1].Message.Result)
	}
}

// tool_result events never surface as their own group.
func TestGroupThreadResultsNeverEmitted(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		toolResult("ghost", base, false, "nobody asked"),
		textEvent("only me", base.Add(time.Second)),
	}

	groups := group(events)

	if len(groups) != 1 || groups[0].Kind != entity.GroupKindMessage {
		t.Fatalf("groups = %v, want single message group", kinds(groups))
	}
}

func TestGroupThreadDoesNotMutateInput(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		spawn("task-a", base),
		nestedCall("task-a", "tc-1", "Read", base.Add(time.Second)),
	}
	before := make([]entity.Event, len(events))
	for i, ev := range events {
		before[i] = *ev
	}

	group(events)

	for i, ev := range events {
		if !reflect.DeepEqual(before[i], *ev) {
			t.Errorf("event %d mutated by grouping", i)
		}
	}
}

func TestPendingToolIDs(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		toolCall("tc-answered", "Read", base),
		toolResult("tc-answered", base.Add(time.Second), false, "ok"),
		toolCall("tc-pending", "Bash", base.Add(2*time.Second)),
		spawn("task-a", base.Add(10*time.Second)),
		nestedCall("task-a", "tc-nested", "Grep", base.Add(11*time.Second)),
	}
	index := BuildResultIndex(events)
	groups := GroupThread(events, index)

	got := PendingToolIDs(groups, index)

	want := []string{"tc-pending", "task-a", "tc-nested"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("pending tool ids = %v, want %v", got, want)
	}
}
