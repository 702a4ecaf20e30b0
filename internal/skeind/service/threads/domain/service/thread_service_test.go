package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
	"github.com/skeinlab/skein/internal/skeind/service/threads/pkg/errno"
	"github.com/skeinlab/skein/internal/skeind/service/threads/store/inmemory"
)

type captureNotifier struct {
	conversationID string
	eventCount     int64
	calls          int
}

func (n *captureNotifier) NotifyAppend(conversationID string, eventCount int64) {
	n.conversationID = conversationID
	n.eventCount = eventCount
	n.calls++
}

func newTestService(t *testing.T) (ThreadService, *captureNotifier) {
	t.Helper()
	notifier := &captureNotifier{}
	svc := NewThreadService(inmemory.NewConversationStore(), inmemory.NewEventStore(), notifier)
	return svc, notifier
}

func TestAppendEventsAndGetThread(t *testing.T) {
	ctx := context.Background()
	svc, notifier := newTestService(t)

	conv, err := svc.CreateConversation(ctx, "refactor session", "agent-1")
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	res, err := svc.AppendEvents(ctx, conv.ID, []*entity.Event{
		{Kind: entity.EventKindText, Text: "hello", Timestamp: base},
		{Kind: entity.EventKindToolCall, Timestamp: base.Add(time.Second),
			Tool: &entity.ToolDescriptor{ToolID: "tc-1", Name: "Read"}},
	})
	if err != nil {
		t.Fatalf("AppendEvents: %v", err)
	}
	if res.Appended != 2 || res.EventCount != 2 {
		t.Errorf("append result = %+v, want 2/2", res)
	}
	if notifier.calls != 1 || notifier.conversationID != conv.ID || notifier.eventCount != 2 {
		t.Errorf("notifier = %+v, want one call for %s with count 2", notifier, conv.ID)
	}

	thread, err := svc.GetThread(ctx, conv.ID)
	if err != nil {
		t.Fatalf("GetThread: %v", err)
	}
	if len(thread.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(thread.Groups))
	}
	if len(thread.PendingToolIDs) != 1 || thread.PendingToolIDs[0] != "tc-1" {
		t.Errorf("pending tool ids = %v, want [tc-1]", thread.PendingToolIDs)
	}

	// Seq is assigned in arrival order.
	events, err := svc.ListEvents(ctx, conv.ID)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	for i, ev := range events {
		if ev.Seq != int64(i+1) {
			t.Errorf("event %d seq = %d, want %d", i, ev.Seq, i+1)
		}
	}
}

func TestAppendEventsValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	conv, _ := svc.CreateConversation(ctx, "", "")

	tests := []struct {
		name    string
		events  []*entity.Event
		wantErr error
	}{
		{
			name:    "empty batch",
			events:  nil,
			wantErr: errno.ErrEmptyBatch,
		},
		{
			name:    "unknown kind",
			events:  []*entity.Event{{Kind: "telepathy"}},
			wantErr: errno.ErrInvalidEventKind,
		},
		{
			name:    "tool call without tool id",
			events:  []*entity.Event{{Kind: entity.EventKindToolCall, Tool: &entity.ToolDescriptor{Name: "Read"}}},
			wantErr: errno.ErrMissingToolID,
		},
		{
			name:    "tool result without call reference",
			events:  []*entity.Event{{Kind: entity.EventKindToolResult, Result: &entity.ResultPayload{}}},
			wantErr: errno.ErrMissingResultRef,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AppendEvents(ctx, conv.ID, tt.events)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AppendEvents error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppendEventsUnknownConversation(t *testing.T) {
	ctx := context.Background()
	svc, notifier := newTestService(t)

	_, err := svc.AppendEvents(ctx, "nope", []*entity.Event{{Kind: entity.EventKindText}})
	if !errors.Is(err, errno.ErrConversationNotFound) {
		t.Errorf("error = %v, want conversation not found", err)
	}
	if notifier.calls != 0 {
		t.Error("notifier must not fire for failed appends")
	}
}

func TestDeleteConversationRemovesFeed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	conv, _ := svc.CreateConversation(ctx, "", "")
	_, _ = svc.AppendEvents(ctx, conv.ID, []*entity.Event{{Kind: entity.EventKindText, Text: "x"}})

	if err := svc.DeleteConversation(ctx, conv.ID); err != nil {
		t.Fatalf("DeleteConversation: %v", err)
	}
	if _, err := svc.GetThread(ctx, conv.ID); !errors.Is(err, errno.ErrConversationNotFound) {
		t.Errorf("GetThread after delete = %v, want not found", err)
	}
}

// A snapshot taken before an append must not observe the appended events.
func TestGetThreadSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	conv, _ := svc.CreateConversation(ctx, "", "")

	_, _ = svc.AppendEvents(ctx, conv.ID, []*entity.Event{{Kind: entity.EventKindText, Text: "one"}})
	before, _ := svc.ListEvents(ctx, conv.ID)
	_, _ = svc.AppendEvents(ctx, conv.ID, []*entity.Event{{Kind: entity.EventKindText, Text: "two"}})

	if len(before) != 1 {
		t.Errorf("snapshot grew after append: %d events", len(before))
	}
}
