package reconstruct

import (
	"testing"
	"time"

	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
)

func TestBuildResultIndex(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		events     []*entity.Event
		wantKeys   []string
		missingKey string
	}{
		{
			name:     "empty input",
			events:   nil,
			wantKeys: nil,
		},
		{
			name: "pairs call with result",
			events: []*entity.Event{
				toolCall("tc-1", "Read", base),
				toolResult("tc-1", base.Add(time.Second), false, "ok"),
			},
			wantKeys: []string{"tc-1"},
		},
		{
			name: "call without result stays pending",
			events: []*entity.Event{
				toolCall("tc-1", "Read", base),
			},
			missingKey: "tc-1",
		},
		{
			name: "result without call is indexed anyway",
			events: []*entity.Event{
				toolResult("ghost", base, false, "ok"),
			},
			wantKeys: []string{"ghost"},
		},
		{
			name: "result arriving before its call",
			events: []*entity.Event{
				toolResult("tc-1", base, false, "ok"),
				toolCall("tc-1", "Read", base.Add(time.Second)),
			},
			wantKeys: []string{"tc-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := BuildResultIndex(tt.events)
			for _, key := range tt.wantKeys {
				if index[key] == nil {
					t.Errorf("expected key %q in result index", key)
				}
			}
			if tt.missingKey != "" {
				if _, ok := index[tt.missingKey]; ok {
					t.Errorf("expected key %q to be absent", tt.missingKey)
				}
			}
		})
	}
}

func TestBuildResultIndexLastWriteWins(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	first := toolResult("tc-1", base, false, "first")
	second := toolResult("tc-1", base.Add(time.Second), false, "second")

	index := BuildResultIndex([]*entity.Event{first, second})

	got := index["tc-1"]
	if got == nil {
		t.Fatal("expected tc-1 in index")
	}
	if got.Result.Content != "second" {
		t.Errorf("expected last result to win, got content %q", got.Result.Content)
	}
}

func TestBuildResultIndexIgnoresMalformedResults(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	events := []*entity.Event{
		{ID: "e1", Kind: entity.EventKindToolResult, Timestamp: base}, // no payload
		{ID: "e2", Kind: entity.EventKindToolResult, Timestamp: base,
			Result: &entity.ResultPayload{}}, // no call reference
		textEvent("hello", base),
	}

	index := BuildResultIndex(events)
	if len(index) != 0 {
		t.Errorf("expected empty index, got %d entries", len(index))
	}
}
