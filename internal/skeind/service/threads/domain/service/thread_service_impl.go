package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/repo"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/service/reconstruct"
	"github.com/skeinlab/skein/internal/skeind/service/threads/pkg/errno"
	"github.com/skeinlab/skein/pkg/logger"
)

// Notifier receives a signal whenever a conversation's feed grows, so
// connected watchers can refetch the thread.
type Notifier interface {
	NotifyAppend(conversationID string, eventCount int64)
}

type threadService struct {
	conversations repo.ConversationRepository
	events        repo.EventRepository
	notifier      Notifier
}

var _ ThreadService = (*threadService)(nil)

// NewThreadService creates the threads application service. notifier may be
// nil when no push channel is wired (e.g. in tests).
func NewThreadService(conversations repo.ConversationRepository, events repo.EventRepository, notifier Notifier) ThreadService {
	return &threadService{
		conversations: conversations,
		events:        events,
		notifier:      notifier,
	}
}

func (s *threadService) CreateConversation(ctx context.Context, title, agentID string) (*entity.Conversation, error) {
	now := time.Now()
	conv := &entity.Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		AgentID:   agentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	logger.Info("[Threads] conversation %s created (agent=%s)", conv.ID, agentID)
	return conv, nil
}

func (s *threadService) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	return s.conversations.Get(ctx, id)
}

func (s *threadService) ListConversations(ctx context.Context) ([]*entity.Conversation, error) {
	return s.conversations.List(ctx)
}

func (s *threadService) DeleteConversation(ctx context.Context, id string) error {
	if err := s.conversations.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.events.DeleteByConversation(ctx, id); err != nil {
		return fmt.Errorf("failed to delete feed for %q: %w", id, err)
	}
	logger.Info("[Threads] conversation %s deleted", id)
	return nil
}

func (s *threadService) AppendEvents(ctx context.Context, conversationID string, events []*entity.Event) (*AppendResult, error) {
	if len(events) == 0 {
		return nil, errno.ErrEmptyBatch
	}
	if _, err := s.conversations.Get(ctx, conversationID); err != nil {
		return nil, err
	}
	for _, ev := range events {
		if err := validateEvent(ev); err != nil {
			return nil, err
		}
		if ev.ID == "" {
			ev.ID = uuid.NewString()
		}
		if ev.Timestamp.IsZero() {
			ev.Timestamp = time.Now()
		}
	}

	total, err := s.events.Append(ctx, conversationID, events)
	if err != nil {
		return nil, fmt.Errorf("failed to append events: %w", err)
	}
	if err := s.conversations.Touch(ctx, conversationID, total); err != nil {
		return nil, fmt.Errorf("failed to touch conversation: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyAppend(conversationID, total)
	}
	logger.Debug("[Threads] appended %d events to %s (total=%d)", len(events), conversationID, total)

	return &AppendResult{
		ConversationID: conversationID,
		Appended:       len(events),
		EventCount:     total,
	}, nil
}

func (s *threadService) ListEvents(ctx context.Context, conversationID string) ([]*entity.Event, error) {
	if _, err := s.conversations.Get(ctx, conversationID); err != nil {
		return nil, err
	}
	return s.events.ListByConversation(ctx, conversationID)
}

func (s *threadService) GetThread(ctx context.Context, conversationID string) (*Thread, error) {
	if _, err := s.conversations.Get(ctx, conversationID); err != nil {
		return nil, err
	}
	// The repository hands back an immutable snapshot; the whole pipeline
	// is re-run over it on every request rather than updated in place.
	snapshot, err := s.events.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot feed for %q: %w", conversationID, err)
	}

	index := reconstruct.BuildResultIndex(snapshot)
	groups := reconstruct.GroupThread(snapshot, index)

	return &Thread{
		ConversationID: conversationID,
		EventCount:     int64(len(snapshot)),
		Groups:         groups,
		PendingToolIDs: reconstruct.PendingToolIDs(groups, index),
	}, nil
}

// validateEvent checks only what ingestion strictly needs: a known kind and
// the identifying fields for tool traffic. Payload schemas are not
// validated; downstream access is optional-field tolerant.
func validateEvent(ev *entity.Event) error {
	if !ev.Kind.Valid() {
		return fmt.Errorf("%w: %q", errno.ErrInvalidEventKind, ev.Kind)
	}
	if ev.Kind == entity.EventKindToolCall && (ev.Tool == nil || ev.Tool.ToolID == "") {
		return errno.ErrMissingToolID
	}
	if ev.Kind == entity.EventKindToolResult && (ev.Result == nil || ev.Result.ToolCallID == "") {
		return errno.ErrMissingResultRef
	}
	return nil
}
