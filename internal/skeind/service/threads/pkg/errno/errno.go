package errno

import (
	"errors"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrConversationExists   = errors.New("conversation already exists")
	ErrEventNotFound        = errors.New("event not found")
	ErrInvalidEventKind     = errors.New("invalid event kind")
	ErrMissingToolID        = errors.New("tool call missing tool id")
	ErrMissingResultRef     = errors.New("tool result missing tool call reference")
	ErrEmptyBatch           = errors.New("empty event batch")
)
