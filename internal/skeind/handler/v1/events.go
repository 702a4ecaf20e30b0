package v1

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/skeinlab/skein/internal/pkg/core"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/service"
	"github.com/skeinlab/skein/internal/skeind/service/threads/pkg/errno"
	"github.com/skeinlab/skein/pkg/errorx"
)

// EventHandler handles the event feed REST API endpoints.
type EventHandler struct {
	svc service.ThreadService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc service.ThreadService) *EventHandler {
	return &EventHandler{svc: svc}
}

// Append handles POST /v1/conversations/:id/events.
func (h *EventHandler) Append(c *gin.Context) {
	id := c.Param("id")
	var req AppendEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "bind append events request"), nil)
		return
	}

	result, err := h.svc.AppendEvents(c.Request.Context(), id, req.Events)
	if err != nil {
		code := ErrEventAppend
		if errors.Is(err, errno.ErrConversationNotFound) {
			code = ErrConversationNotFound
		}
		core.WriteResponse(c, errorx.WrapC(err, code, "append events to %q", id), nil)
		return
	}
	core.WriteResponse(c, nil, result)
}

// List handles GET /v1/conversations/:id/events.
func (h *EventHandler) List(c *gin.Context) {
	id := c.Param("id")
	events, err := h.svc.ListEvents(c.Request.Context(), id)
	if err != nil {
		code := ErrEventList
		if errors.Is(err, errno.ErrConversationNotFound) {
			code = ErrConversationNotFound
		}
		core.WriteResponse(c, errorx.WrapC(err, code, "list events for %q", id), nil)
		return
	}
	core.WriteResponse(c, nil, gin.H{"data": events})
}
