package v1

import (
	"errors"

	"github.com/bytedance/gg/gslice"
	"github.com/gin-gonic/gin"
	"github.com/skeinlab/skein/internal/pkg/core"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/service"
	"github.com/skeinlab/skein/internal/skeind/service/threads/pkg/errno"
	"github.com/skeinlab/skein/pkg/errorx"
)

// ConversationHandler handles conversation management REST API endpoints.
type ConversationHandler struct {
	svc service.ThreadService
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(svc service.ThreadService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

// Create handles POST /v1/conversations.
func (h *ConversationHandler) Create(c *gin.Context) {
	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "bind create conversation request"), nil)
		return
	}

	conv, err := h.svc.CreateConversation(c.Request.Context(), req.Title, req.AgentID)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrConversationCreate, "create conversation"), nil)
		return
	}
	core.WriteResponse(c, nil, toConversationResponse(conv))
}

// List handles GET /v1/conversations.
func (h *ConversationHandler) List(c *gin.Context) {
	conversations, err := h.svc.ListConversations(c.Request.Context())
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrConversationList, "list conversations"), nil)
		return
	}

	core.WriteResponse(c, nil, gin.H{"data": gslice.Map(conversations, toConversationResponse)})
}

// Get handles GET /v1/conversations/:id.
func (h *ConversationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	conv, err := h.svc.GetConversation(c.Request.Context(), id)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrConversationNotFound, "conversation %q not found", id), nil)
		return
	}
	core.WriteResponse(c, nil, toConversationResponse(conv))
}

// Delete handles DELETE /v1/conversations/:id.
func (h *ConversationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteConversation(c.Request.Context(), id); err != nil {
		code := ErrConversationDelete
		if errors.Is(err, errno.ErrConversationNotFound) {
			code = ErrConversationNotFound
		}
		core.WriteResponse(c, errorx.WrapC(err, code, "delete conversation %q", id), nil)
		return
	}
	core.WriteResponse(c, nil, gin.H{"id": id, "deleted": true})
}
