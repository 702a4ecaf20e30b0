package v1

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/skeinlab/skein/internal/pkg/core"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/service"
	"github.com/skeinlab/skein/internal/skeind/service/threads/hints"
	"github.com/skeinlab/skein/internal/skeind/service/threads/pkg/errno"
	"github.com/skeinlab/skein/pkg/errorx"
)

// ThreadHandler serves reconstructed threads.
type ThreadHandler struct {
	svc   service.ThreadService
	hints *hints.Store
}

// NewThreadHandler creates a new ThreadHandler.
func NewThreadHandler(svc service.ThreadService, hintStore *hints.Store) *ThreadHandler {
	return &ThreadHandler{svc: svc, hints: hintStore}
}

// Get handles GET /v1/conversations/:id/thread.
func (h *ThreadHandler) Get(c *gin.Context) {
	id := c.Param("id")
	thread, err := h.svc.GetThread(c.Request.Context(), id)
	if err != nil {
		code := ErrThreadBuild
		if errors.Is(err, errno.ErrConversationNotFound) {
			code = ErrConversationNotFound
		}
		core.WriteResponse(c, errorx.WrapC(err, code, "reconstruct thread for %q", id), nil)
		return
	}

	core.WriteResponse(c, nil, ThreadResponse{
		ConversationID: thread.ConversationID,
		EventCount:     thread.EventCount,
		Groups:         thread.Groups,
		PendingToolIDs: thread.PendingToolIDs,
		Hints:          h.hints.Lookup(thread.PendingToolIDs),
	})
}
