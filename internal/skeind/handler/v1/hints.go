package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/skeinlab/skein/internal/pkg/core"
	"github.com/skeinlab/skein/internal/skeind/service/threads/hints"
	"github.com/skeinlab/skein/pkg/errorx"
)

// HintHandler accepts best-effort activity hints for pending tool calls.
type HintHandler struct {
	hints *hints.Store
}

// NewHintHandler creates a new HintHandler.
func NewHintHandler(hintStore *hints.Store) *HintHandler {
	return &HintHandler{hints: hintStore}
}

// Set handles PUT /v1/hints/:toolId.
func (h *HintHandler) Set(c *gin.Context) {
	toolID := c.Param("toolId")
	var req SetHintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrHintSet, "bind hint for %q", toolID), nil)
		return
	}
	h.hints.Set(toolID, req.Text)
	core.WriteResponse(c, nil, gin.H{"tool_id": toolID, "set": true})
}
