package v1

import (
	"strconv"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/skeinlab/skein/internal/pkg/core"
	"github.com/skeinlab/skein/internal/skeind/notify"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/service"
	"github.com/skeinlab/skein/pkg/errorx"
	"github.com/skeinlab/skein/pkg/logger"
)

// heartbeatInterval keeps idle watch connections alive through proxies.
const heartbeatInterval = 25 * time.Second

// WatchHandler serves the SSE invalidation stream. Events carry no thread
// data: clients refetch GET .../thread on every "invalidate" signal.
type WatchHandler struct {
	svc service.ThreadService
	hub *notify.Hub
}

// NewWatchHandler creates a new WatchHandler.
func NewWatchHandler(svc service.ThreadService, hub *notify.Hub) *WatchHandler {
	return &WatchHandler{svc: svc, hub: hub}
}

// Watch handles GET /v1/conversations/:id/watch.
func (h *WatchHandler) Watch(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.svc.GetConversation(c.Request.Context(), id); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrConversationNotFound, "conversation %q not found", id), nil)
		return
	}

	signals, cancel := h.hub.Subscribe(id)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	w := c.Writer
	logger.Debug("[Watch] client connected to %s", id)

	// Initial snapshot marker so clients know the stream is live.
	if err := sse.Encode(w, sse.Event{Event: "ready", Data: gin.H{"conversation_id": id}}); err != nil {
		return
	}
	w.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			logger.Debug("[Watch] client disconnected from %s", id)
			return

		case inv := <-signals:
			err := sse.Encode(w, sse.Event{
				Id:    strconv.FormatInt(inv.EventCount, 10),
				Event: "invalidate",
				Data:  inv,
			})
			if err != nil {
				return
			}
			w.Flush()

		case <-heartbeat.C:
			if err := sse.Encode(w, sse.Event{Event: "heartbeat", Data: "ping"}); err != nil {
				return
			}
			w.Flush()
		}
	}
}
