package skeind

import (
	"github.com/gin-gonic/gin"

	"github.com/skeinlab/skein/internal/skeind/handler/middleware"
	v1 "github.com/skeinlab/skein/internal/skeind/handler/v1"
	"github.com/skeinlab/skein/internal/skeind/notify"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/service"
	"github.com/skeinlab/skein/internal/skeind/service/threads/hints"
)

// routerDeps holds the dependencies needed for route registration.
type routerDeps struct {
	threadService service.ThreadService
	hintStore     *hints.Store
	hub           *notify.Hub
	authConfig    *middleware.AuthConfig
}

func initRouter(g *gin.Engine, deps *routerDeps) {
	installMiddleware(g, deps)
	installController(g, deps)
}

func installMiddleware(g *gin.Engine, deps *routerDeps) {
	g.Use(gin.Recovery())
	g.Use(middleware.CORS())

	if deps.authConfig != nil {
		g.Use(middleware.BearerAuth(deps.authConfig))
	}
}

func installController(g *gin.Engine, deps *routerDeps) {
	// Handlers.
	conversationHandler := v1.NewConversationHandler(deps.threadService)
	eventHandler := v1.NewEventHandler(deps.threadService)
	threadHandler := v1.NewThreadHandler(deps.threadService, deps.hintStore)
	hintHandler := v1.NewHintHandler(deps.hintStore)
	watchHandler := v1.NewWatchHandler(deps.threadService, deps.hub)

	// --- /v1 route group ---
	apiV1 := g.Group("/v1")
	{
		// Conversation CRUD.
		apiV1.POST("/conversations", conversationHandler.Create)
		apiV1.GET("/conversations", conversationHandler.List)
		apiV1.GET("/conversations/:id", conversationHandler.Get)
		apiV1.DELETE("/conversations/:id", conversationHandler.Delete)

		// Raw event feed.
		apiV1.POST("/conversations/:id/events", eventHandler.Append)
		apiV1.GET("/conversations/:id/events", eventHandler.List)

		// Reconstructed display thread and live invalidation stream.
		apiV1.GET("/conversations/:id/thread", threadHandler.Get)
		apiV1.GET("/conversations/:id/watch", watchHandler.Watch)

		// Pending-call hints.
		apiV1.PUT("/hints/:toolId", hintHandler.Set)
	}
}
