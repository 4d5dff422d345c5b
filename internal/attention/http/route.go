package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the attention worklist routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	items := g.Group("/attention-items")
	items.Use(authMiddleware)
	{
		items.POST("", h.Flag)
		items.GET("", h.ListPending)
		items.GET("/counts", h.Counts)
		items.GET("/bookings/:id", h.ListForBooking)
		items.GET("/:id", h.Get)
		items.POST("/:id/start", h.Start)
		items.POST("/:id/resolve", h.Resolve)
		items.POST("/:id/dismiss", h.Dismiss)
	}
}
