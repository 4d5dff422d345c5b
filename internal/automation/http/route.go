package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the automation trigger and audit routes.
// Running the processor is admin-only.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	auto := g.Group("/automation")
	auto.Use(authMiddleware)
	{
		auto.POST("/run", adminMiddleware, h.Run)
		auto.GET("/logs/bookings/:id", h.Logs)
	}
}
