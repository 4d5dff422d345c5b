package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers resource catalog routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	resources := g.Group("/resources")
	resources.Use(authMiddleware)
	{
		resources.GET("", h.List)
		resources.GET("/:id", h.Get)
		resources.POST("", h.Create)
		resources.PATCH("/:id", h.Update)
	}
}
