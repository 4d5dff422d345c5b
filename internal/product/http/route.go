package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers product catalog routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	products := g.Group("/products")
	products.Use(authMiddleware)
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.POST("", h.Create)
		products.PATCH("/:id", h.Update)

		products.POST("/:id/slots", h.AddSlot)
		products.PATCH("/:id/slots/:slotId", h.UpdateSlot)
		products.DELETE("/:id/slots/:slotId", h.RemoveSlot)
	}
}
