package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking lifecycle routes. All of them require
// an authenticated operator.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	bookings := g.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/deliver", h.Deliver)
		bookings.POST("/:id/pickup", h.PickUp)
		bookings.POST("/:id/complete", h.Complete)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.POST("/:id/payments", h.RecordPayment)
		bookings.POST("/:id/payments/refresh", h.RefreshPayment)
	}
}
