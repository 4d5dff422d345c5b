package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers availability query routes. These are pure reads
// and safe to call repeatedly; nothing here reserves anything.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	avail := g.Group("/availability")
	avail.Use(authMiddleware)
	{
		avail.GET("/slots", h.Slots)
		avail.GET("/day-rental", h.DayRental)
		avail.GET("/earliest-date", h.EarliestDate)
	}
}
