package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers block ledger routes under the resources group.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/resources/:id/blocks", authMiddleware, h.ListForResource)
}
