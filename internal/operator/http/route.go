package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers operator auth and account routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
	}

	g.GET("/me", authMiddleware, h.Me)

	opsGroup := g.Group("/operators")
	opsGroup.Use(authMiddleware, adminMiddleware)
	{
		opsGroup.POST("", h.Create)
		opsGroup.GET("", h.List)
	}
}
