package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, businessMiddleware gin.HandlerFunc) {
	group := g.Group("/businesses")

	// === Public Routes ===
	group.GET("", h.List)

	// === Authenticated Routes ===
	group.GET("/mine", authMiddleware, businessMiddleware, h.Mine)
	group.POST("", authMiddleware, businessMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, h.Update)

	// Registered after /mine so the literal segment wins.
	group.GET("/:id", h.Get)
}
