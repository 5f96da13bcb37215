package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.POST("/validate", h.ValidateSlot)
		group.PATCH("/:id/status", h.UpdateStatus)
	}

	// === Public Routes ===
	// The booking form shows free slots before the customer signs in.
	g.GET("/businesses/:id/availability", h.Availability)
}
