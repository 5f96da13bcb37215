package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers photo routes.
func RegisterRoutes(g *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	photos := g.Group("/photos")
	photos.GET("/:id", handler.Serve)
	photos.GET("/:id/thumbnail", handler.ServeThumbnail)
	photos.DELETE("/:id", authMiddleware, handler.Delete)

	businesses := g.Group("/businesses")
	businesses.GET("/:id/photos", handler.ListByBusiness)
	businesses.POST("/:id/photos", authMiddleware, handler.Upload)
}
