package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/items")

	// Search is open: no caller identity needed.
	group.GET("/search", h.Search)

	scoped := group.Group("")
	scoped.Use(identityMiddleware)
	{
		scoped.POST("", h.Create)
		scoped.GET("", h.ListOwn)
		scoped.GET("/:id", h.Get)
		scoped.PATCH("/:id", h.Update)
		scoped.POST("/:id/comment", h.AddComment)
	}
}
