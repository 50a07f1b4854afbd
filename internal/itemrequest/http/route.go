package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *RequestHandler) {
	group := g.Group("/requests", auth.UserRequired())
	{
		group.POST("", h.Create)
		group.GET("", h.ListOwn)
		group.GET("/all", h.ListOthers)
		group.GET("/:id", h.Get)
	}
}
