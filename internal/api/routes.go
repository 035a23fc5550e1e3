package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.POST("/resolve", h.resolve)
		api.POST("/sheet", h.sheet)
		api.POST("/cards/filter", h.filter)
		api.GET("/qr", h.qr)
	}
}
