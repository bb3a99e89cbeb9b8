package attendance

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("", h.GetAll)
		attendances.GET("/today", h.Today)
		attendances.POST("/check-in", h.CheckIn)
		attendances.POST("/check-out", h.CheckOut)
	}
}
