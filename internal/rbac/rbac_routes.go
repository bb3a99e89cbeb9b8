package rbac

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/rbac")
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/capabilities", handler.Capabilities)
	}
}
