package department

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	departments := r.Group("/departments")
	{
		departments.GET("", h.GetAll)
		departments.GET("/:id", h.GetById)
	}
}
