package employee

import (
	"payroll-pro/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			handler.GetOptions,
		)
		employees.GET("/:id", handler.GetById)
		employees.POST("",
			middleware.RateLimitByUser(1, 5),
			handler.Create,
		)
		employees.PUT("/:id", handler.Update)
		employees.DELETE("/:id", handler.Delete)
		employees.POST("/:id/allowances", handler.AddFixedAllowance)
		employees.DELETE("/:id/allowances/:allowanceId", handler.RemoveFixedAllowance)
	}
}
