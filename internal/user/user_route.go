package user

import (
	"payroll-pro/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	{
		users.GET("", handler.GetAll)
		users.GET("/:id", handler.GetById)

		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			handler.Create,
		)

		users.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)

		users.DELETE("/:id", handler.Delete)
	}
}
