package payroll

import (
	"payroll-pro/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	payrolls := r.Group("/payrolls")
	{
		payrolls.GET("", handler.GetAll)
		payrolls.GET("/export", handler.Export)
		payrolls.POST("/preview", handler.Preview)
		payrolls.POST("/auto-deductions", handler.AutoDeductions)
		if rdb != nil {
			payrolls.POST("", middleware.Idempotency(rdb), handler.Create)
		} else {
			payrolls.POST("", handler.Create)
		}
		payrolls.GET("/:id", handler.GetById)
		payrolls.GET("/:id/payslip", handler.DownloadPayslip)
		payrolls.PUT("/:id", handler.Update)
		payrolls.DELETE("/:id", handler.Delete)
	}
}
