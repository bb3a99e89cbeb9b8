package auth

import (
	"payroll-pro/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mengandalkan middleware.Session yang sudah terpasang di router
// untuk mengisi "session_token".
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(1, 5), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
