package system

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	group := r.Group("/system")
	{
		group.GET("/info", h.Info)
		group.GET("/audit-logs", h.AuditLogs)
	}
}
