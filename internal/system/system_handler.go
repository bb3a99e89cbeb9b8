package system

import (
	"net/http"

	"payroll-pro/internal/shared/apperror"
	"payroll-pro/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Info(c *gin.Context) {
	resp, err := h.service.Info(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AuditLogs(c *gin.Context) {
	var filter GetAuditLogsFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	logs, err := h.service.AuditLogs(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	page, meta := response.Paginate(c, logs)
	response.Success(c, http.StatusOK, page, &meta)
}
