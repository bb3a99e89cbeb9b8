package rbac

import (
	"net/http"
	"strings"

	"payroll-pro/internal/domain"
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

func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)
	if !req.Role.Valid() {
		response.FromError(c, apperror.InvalidField("role"))
		return
	}

	allowed, err := h.service.Enforce(req)
	if err != nil {
		response.FromError(c, apperror.Wrap(err, apperror.CodeInternalError, "gagal memeriksa hak akses", http.StatusInternalServerError))
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) Capabilities(c *gin.Context) {
	role := domain.Role(c.Query("role"))
	if !role.Valid() {
		response.FromError(c, apperror.InvalidField("role"))
		return
	}

	caps, err := h.service.Capabilities(role)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, CapabilitiesResponse{Role: role, Capabilities: caps}, nil)
}
