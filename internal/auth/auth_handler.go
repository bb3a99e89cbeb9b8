package auth

import (
	"net/http"
	"os"
	"time"

	autherrors "payroll-pro/internal/auth/errors"
	"payroll-pro/internal/middleware"
	"payroll-pro/internal/shared/apperror"
	"payroll-pro/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (ctrl *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := ctrl.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	isProd := os.Getenv("APP_ENV") == "production"
	maxAge := int(time.Until(resp.ExpiresAt).Seconds())
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    resp.Token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteLaxMode,
	})

	response.Success(c, http.StatusOK, resp, nil)
}

func (ctrl *Handler) Me(c *gin.Context) {
	token := c.GetString("session_token")
	if token == "" {
		response.FromError(c, autherrors.ErrSessionNotFound)
		return
	}

	resp, err := ctrl.service.Me(c.Request.Context(), token)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Logout selalu berhasil; session yang sudah tidak ada tidak dianggap error.
func (ctrl *Handler) Logout(c *gin.Context) {
	if token := c.GetString("session_token"); token != "" {
		_ = ctrl.service.Logout(c.Request.Context(), token)
	}

	isProd := os.Getenv("APP_ENV") == "production"
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteLaxMode,
	})

	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}
