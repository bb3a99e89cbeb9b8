package middleware

import (
	"time"

	"payroll-pro/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger menempelkan logger ber-metadata request ke context, lalu
// mencatat satu baris akses setelah handler selesai. Dipasang setelah
// RequestID dan Session.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		rid := contextutil.GetRequestID(ctx)
		viewer, _ := contextutil.GetViewer(ctx)

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", viewer.UserID),
			zap.String("role", string(viewer.Role)),
		)

		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= 500 {
			reqLogger.Error("request completed", fields...)
			return
		}
		reqLogger.Info("request completed", fields...)
	}
}
