package middleware

import (
	"context"
	"strings"

	"payroll-pro/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const SessionCookieName = "payroll_session"

// SessionResolver dipenuhi oleh auth.Service.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (contextutil.Viewer, error)
}

// Session memasang viewer jika token valid. Request tanpa token atau dengan
// token tidak valid tetap diteruskan; role hanya dipakai untuk tampilan.
func Session(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		viewer, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), nil).Debug("session not resolved", zap.Error(err))
			c.Next()
			return
		}

		c.Set("user_id", viewer.UserID)
		c.Set("role", string(viewer.Role))
		c.Set("session_token", token)
		c.Request = c.Request.WithContext(contextutil.WithViewer(c.Request.Context(), viewer))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && token != "" {
		return token
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}
