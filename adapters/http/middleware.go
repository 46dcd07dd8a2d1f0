package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/usecase/access"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const (
	GinContextKeyGate = "accessGate"
)

// ErrorMiddleware renders the last error a handler attached with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, fields...)
		} else {
			log.Warn("Request rejected", append(fields, zap.Error(err))...)
		}

		if c.Writer.Written() {
			return
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(status, appErr.ToJSON())
			return
		}
		c.JSON(status, gin.H{"error": apperror.ErrInternal.Error()})
	}
}

// SessionMiddleware admits only requests whose bearer token names a session
// that the access gate reports as elevated. The opened gate is stored in the
// context for handlers such as logout.
func SessionMiddleware(jwtSvc *auth.JWTService, gates *access.Gatekeeper) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Error(apperror.NewUnauthorized("Authorization header is required", nil))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Error(apperror.NewUnauthorized("Invalid token format", nil))
			c.Abort()
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.Error(apperror.NewUnauthorized("Invalid or expired token", err))
			c.Abort()
			return
		}

		gate := gates.Open(c.Request.Context(), claims.SessionID)
		if !gate.IsElevated() {
			c.Error(apperror.NewUnauthorized("Session is not elevated", nil))
			c.Abort()
			return
		}

		c.Set(GinContextKeyGate, gate)
		c.Next()
	}
}

func GetGateFromGinContext(c *gin.Context) (*access.Gate, bool) {
	v, ok := c.Get(GinContextKeyGate)
	if !ok {
		return nil, false
	}
	gate, ok := v.(*access.Gate)
	return gate, ok
}
