package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-api/internal/application/usecase/access"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type AuthHandler struct {
	loginUseCase *access.LoginUseCase
	jwtSvc       *auth.JWTService
	logger       logger.Logger
}

func NewAuthHandler(loginUC *access.LoginUseCase, jwtSvc *auth.JWTService, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		loginUseCase: loginUC,
		jwtSvc:       jwtSvc,
		logger:       log,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("password is required", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), access.LoginInput{Password: req.Password})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.jwtSvc.TokenLifespan().Seconds()),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	gate, ok := GetGateFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}
	gate.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Status(c *gin.Context) {
	gate, ok := GetGateFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}
	c.JSON(http.StatusOK, SessionStatusResponse{
		Elevated:  gate.IsElevated(),
		SessionID: gate.SessionID(),
	})
}
