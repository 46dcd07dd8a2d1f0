package access

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// LoginUseCase starts a new session, runs it through the gate and hands back
// a token naming the session.
type LoginUseCase struct {
	gates  *Gatekeeper
	jwtSvc *auth.JWTService
	logger logger.Logger
}

func NewLoginUseCase(gates *Gatekeeper, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		gates:  gates,
		jwtSvc: jwtSvc,
		logger: log,
	}
}

type LoginInput struct {
	Password string
}

type LoginOutput struct {
	AccessToken string
	SessionID   string
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	ctx, span := tracer.Start(ctx, "LoginUseCase.Execute")
	defer span.End()

	sessionID := auth.NewSessionID()
	gate := uc.gates.Open(ctx, sessionID)

	if !gate.Login(ctx, input.Password) {
		err := apperror.NewUnauthorized("incorrect password", nil)
		span.RecordError(err)
		return nil, err
	}

	// A session that did not reach storage would be rejected on the next
	// request, so the token would be useless.
	if !uc.gates.Open(ctx, sessionID).IsElevated() {
		err := apperror.NewUnavailable("session storage is unavailable", nil)
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(sessionID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err)
		gate.Logout(ctx)
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("session_id", sessionID))
	return &LoginOutput{AccessToken: token, SessionID: sessionID}, nil
}
