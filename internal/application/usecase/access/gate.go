// Package access implements the admin gate: a per-session elevated flag set
// by presenting the configured admin secret.
//
// The gate only keeps casual visitors away from the editing endpoints. It is
// not an account system: there is one shared secret and no lockout.
package access

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/domain/session"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/metrics"
)

var tracer = otel.Tracer("access_gate")

// Gatekeeper holds what every session's gate shares and hands out gates.
type Gatekeeper struct {
	secret   string
	sessions session.Storage
	ttl      time.Duration
	logger   logger.Logger
	metrics  *metrics.Metrics
}

// NewGatekeeper builds the gate factory. An empty secret disables elevation
// entirely rather than accepting an empty password.
func NewGatekeeper(secret string, sessions session.Storage, ttl time.Duration, log logger.Logger, m *metrics.Metrics) *Gatekeeper {
	if secret == "" {
		log.Warn("Admin secret is not configured, admin login is disabled")
	}
	return &Gatekeeper{
		secret:   secret,
		sessions: sessions,
		ttl:      ttl,
		logger:   log,
		metrics:  m,
	}
}

// Open returns the gate of sessionID, already seeded from session storage.
func (k *Gatekeeper) Open(ctx context.Context, sessionID string) *Gate {
	g := &Gate{
		keeper:    k,
		sessionID: sessionID,
		logger:    k.logger.With(zap.String("session_id", sessionID)),
	}
	g.Init(ctx)
	return g
}

// Gate is the elevated-access state of one session.
type Gate struct {
	keeper    *Gatekeeper
	sessionID string
	logger    logger.Logger

	mu       sync.Mutex
	elevated bool
}

// Init seeds the flag from session storage. Only the exact elevated marker
// counts; anything else, including a storage failure, is standard access.
func (g *Gate) Init(ctx context.Context) {
	v, err := g.keeper.sessions.Get(ctx, g.sessionID)
	if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		g.logger.Error("Failed to read session, treating as standard access", err)
		g.keeper.metrics.IncStorageFailure("session_read")
	}

	g.mu.Lock()
	g.elevated = err == nil && v == session.ElevatedMarker
	g.mu.Unlock()
}

// Login elevates the session when submitted exactly equals the configured
// secret. A mismatch leaves the current state untouched.
func (g *Gate) Login(ctx context.Context, submitted string) bool {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	ok := g.keeper.secret != "" &&
		subtle.ConstantTimeCompare([]byte(submitted), []byte(g.keeper.secret)) == 1
	g.keeper.metrics.IncLogin(ok)
	span.SetAttributes(attribute.Bool("accepted", ok))
	if !ok {
		g.logger.Info("Admin login rejected")
		return false
	}

	g.mu.Lock()
	g.elevated = true
	g.mu.Unlock()

	if err := g.keeper.sessions.Set(ctx, g.sessionID, session.ElevatedMarker, g.keeper.ttl); err != nil {
		g.logger.Error("Failed to persist elevated session", err)
		g.keeper.metrics.IncStorageFailure("session_write")
	}
	g.logger.Info("Admin login accepted")
	return true
}

// Logout drops elevated access unconditionally.
func (g *Gate) Logout(ctx context.Context) {
	g.mu.Lock()
	g.elevated = false
	g.mu.Unlock()

	if err := g.keeper.sessions.Remove(ctx, g.sessionID); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		g.logger.Error("Failed to remove session", err)
		g.keeper.metrics.IncStorageFailure("session_remove")
	}
}

func (g *Gate) IsElevated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.elevated
}

func (g *Gate) SessionID() string {
	return g.sessionID
}
