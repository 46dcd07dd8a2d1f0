package session

import (
	"context"
	"errors"
	"time"
)

// ElevatedMarker is the only value that marks a session as elevated. Anything
// else stored under a session key counts as standard access.
const ElevatedMarker = "authenticated"

var ErrSessionNotFound = errors.New("session not found")

// Storage keeps per-session values for at most ttl. Get returns
// ErrSessionNotFound for absent or expired sessions.
type Storage interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, value string, ttl time.Duration) error
	Remove(ctx context.Context, sessionID string) error
}
