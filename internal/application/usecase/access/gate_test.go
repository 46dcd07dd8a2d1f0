package access

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-api/internal/domain/session"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const testSecret = "correct-horse"

type memSessions struct {
	mu        sync.Mutex
	values    map[string]string
	ttls      map[string]time.Duration
	failWrite bool
}

func newMemSessions() *memSessions {
	return &memSessions{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memSessions) Get(_ context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[id]
	if !ok {
		return "", session.ErrSessionNotFound
	}
	return v, nil
}

func (m *memSessions) Set(_ context.Context, id, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return errors.New("write failed")
	}
	m.values[id] = value
	m.ttls[id] = ttl
	return nil
}

func (m *memSessions) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, id)
	return nil
}

type GateTestSuite struct {
	suite.Suite
	ctx      context.Context
	sessions *memSessions
	keeper   *Gatekeeper
}

func (s *GateTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.sessions = newMemSessions()
	s.keeper = NewGatekeeper(testSecret, s.sessions, time.Hour, logger.NewNopLogger(), nil)
}

func (s *GateTestSuite) TestLogin_ExactSecret() {
	gate := s.keeper.Open(s.ctx, "sid-1")
	s.False(gate.IsElevated())

	s.True(gate.Login(s.ctx, testSecret))
	s.True(gate.IsElevated())
	s.Equal(session.ElevatedMarker, s.sessions.values["sid-1"])
	s.Equal(time.Hour, s.sessions.ttls["sid-1"])
}

func (s *GateTestSuite) TestLogin_RejectsEverythingElse() {
	inputs := []string{"wrong-password", "", "CORRECT-HORSE", " correct-horse", "correct-horse\n", "correct-hors"}
	for _, in := range inputs {
		gate := s.keeper.Open(s.ctx, "sid-"+in)
		s.False(gate.Login(s.ctx, in), "input %q", in)
		s.False(gate.IsElevated(), "input %q", in)
	}
	s.Empty(s.sessions.values)
}

func (s *GateTestSuite) TestLogin_WrongSecretKeepsElevatedSession() {
	gate := s.keeper.Open(s.ctx, "sid")
	s.Require().True(gate.Login(s.ctx, testSecret))

	s.False(gate.Login(s.ctx, "wrong-password"))
	s.True(gate.IsElevated())
}

func (s *GateTestSuite) TestInit_SeedsFromSessionStorage() {
	s.sessions.values["elevated"] = session.ElevatedMarker
	s.sessions.values["other"] = "yes"

	s.True(s.keeper.Open(s.ctx, "elevated").IsElevated())
	s.False(s.keeper.Open(s.ctx, "other").IsElevated())
	s.False(s.keeper.Open(s.ctx, "absent").IsElevated())
}

func (s *GateTestSuite) TestLogout_ClearsFlagAndSession() {
	gate := s.keeper.Open(s.ctx, "sid")
	s.Require().True(gate.Login(s.ctx, testSecret))

	gate.Logout(s.ctx)

	s.False(gate.IsElevated())
	s.False(s.keeper.Open(s.ctx, "sid").IsElevated())
	s.NotContains(s.sessions.values, "sid")
}

func (s *GateTestSuite) TestLogin_EmptyConfiguredSecretDisablesGate() {
	keeper := NewGatekeeper("", s.sessions, time.Hour, logger.NewNopLogger(), nil)

	gate := keeper.Open(s.ctx, "sid")
	s.False(gate.Login(s.ctx, ""))
	s.False(gate.IsElevated())
}

func (s *GateTestSuite) TestLogin_WriteFailureKeepsInMemoryFlag() {
	s.sessions.failWrite = true
	gate := s.keeper.Open(s.ctx, "sid")

	s.True(gate.Login(s.ctx, testSecret))
	s.True(gate.IsElevated())
	s.False(s.keeper.Open(s.ctx, "sid").IsElevated())
}

func TestGateTestSuite(t *testing.T) {
	suite.Run(t, new(GateTestSuite))
}

func TestLoginUseCase(t *testing.T) {
	ctx := context.Background()
	sessions := newMemSessions()
	keeper := NewGatekeeper(testSecret, sessions, time.Hour, logger.NewNopLogger(), nil)
	jwtSvc, err := auth.NewJWTService("jwt-secret", time.Hour)
	require.NoError(t, err)
	uc := NewLoginUseCase(keeper, jwtSvc, logger.NewNopLogger())

	t.Run("accepted", func(t *testing.T) {
		out, err := uc.Execute(ctx, LoginInput{Password: testSecret})
		require.NoError(t, err)

		claims, err := jwtSvc.ValidateToken(out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, out.SessionID, claims.SessionID)
		assert.True(t, keeper.Open(ctx, claims.SessionID).IsElevated())
	})

	t.Run("rejected", func(t *testing.T) {
		out, err := uc.Execute(ctx, LoginInput{Password: "wrong-password"})
		assert.Nil(t, out)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("session storage down", func(t *testing.T) {
		sessions.failWrite = true
		defer func() { sessions.failWrite = false }()

		out, err := uc.Execute(ctx, LoginInput{Password: testSecret})
		assert.Nil(t, out)
		assert.ErrorIs(t, err, apperror.ErrUnavailable)
	})
}
