package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-api/adapters/persistence"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/access"
	contentUC "github.com/khoahotran/portfolio-api/internal/application/usecase/content"
	feedUC "github.com/khoahotran/portfolio-api/internal/application/usecase/feed"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/snapshot"
	"github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/metrics"
)

const adminSecret = "let-me-edit"

type RouterTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	rdb    *redis.Client
	store  *contentUC.Store
	Router *gin.Engine
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()
	m := metrics.New()

	s.mr = miniredis.RunT(s.T())
	s.rdb = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	s.store = contentUC.NewStore(persistence.NewRedisContentStorage(s.rdb, "test:"), log, contentUC.WithMetrics(m))
	s.store.Init(context.Background())

	jwtSvc, err := auth.NewJWTService("jwt-test-secret", time.Hour)
	s.Require().NoError(err)
	gates := access.NewGatekeeper(adminSecret, persistence.NewRedisSessionStorage(s.rdb, "test:"), time.Hour, log, m)

	s.Router = NewRouter(RouterConfig{
		Logger:   log,
		Metrics:  m,
		JWT:      jwtSvc,
		Gates:    gates,
		Auth:     NewAuthHandler(access.NewLoginUseCase(gates, jwtSvc, log), jwtSvc, log),
		Content:  NewContentHandler(s.store, log),
		Snapshot: NewSnapshotHandler(snapshot.NewSnapshotUseCase(s.store, nil, "snapshots", log), log),
		Feed:     NewFeedHandler(feedUC.NewFeedUseCase(s.store, feedUC.Site{Title: "Portfolio", BaseURL: "https://me.example.com"}, log), log),
	})
}

func (s *RouterTestSuite) TearDownTest() {
	_ = s.rdb.Close()
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *RouterTestSuite) login() string {
	rr := s.do(http.MethodPost, "/api/admin/auth/login", "", gin.H{"password": adminSecret})
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var resp LoginResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Require().NotEmpty(resp.AccessToken)
	s.Equal("Bearer", resp.TokenType)
	return resp.AccessToken
}

func (s *RouterTestSuite) Test_PublicReads() {
	rr := s.do(http.MethodGet, "/api/projects", "", nil)
	s.Equal(http.StatusOK, rr.Code)

	var projects []project.Project
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &projects))
	s.Equal(s.store.Projects(), projects)

	rr = s.do(http.MethodGet, "/api/content", "", nil)
	s.Equal(http.StatusOK, rr.Code)
	var dataset content.Dataset
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &dataset))
	s.Equal(s.store.Snapshot(), dataset)

	for _, path := range []string{"/api/health", "/api/experience", "/api/achievements", "/api/skills", "/api/hero", "/api/social", "/api/about-stats"} {
		s.Equal(http.StatusOK, s.do(http.MethodGet, path, "", nil).Code, path)
	}

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/projects/nope", "", nil).Code)
}

func (s *RouterTestSuite) Test_Login_Flow() {
	rr := s.do(http.MethodPost, "/api/admin/auth/login", "", gin.H{"password": "wrong-password"})
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.JSONEq(`{"error":"unauthorized","message":"Invalid credentials"}`, rr.Body.String())

	rr = s.do(http.MethodPost, "/api/admin/auth/login", "", gin.H{})
	s.Equal(http.StatusBadRequest, rr.Code)

	token := s.login()

	rr = s.do(http.MethodGet, "/api/admin/auth/status", token, nil)
	s.Equal(http.StatusOK, rr.Code)
	var status SessionStatusResponse
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &status))
	s.True(status.Elevated)

	s.Equal(http.StatusNoContent, s.do(http.MethodPost, "/api/admin/auth/logout", token, nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/admin/auth/status", token, nil).Code)
}

func (s *RouterTestSuite) Test_AdminRoutesRequireElevatedSession() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/admin/projects", "", gin.H{"title": "X", "description": "Y"}).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/admin/reset", "garbage", nil).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/export", nil)
	req.Header.Set("Authorization", "Token abc")
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	s.Equal(http.StatusUnauthorized, rr.Code)

	// A validly signed token for a session the gate never elevated.
	jwtSvc, err := auth.NewJWTService("jwt-test-secret", time.Hour)
	s.Require().NoError(err)
	token, err := jwtSvc.GenerateToken("never-logged-in")
	s.Require().NoError(err)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPut, "/api/admin/hero", token, gin.H{"name": "X"}).Code)

	// Expired session record.
	token = s.login()
	s.mr.FastForward(2 * time.Hour)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/admin/auth/status", token, nil).Code)
}

func (s *RouterTestSuite) Test_ProjectCRUD() {
	token := s.login()

	rr := s.do(http.MethodPost, "/api/admin/projects", token, gin.H{
		"title": "X", "description": "Y", "tech": []string{}, "category": "Web", "github": "", "demo": "", "image": "",
	})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	var created project.Project
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &created))
	s.Equal("X", created.Title)
	s.Equal(created.ID, s.store.Projects()[0].ID)

	rr = s.do(http.MethodPut, "/api/admin/projects/"+created.ID, token, gin.H{"demo": "https://x.example.com"})
	s.Require().Equal(http.StatusOK, rr.Code)
	var updated project.Project
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &updated))
	s.Equal("X", updated.Title)
	s.Equal("https://x.example.com", updated.Demo)
	s.Greater(updated.UpdatedAt, updated.CreatedAt)

	s.Equal(http.StatusNotFound, s.do(http.MethodPut, "/api/admin/projects/missing", token, gin.H{"title": "Z"}).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPut, "/api/admin/projects/"+created.ID, token, gin.H{"title": ""}).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/admin/projects", token, gin.H{"description": "no title"}).Code)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/admin/projects/"+created.ID, token, nil).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/admin/projects/"+created.ID, token, nil).Code)
	_, found := s.store.Project(created.ID)
	s.False(found)
}

func (s *RouterTestSuite) Test_ExperienceAndAchievements() {
	token := s.login()

	rr := s.do(http.MethodPost, "/api/admin/experience", token, gin.H{"company": "Uni", "role": "Student", "duration": "2020-2024"})
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	s.Contains(rr.Body.String(), `"type":"education"`)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/admin/experience", token, gin.H{"company": "Acme", "role": "Dev", "type": "hobby"}).Code)

	rr = s.do(http.MethodPost, "/api/admin/achievements", token, gin.H{"title": "Award", "description": "won"})
	s.Require().Equal(http.StatusCreated, rr.Code)
	id := s.store.Achievements()[0].ID

	s.Equal(http.StatusOK, s.do(http.MethodPut, "/api/admin/achievements/"+id, token, gin.H{"icon": "trophy"}).Code)
	s.Equal("trophy", s.store.Achievements()[0].Icon)
}

func (s *RouterTestSuite) Test_SingletonsAndReset() {
	token := s.login()

	s.Equal(http.StatusOK, s.do(http.MethodPut, "/api/admin/hero", token, gin.H{"name": "New Name"}).Code)
	s.Equal("New Name", s.store.Hero().Name)

	s.Equal(http.StatusOK, s.do(http.MethodPut, "/api/admin/skills", token, gin.H{"languages": []string{"Go"}}).Code)
	s.Equal([]string{"Go"}, s.store.Skills().Languages)

	s.Equal(http.StatusOK, s.do(http.MethodPut, "/api/admin/social", token, gin.H{"email": "me@example.com"}).Code)
	s.Equal("me@example.com", s.store.SocialLinks().Email)

	s.Equal(http.StatusOK, s.do(http.MethodPut, "/api/admin/about-stats", token, []gin.H{{"label": "Years", "value": "3"}}).Code)
	s.Len(s.store.AboutStats(), 1)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPut, "/api/admin/about-stats", token, gin.H{"label": "x"}).Code)

	rr := s.do(http.MethodPost, "/api/admin/reset", token, nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Equal(content.DefaultHero(), s.store.Hero())
	s.Equal(content.DefaultSkills(), s.store.Skills())
}

func (s *RouterTestSuite) Test_ExportAndSnapshots() {
	token := s.login()

	rr := s.do(http.MethodGet, "/api/admin/export?format=bundle", token, nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.True(strings.HasPrefix(rr.Header().Get("Content-Disposition"), `attachment; filename="portfolio-bundle-`))
	var bundle snapshot.Bundle
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &bundle))
	s.Equal(content.CurrentVersion, bundle.Version)
	s.Equal(s.store.Snapshot(), bundle.Data)

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/admin/export?format=yaml", token, nil).Code)
	s.Equal(http.StatusServiceUnavailable, s.do(http.MethodPost, "/api/admin/snapshots", token, nil).Code)
}

func (s *RouterTestSuite) Test_FeedAndMetrics() {
	rr := s.do(http.MethodGet, "/api/feed.xml", "", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Header().Get("Content-Type"), "application/xml")
	s.Contains(rr.Body.String(), "<rss")

	s.login()
	rr = s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), `portfolio_admin_login_attempts_total{result="accepted"} 1`)
}
