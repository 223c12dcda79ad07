package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/octabyte/becas-client/api"
	"github.com/octabyte/becas-client/config"
	"github.com/octabyte/becas-client/models"
	"github.com/octabyte/becas-client/storage"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type AppTestSuite struct {
	suite.Suite
	ctx    context.Context
	server *httptest.Server
	cfg    *config.Config

	mu           sync.Mutex
	logoutStatus int
	logoutAuth   []string
	loginBodies  []string
	restoreLog   func()
}

func (s *AppTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.logoutStatus = http.StatusOK
	s.logoutAuth = nil
	s.loginBodies = nil
	previous := zap.L()
	s.restoreLog = func() { zap.ReplaceGlobals(previous) }

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.loginBodies = append(s.loginBodies, string(body))
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":{"user":{"id":"u-1","email":"a@unimet.edu.ve","nombre":"Ana","role":"student","activo":true},"tokens":{"accessToken":"T1","refreshToken":"R1","expiresIn":"3600"}}}`)
	})
	mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.logoutAuth = append(s.logoutAuth, r.Header.Get("Authorization"))
		status := s.logoutStatus
		s.mu.Unlock()
		w.WriteHeader(status)
	})
	s.server = httptest.NewServer(mux)

	s.cfg = &config.Config{
		APIBaseURL: s.server.URL + "/api",
		Storage:    config.StorageConfig{Driver: "file", Dir: s.T().TempDir(), Prefix: "becas:"},
		Log:        config.LogConfig{Level: "error", Env: "test", ServiceName: "becas-client-test"},
	}
}

func (s *AppTestSuite) TearDownTest() {
	s.server.Close()
	s.restoreLog()
}

func (s *AppTestSuite) logoutCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.logoutAuth...)
}

func (s *AppTestSuite) newApp(opts ...Option) *App {
	a, err := New(s.ctx, s.cfg, opts...)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func (s *AppTestSuite) TestLoginStartsSession() {
	a := s.newApp()
	s.False(a.Session.IsActive())

	user, err := a.Login(s.ctx, api.LoginRequest{Email: "a@unimet.edu.ve", Password: "x"})
	s.Require().NoError(err)

	s.Equal("u-1", user.ID)
	s.True(a.Session.IsActive())
	s.Equal(models.TokenSet{AccessToken: "T1", RefreshToken: "R1", ExpiresIn: "3600"}, *a.Session.Tokens())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Require().Len(s.loginBodies, 1)
	s.JSONEq(`{"email":"a@unimet.edu.ve","password":"x"}`, s.loginBodies[0])
}

func (s *AppTestSuite) TestFailedLoginLeavesSessionInactive() {
	a := s.newApp()

	_, err := a.Login(s.ctx, api.LoginRequest{Email: "bad", Password: "x"})
	s.Error(err)
	s.False(a.Session.IsActive())
	s.Empty(s.loginBodies)
}

func (s *AppTestSuite) TestSessionSurvivesRestart() {
	first := s.newApp()
	_, err := first.Login(s.ctx, api.LoginRequest{Email: "a@unimet.edu.ve", Password: "x"})
	s.Require().NoError(err)
	s.Require().NoError(first.Close(s.ctx))

	second := s.newApp()
	s.True(second.Session.IsActive())
	s.Equal("T1", second.Session.Tokens().AccessToken)
}

func (s *AppTestSuite) TestLogoutAndNavigateHome() {
	for _, status := range []int{http.StatusOK, http.StatusInternalServerError, http.StatusUnauthorized} {
		s.Run(http.StatusText(status), func() {
			s.mu.Lock()
			s.logoutStatus = status
			s.logoutAuth = nil
			s.mu.Unlock()

			home := 0
			a := s.newApp(WithNavigator(sessionNavigator(func() { home++ })))
			_, err := a.Login(s.ctx, api.LoginRequest{Email: "a@unimet.edu.ve", Password: "x"})
			s.Require().NoError(err)

			a.Session.LogoutAndNavigateHome(s.ctx)

			s.False(a.Session.IsActive())
			s.Equal(1, home)
			s.Equal([]string{"Bearer T1"}, s.logoutCalls())

			restarted := s.newApp()
			s.False(restarted.Session.IsActive())
		})
	}
}

func (s *AppTestSuite) TestLogoutWhenServerUnreachable() {
	a := s.newApp()
	_, err := a.Login(s.ctx, api.LoginRequest{Email: "a@unimet.edu.ve", Password: "x"})
	s.Require().NoError(err)
	s.server.Close()

	a.Session.LogoutAndNavigateHome(s.ctx)

	s.False(a.Session.IsActive())
}

func (s *AppTestSuite) TestRedisDriver() {
	mr := miniredis.RunT(s.T())
	s.cfg.Storage.Driver = "redis"
	s.cfg.Redis.Addr = mr.Addr()

	a := s.newApp()
	_, err := a.Login(s.ctx, api.LoginRequest{Email: "a@unimet.edu.ve", Password: "x"})
	s.Require().NoError(err)

	s.True(mr.Exists("becas:user"))
	s.True(mr.Exists("becas:tokens"))
}

func (s *AppTestSuite) TestRedisDriverUnreachable() {
	mr := miniredis.RunT(s.T())
	addr := mr.Addr()
	mr.Close()
	s.cfg.Storage.Driver = "redis"
	s.cfg.Redis.Addr = addr

	_, err := New(s.ctx, s.cfg)
	s.Error(err)
}

func (s *AppTestSuite) TestStorageOverride() {
	backend := storage.NewMemory()
	a := s.newApp(WithStorage(backend))

	_, err := a.Login(s.ctx, api.LoginRequest{Email: "a@unimet.edu.ve", Password: "x"})
	s.Require().NoError(err)

	raw, err := backend.Get(s.ctx, "becas:tokens")
	s.Require().NoError(err)
	s.JSONEq(`{"accessToken":"T1","refreshToken":"R1","expiresIn":"3600"}`, raw)
}

type sessionNavigator func()

func (f sessionNavigator) NavigateHome(context.Context) { f() }

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}
