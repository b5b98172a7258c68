package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/tournamentpro/backend/internal/auth"
	"github.com/tournamentpro/backend/internal/site"
	"github.com/tournamentpro/backend/pkg/apperror"
)

type rejectAll struct{}

func (rejectAll) Authenticate(context.Context, string) (*auth.Claims, error) {
	return nil, apperror.Unauthorized(auth.MsgSessionExpired)
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return newRouter(routes{
		corsOrigins:   "*",
		authenticator: rejectAll{},
		site:          site.NewHandler(nil, nil),
	}, zap.NewNop())
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHealthReportsFailingDependency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	checks := map[string]func(context.Context) error{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}
	r := newRouter(routes{
		authenticator: rejectAll{},
		site:          site.NewHandler(nil, nil),
		checks:        checks,
	}, zap.NewNop())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestHealthReportsWorkerBacklog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newRouter(routes{
		authenticator: rejectAll{},
		site:          site.NewHandler(nil, nil),
		jobsPending:   func(context.Context) (int64, error) { return 7, nil },
	}, zap.NewNop())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"jobs_pending":7`)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	r := testRouter()
	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/admin/session"},
		{http.MethodPost, "/api/admin/logout"},
		{http.MethodGet, "/api/admin/games/bgmi/tournaments/solo/registrations"},
		{http.MethodGet, "/api/admin/games/bgmi/tournaments/solo/stats"},
		{http.MethodPost, "/api/admin/games/freefire/registrations/00000000-0000-0000-0000-000000000001/approve"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		req.Header.Set("Authorization", "Bearer stale")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, p.path)
	}
}

func TestUnknownAPIRoute(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSiteRoutesMounted(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/site/nav", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
