package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lexfirm/backoffice-api/internal/config"
	"github.com/lexfirm/backoffice-api/internal/http/handler"
	"github.com/lexfirm/backoffice-api/internal/http/middleware"
	"github.com/lexfirm/backoffice-api/internal/metrics"
	"github.com/lexfirm/backoffice-api/internal/service"
	"github.com/lexfirm/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		App:      config.AppConfig{Environment: "development"},
		Database: config.DatabaseConfig{Driver: "sqlite"},
		Server:   config.ServerConfig{RequestTimeout: 5},
		Security: config.SecurityConfig{ContentTypeNosniff: true, FrameOptions: "DENY"},
	}
	log := zap.NewNop()

	registry, err := metrics.NewRegistry()
	require.NoError(t, err)

	notifications := service.NewNotificationService(10, log)
	notifications.Success(context.Background(), "Abogado registrado", "Ana Torres")

	rt := NewRouter(cfg, log, testutil.SetupTestDB(t), registry, middleware.NewRateLimiter(&cfg.RateLimit, log), Handlers{
		Notifications: handler.NewNotificationHandler(notifications, log),
	})
	return rt.Setup()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t)

	rr := get(h, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	rr = get(h, "/health/db")
	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "sqlite", body["driver"])

	rr = get(h, "/health/ready")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_APIRoutes(t *testing.T) {
	h := newTestRouter(t)

	rr := get(h, "/api/v1/notifications")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Contains(t, rr.Body.String(), "Abogado registrado")

	rr = get(h, "/api/v1/unknown")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter(t)

	get(h, "/api/v1/notifications")
	rr := get(h, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "go_goroutines"))
}
