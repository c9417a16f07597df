package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/credseal/internal/metrics"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeReadiness(t *testing.T, body []byte) (string, string) {
	t.Helper()

	var response struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	require.NoError(t, json.Unmarshal(body, &response))
	return response.Status, response.Components["database"]
}

func TestHealthHandler(t *testing.T) {
	server := NewServer(nil, "localhost", 0, discardLogger())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Run("NilDB", func(t *testing.T) {
		server := NewServer(nil, "localhost", 0, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		status, database := decodeReadiness(t, w.Body.Bytes())
		assert.Equal(t, "not_ready", status)
		assert.Equal(t, "error", database)
	})

	t.Run("PingSucceeds", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		mock.ExpectPing()

		server := NewServer(db, "localhost", 0, discardLogger())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		status, database := decodeReadiness(t, w.Body.Bytes())
		assert.Equal(t, "ready", status)
		assert.Equal(t, "ok", database)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("PingFails", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		server := NewServer(db, "localhost", 0, discardLogger())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		status, database := decodeReadiness(t, w.Body.Bytes())
		assert.Equal(t, "not_ready", status)
		assert.Equal(t, "error", database)
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	router := gin.New()
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/v1/credentials/:name", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	router.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		path  string
		level string
		route string
		code  int
	}{
		{"/ok", "INFO", "/ok", http.StatusOK},
		{"/v1/credentials/billing%2Fstripe", "WARN", "/v1/credentials/:name", http.StatusNotFound},
		{"/boom", "ERROR", "/boom", http.StatusInternalServerError},
		{"/nowhere", "WARN", "unmatched", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			buf.Reset()

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, tt.code, w.Code)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "http request", entry["msg"])
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.route, entry["route"])
			assert.Equal(t, float64(tt.code), entry["status"])
			assert.NotContains(t, buf.String(), "stripe")
		})
	}
}

func TestServer_GetHandlerBeforeSetup(t *testing.T) {
	server := NewServer(nil, "localhost", 0, discardLogger())
	assert.Nil(t, server.GetHandler())
}

func TestServer_StartWithoutRouter(t *testing.T) {
	server := NewServer(nil, "localhost", 0, discardLogger())
	defer server.cancel()

	err := server.Start(context.Background())
	assert.ErrorContains(t, err, "router not configured")
}

func TestServer_ShutdownCancelsBackground(t *testing.T) {
	server := NewServer(nil, "127.0.0.1", 0, discardLogger())

	require.NoError(t, server.Shutdown(context.Background()))

	select {
	case <-server.background.Done():
	default:
		t.Fatal("background context still active after shutdown")
	}
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("credseal_test")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	metricsServer := NewMetricsServer("localhost", 0, discardLogger(), provider)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/credentials", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
