package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog/internal/app"
	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/service"
	"github.com/MKhiriev/go-blog/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()
	h := NewHandler(svc, config.Server{RequestTimeout: 3 * time.Second}, log)

	require.NotNil(t, h)
	assert.Same(t, svc, h.services)
	assert.Same(t, log, h.logger)
	assert.Equal(t, 3*time.Second, h.requestTimeout)
}

// ─────────────────────────────────────────────
// Init: routing
// ─────────────────────────────────────────────

func TestInit_Version(t *testing.T) {
	h := newTestRouter(t, &service.Services{AppInfoService: &mockAppInfoService{version: "1.4.0"}})

	rec := serve(t, h, http.MethodGet, "/api/version", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"1.4.0"}`, rec.Body.String())
}

func TestInit_UnknownPath(t *testing.T) {
	h := newTestRouter(t, &service.Services{})

	rec := serve(t, h, http.MethodGet, "/api/does-not-exist", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgNotFound, decodeError(t, rec))
}

func TestInit_WrongMethodOnKnownPathIsNotFound(t *testing.T) {
	h := newTestRouter(t, &service.Services{})

	tests := []struct {
		method string
		target string
	}{
		{http.MethodDelete, "/api/version"},
		{http.MethodGet, "/api/auth/login"},
		{http.MethodPatch, "/api/posts/1"},
		{http.MethodPut, "/api/notifications/1/read"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := serve(t, h, tt.method, tt.target, "", "")
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestInit_ProtectedRoutesRequireSession(t *testing.T) {
	h := newTestRouter(t, &service.Services{})

	tests := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodPost, "/api/auth/password/change"},
		{http.MethodPost, "/api/posts"},
		{http.MethodPut, "/api/posts/1"},
		{http.MethodDelete, "/api/posts/1"},
		{http.MethodPost, "/api/posts/1/like"},
		{http.MethodPost, "/api/posts/1/comments"},
		{http.MethodGet, "/api/account"},
		{http.MethodPut, "/api/account"},
		{http.MethodPost, "/api/account/avatar"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodPost, "/api/notifications/1/read"},
		{http.MethodGet, "/api/events"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := serve(t, h, tt.method, tt.target, "", "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestInit_RequestTimeout(t *testing.T) {
	svcs := &service.Services{
		AuthService:    acceptingAuth(),
		AppInfoService: &mockAppInfoService{},
		PostService: &mockPostService{
			listPostsFn: func(ctx context.Context, _ int) (models.PostsPage, error) {
				<-ctx.Done()
				return models.PostsPage{}, ctx.Err()
			},
		},
	}
	h := NewHandler(svcs, config.Server{RequestTimeout: 20 * time.Millisecond}, logger.Nop())

	rec := serve(t, h, http.MethodGet, "/api/posts", "", "")

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestInit_RecoversFromPanics(t *testing.T) {
	h := newTestRouter(t, &service.Services{PostService: &mockPostService{
		listPostsFn: func(context.Context, int) (models.PostsPage, error) {
			panic("boom")
		},
	}})

	rec := serve(t, h, http.MethodGet, "/api/posts", "", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// logging + trace id through the full chain
// ─────────────────────────────────────────────

func TestInit_LogsRequestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	svcs := &service.Services{AuthService: acceptingAuth(), AppInfoService: &mockAppInfoService{version: "v"}}
	h := NewHandler(svcs, config.Server{}, &logger.Logger{Logger: zerolog.New(&buf)})

	rec := serve(t, h, http.MethodGet, "/api/version", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	traceID := rec.Header().Get(traceIDHeader)
	require.NotEmpty(t, traceID)

	var access map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["uri"] != nil {
			access = entry
		}
	}
	require.NotNil(t, access, "no access log entry in %s", buf.String())
	assert.Equal(t, "/api/version", access["uri"])
	assert.Equal(t, http.MethodGet, access["method"])
	assert.Equal(t, float64(http.StatusOK), access["status"])
	assert.Equal(t, traceID, access["trace_id"])
}
