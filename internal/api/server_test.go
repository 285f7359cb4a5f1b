package api

import (
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raymondchung216/instacook/internal/auth"
	"github.com/raymondchung216/instacook/internal/dto"
	"github.com/raymondchung216/instacook/internal/search"
	"github.com/raymondchung216/instacook/internal/service"
	"github.com/raymondchung216/instacook/internal/store"
)

// testKeyHex is a fixed 32-byte key for token signing in tests.
const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a server backed by a real store and search index
// in a temp directory.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(store.Options{Path: tmpDir, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewIndex(search.Options{DataPath: tmpDir, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	tokenService, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	enricher := dto.NewEnricher(st)
	sessionService := service.NewSessionService(st, tokenService, logger)

	services := &Services{
		Auth:    service.NewAuthService(st, tokenService, sessionService, logger),
		Feed:    service.NewFeedService(st, enricher, logger),
		Recipe:  service.NewRecipeService(st, enricher, index, logger),
		Comment: service.NewCommentService(st, logger),
		Social:  service.NewSocialService(st, logger),
		Tag:     service.NewTagService(st, enricher, logger),
		Search:  service.NewSearchService(st, enricher, index, logger),
	}

	server := NewServer(st, services, logger)

	return &testServer{
		Server: server,
		api:    humatest.Wrap(t, server.api),
	}
}

// registerUser creates an account and returns its access token.
func (ts *testServer) registerUser(t *testing.T, username string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "SecurePassword123",
	})
	require.Equal(t, http.StatusOK, resp.Code, "register failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	return envelope.Data.AccessToken
}

// bearer formats an Authorization header value.
func bearer(token string) string {
	return "Authorization: Bearer " + token
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data.Status)
	assert.Equal(t, "healthy", envelope.Data.Components["database"].Status)
}

func TestEnvelope_UnknownRouteStillWrapped(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/recipes/rcp-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope map[string]any
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, float64(EnvelopeVersion), envelope["v"])
	assert.Equal(t, false, envelope["success"])
}
