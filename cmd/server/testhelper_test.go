package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "end-to-end-test-secret-0123456789abcdef"

type testServer struct {
	app    *application
	router http.Handler
	db     *mocks.MockDB
	users  *mocks.MockUserStore
	tasks  *mocks.MockTaskStore
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8000,
			LogLevel:        "error",
			ShutdownTimeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{
			URL:                  "postgres://localhost/tasks_test",
			MaxOpenConns:         10,
			MaxIdleConns:         5,
			ConnMaxLifetime:      5 * time.Minute,
			ConnectRetries:       1,
			ConnectRetryInterval: time.Millisecond,
		},
		Auth: config.AuthConfig{
			JWTSecret:            testJWTSecret,
			TokenLifetimeMinutes: 60,
			PasswordHasher:       "bcrypt",
			BcryptCost:           4,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := mocks.NewMockDB()
	users := mocks.NewMockUserStore()
	tasks := mocks.NewMockTaskStore()
	tasks.Users = users

	app, err := newApplicationWithStores(testConfig(), discardLogger(), db.DB, users, tasks)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	return &testServer{app: app, router: app.setupRouter(), db: db, users: users, tasks: tasks}
}

func (s *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
