package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello":"world"}`, rec.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/1", nil)
	req = req.WithContext(WithTraceID(req.Context(), "trace-123"))
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusNotFound, "Task not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{
		"error":    "Task not found",
		"code":     CodeNotFound,
		"trace_id": "trace-123",
	}, body)
	assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
}

func TestRespondWithErrorSetsChallengeOn401(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	RespondWithError(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusUnauthorized, "Not authenticated")
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestRespondWithErrorAndLogRedactsDetails(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
	req = req.WithContext(logger.WithLogger(req.Context(), log))
	rec := httptest.NewRecorder()

	err := errors.New("dial postgres://app:s3cret@db:5432 failed")
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "An unexpected error occurred", err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "s3cret")
	assert.NotContains(t, rec.Body.String(), "postgres://")

	logged := buf.String()
	assert.Contains(t, logged, `"level":"ERROR"`)
	assert.Contains(t, logged, "[REDACTED_CREDENTIAL]")
	assert.NotContains(t, logged, "s3cret")
}

func TestCodeForStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CodeBadRequest, CodeForStatus(http.StatusBadRequest))
	assert.Equal(t, CodeUnauthorized, CodeForStatus(http.StatusUnauthorized))
	assert.Equal(t, CodeNotFound, CodeForStatus(http.StatusNotFound))
	assert.Equal(t, CodeValidation, CodeForStatus(http.StatusUnprocessableEntity))
	assert.Equal(t, CodeServiceUnavailable, CodeForStatus(http.StatusServiceUnavailable))
	assert.Equal(t, CodeInternal, CodeForStatus(http.StatusInternalServerError))
	assert.Equal(t, CodeInternal, CodeForStatus(http.StatusBadGateway))
}
