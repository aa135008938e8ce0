package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifierFunc func(ctx context.Context, token string) (int64, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (int64, error) {
	return f(ctx, token)
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"Bearer a b", "", false},
		{"abc", "", false},
	}

	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	verifier := verifierFunc(func(ctx context.Context, token string) (int64, error) {
		switch token {
		case "good":
			return 42, nil
		case "expired":
			return 0, auth.ErrExpiredToken
		case "ghost":
			return 0, auth.ErrUnknownUser
		case "broken":
			return 0, errors.New("connection reset")
		default:
			return 0, auth.ErrInvalidToken
		}
	})
	mw := NewAuthMiddleware(verifier)

	var seenUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := shared.GetUserID(r.Context())
		require.True(t, ok)
		seenUserID = id
		w.WriteHeader(http.StatusNoContent)
	})
	handler := mw.Authenticate(next)

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{"valid", "Bearer good", http.StatusNoContent, ""},
		{"missing header", "", http.StatusUnauthorized, "Not authenticated"},
		{"wrong scheme", "Token good", http.StatusUnauthorized, "Invalid authorization format"},
		{"expired", "Bearer expired", http.StatusUnauthorized, "Invalid authentication credentials"},
		{"tampered", "Bearer tampered", http.StatusUnauthorized, "Invalid authentication credentials"},
		{"unknown user", "Bearer ghost", http.StatusUnauthorized, "User not found"},
		{"verifier failure", "Bearer broken", http.StatusInternalServerError, "Authentication error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage == "" {
				assert.Equal(t, int64(42), seenUserID)
				return
			}

			var body shared.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantMessage, body.Error)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
				assert.Equal(t, shared.CodeUnauthorized, body.Code)
			}
		})
	}
}
