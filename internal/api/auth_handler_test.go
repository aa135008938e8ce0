package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T, jwtService auth.JWTService) (http.Handler, *mocks.MockUserStore) {
	t.Helper()

	users := mocks.NewMockUserStore()
	userService, err := service.NewUserService(users, &mocks.MockPasswordHasher{}, nil)
	require.NoError(t, err)

	handler := NewAuthHandler(userService, jwtService, nil)
	authMiddleware := middleware.NewAuthMiddleware(auth.NewTokenVerifier(jwtService, users))

	r := chi.NewRouter()
	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(authMiddleware.Authenticate).Get("/me", func(w http.ResponseWriter, r *http.Request) {
		userID, _ := shared.GetUserID(r.Context())
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]int64{"user_id": userID})
	})
	return r, users
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const aliceRegistration = `{"username":"alice","email":"alice@example.com","password":"pw1"}`

func TestAuthHandlerTokenFailure(t *testing.T) {
	t.Parallel()

	failing := &mocks.MockJWTService{
		GenerateTokenFn: func(context.Context, int64) (string, error) {
			return "", errors.New("signing key unavailable")
		},
	}

	tests := []struct {
		name string
		path string
		body string
	}{
		{"register", "/register", `{"username":"bob","email":"bob@example.com","password":"pw2"}`},
		{"login", "/login", `{"username":"alice","password":"pw1"}`},
	}

	router, users := newAuthRouter(t, failing)
	// login needs an existing account; seed it through a working service
	seed, err := service.NewUserService(users, &mocks.MockPasswordHasher{}, nil)
	require.NoError(t, err)
	_, err = seed.Register(context.Background(), "alice", "alice@example.com", "pw1")
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(router, tt.path, tt.body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			var resp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "Failed to generate authentication token", resp.Error)
			assert.Equal(t, shared.CodeInternal, resp.Code)
			assert.NotContains(t, rec.Body.String(), "signing key")
		})
	}
}

func TestAuthHandlerIssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	jwtService := &mocks.MockJWTService{}
	router, _ := newAuthRouter(t, jwtService)

	rec := post(router, "/register", aliceRegistration)
	require.Equal(t, http.StatusCreated, rec.Code)
	var token TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.Equal(t, "token-1", token.AccessToken)
	assert.Equal(t, 1, jwtService.Issued())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":1}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer token-2")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterMultibytePasswordOverByteLimit(t *testing.T) {
	t.Parallel()

	router, users := newAuthRouter(t, &mocks.MockJWTService{})

	// 40 runes, 80 bytes
	rec := post(router, "/register",
		`{"username":"alice","email":"alice@example.com","password":"`+strings.Repeat("é", 40)+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid password: too long", resp.Error)
	assert.Zero(t, users.Count())

	// 36 runes, 72 bytes is accepted
	rec = post(router, "/register",
		`{"username":"alice","email":"alice@example.com","password":"`+strings.Repeat("é", 36)+`"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
