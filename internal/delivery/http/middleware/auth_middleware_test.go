package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guilhermelvc/karvagenda/config"
	"github.com/guilhermelvc/karvagenda/internal/domain/entity"
	"github.com/guilhermelvc/karvagenda/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*AuthMiddleware, *jwt.JWTService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})

	return NewAuthMiddleware(jwtService, redisClient), jwtService, mr
}

func issueAccessToken(t *testing.T, jwtService *jwt.JWTService, mr *miniredis.Miniredis, userID uuid.UUID, roleID int) string {
	t.Helper()

	token, tokenID, err := jwtService.GenerateAccessToken(userID, "user@example.com", roleID)
	require.NoError(t, err)
	mr.Set(fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID), "1")
	return token
}

func TestAuthenticate_SetsContext(t *testing.T) {
	m, jwtService, mr := newAuthFixture(t)
	userID := uuid.New()
	token := issueAccessToken(t, jwtService, mr, userID, entity.RoleIDClient)

	var gotUserID uuid.UUID
	var gotRoleID int
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		gotRoleID, _ = GetRoleIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, entity.RoleIDClient, gotRoleID)
}

func TestAuthenticate_RejectsMissingOrMalformedHeader(t *testing.T) {
	m, _, _ := newAuthFixture(t)
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	for _, header := range []string{"", "Bearer", "Token abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticate_RejectsRevokedToken(t *testing.T) {
	m, jwtService, mr := newAuthFixture(t)
	userID := uuid.New()
	token := issueAccessToken(t, jwtService, mr, userID, entity.RoleIDClient)

	mr.FlushAll()

	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_RejectsRefreshToken(t *testing.T) {
	m, jwtService, mr := newAuthFixture(t)
	userID := uuid.New()

	token, tokenID, err := jwtService.GenerateRefreshToken(userID, "user@example.com", entity.RoleIDClient)
	require.NoError(t, err)
	mr.Set(fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID), "1")

	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	m, jwtService, mr := newAuthFixture(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name     string
		roleID   int
		gate     func(http.Handler) http.Handler
		wantCode int
	}{
		{"admin passes admin gate", entity.RoleIDAdmin, RequireAdmin, http.StatusOK},
		{"client blocked by admin gate", entity.RoleIDClient, RequireAdmin, http.StatusForbidden},
		{"professional passes staff gate", entity.RoleIDProfessional, RequireAdminOrProfessional, http.StatusOK},
		{"client blocked by staff gate", entity.RoleIDClient, RequireAdminOrProfessional, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := issueAccessToken(t, jwtService, mr, uuid.New(), tt.roleID)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			m.Authenticate(tt.gate(next)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
