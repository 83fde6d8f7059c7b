package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/auth"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/config"
	"github.com/ceodigitcare/fastflow01-sub002/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestVerifier() *auth.Verifier {
	return auth.NewVerifier(config.JWTConfig{Secret: testSecret, Issuer: "identity"})
}

func signTestToken(t *testing.T, storeID string, ttl time.Duration, roles ...string) string {
	t.Helper()
	now := time.Now()
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "identity",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		StoreID: storeID,
		UserID:  "user-1",
		Roles:   roles,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// newAuthRouter chains the auth, store and role middleware the way the
// router does and echoes the resolved store
func newAuthRouter(required bool) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(JWTAuthMiddlewareWithConfig(DefaultJWTConfig(newTestVerifier(), required)))
	r.Use(StoreMiddleware(DefaultStoreConfig(!required)))
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/api/v1/things", func(c *gin.Context) {
		storeID, ok := GetStoreUUID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, storeID.String())
	})
	r.PUT("/api/v1/settings",
		RequireAnyRole(RoleConfig{AllowAnonymous: !required}, "owner", "admin"),
		func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	return resp.Error
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidTokenResolvesStore(t *testing.T) {
	storeID := uuid.New()
	r := newAuthRouter(true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/things", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+signTestToken(t, storeID.String(), time.Hour))
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, storeID.String(), w.Body.String())
}

func TestJWTAuth_Failures(t *testing.T) {
	r := newAuthRouter(true)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", dto.ErrCodeUnauthorized},
		{"not bearer", "Basic abc", dto.ErrCodeTokenInvalid},
		{"empty token", "Bearer ", dto.ErrCodeTokenInvalid},
		{"garbage", "Bearer not-a-jwt", dto.ErrCodeTokenInvalid},
		{"expired", BearerPrefix + signTestToken(t, uuid.NewString(), -time.Minute), dto.ErrCodeTokenExpired},
		{"no store", BearerPrefix + signTestToken(t, "", time.Hour), dto.ErrCodeTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/things", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := serve(r, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			errInfo := decodeError(t, w)
			assert.Equal(t, tt.code, errInfo.Code)
			assert.NotEmpty(t, errInfo.RequestID)
		})
	}
}

func TestJWTAuth_SkipPaths(t *testing.T) {
	r := newAuthRouter(true)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStoreMiddleware_HeaderFallback(t *testing.T) {
	r := newAuthRouter(false)
	storeID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/things", nil)
	req.Header.Set(StoreHeaderKey, storeID.String())
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, storeID.String(), w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/things", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeMissingStore, decodeError(t, w).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/things", nil)
	req.Header.Set(StoreHeaderKey, "not-a-uuid")
	w = serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoreMiddleware_TokenWinsOverHeader(t *testing.T) {
	r := newAuthRouter(false)
	tokenStore := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/things", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+signTestToken(t, tokenStore.String(), time.Hour))
	req.Header.Set(StoreHeaderKey, uuid.NewString())
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tokenStore.String(), w.Body.String())
}

func TestStoreMiddleware_HeaderIgnoredWhenTokensRequired(t *testing.T) {
	r := gin.New()
	r.Use(StoreMiddleware(DefaultStoreConfig(false)))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(StoreHeaderKey, uuid.NewString())
	w := serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireAnyRole(t *testing.T) {
	storeID := uuid.NewString()
	r := newAuthRouter(true)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+signTestToken(t, storeID, time.Hour, "clerk"))
	w := serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, w).Code)

	req = httptest.NewRequest(http.MethodPut, "/api/v1/settings", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+signTestToken(t, storeID, time.Hour, "clerk", "owner"))
	w = serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireAnyRole_AnonymousAllowedWhenTokensOptional(t *testing.T) {
	r := newAuthRouter(false)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", nil)
	req.Header.Set(StoreHeaderKey, uuid.NewString())
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
