package auth_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Urjashee/response-formatter/api/responses"
	"github.com/Urjashee/response-formatter/common/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = auth.Config{Secret: []byte("0123456789abcdef"), Issuer: "tests"}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	protected := router.Group("/", auth.Middleware(log, testConfig))
	protected.GET("/me", func(c *gin.Context) {
		claims, _ := auth.ClaimsFrom(c)
		_ = responses.Success(responses.Gin(c), "", gin.H{"subject": claims.Subject})
	})
	protected.GET("/admin", auth.RequireRole(auth.RoleAdmin), func(c *gin.Context) {
		_ = responses.Success(responses.Gin(c), "", nil)
	})
	return router
}

func do(t *testing.T, router *gin.Engine, path, header string) (*httptest.ResponseRecorder, responses.Envelope) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env responses.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func token(t *testing.T, cfg auth.Config, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := auth.IssueToken(cfg, "user-1", role, ttl)
	require.NoError(t, err)
	return tok
}

func TestMiddlewareMissingHeader(t *testing.T) {
	w, env := do(t, setupRouter(), "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, responses.StatusUnauthorized, env.Status)
	assert.Equal(t, "Authorization failed: authorization header required.", env.Message)
}

func TestMiddlewareBadFormat(t *testing.T) {
	w, env := do(t, setupRouter(), "/me", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization failed: invalid authorization format.", env.Message)
}

func TestMiddlewareInvalidToken(t *testing.T) {
	router := setupRouter()
	other := auth.Config{Secret: []byte("fedcba9876543210"), Issuer: "tests"}

	for name, tok := range map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": token(t, other, "user", time.Minute),
		"expired":      token(t, testConfig, "user", -time.Hour),
		"wrong issuer": token(t, auth.Config{Secret: testConfig.Secret, Issuer: "elsewhere"}, "user", time.Minute),
	} {
		t.Run(name, func(t *testing.T) {
			w, env := do(t, router, "/me", "Bearer "+tok)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, responses.StatusUnauthorized.DefaultMessage(), env.Message)
			assert.Nil(t, env.Data)
		})
	}
}

func TestMiddlewareValidToken(t *testing.T) {
	w, env := do(t, setupRouter(), "/me", "Bearer "+token(t, testConfig, "user", time.Minute))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, responses.StatusOK, env.Status)
	assert.Equal(t, map[string]interface{}{"subject": "user-1"}, env.Data)
}

func TestRequireRole(t *testing.T) {
	router := setupRouter()

	w, env := do(t, router, "/admin", "Bearer "+token(t, testConfig, "user", time.Minute))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, responses.StatusForbidden, env.Status)
	assert.Equal(t, "You are not allowed to access this resource!", env.Message)

	w, env = do(t, router, "/admin", "Bearer "+token(t, testConfig, auth.RoleAdmin, time.Minute))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, responses.StatusOK, env.Status)
}

func TestParseToken(t *testing.T) {
	claims, err := auth.ParseToken(testConfig, token(t, testConfig, "auditor", time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "auditor", claims.Role)
	assert.Equal(t, "tests", claims.Issuer)
}
