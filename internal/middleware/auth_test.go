package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"interview-prep-server/auth"
	"interview-prep-server/internal/config"
	"interview-prep-server/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redisLib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig.JWTSecret = "test-secret"

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() {
		mr.Close()
		redis.RedisClient = nil
	})

	redis.RedisClient = redisLib.NewClient(&redisLib.Options{Addr: mr.Addr()})

	router := gin.New()
	router.GET("/protected", AuthMiddleWare(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint64("user_id")})
	})
	return router, mr
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router, _ := setupAuthRouter(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router, _ := setupAuthRouter(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	router, _ := setupAuthRouter(t)

	// valid signature but never stored in redis
	token, err := auth.GenerateJWT(1)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ActiveToken(t *testing.T) {
	router, _ := setupAuthRouter(t)

	token, err := auth.GenerateJWT(42)
	require.NoError(t, err)
	require.NoError(t, redis.StoreToken(token, 0))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}
