package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/internal/config"
	"vidtube/internal/ratelimit"
	"vidtube/pkg/utils"
)

var testJWT = &config.JWTConfig{Secret: "test-secret"}

func init() {
	gin.SetMode(gin.TestMode)
}

func bearer(t *testing.T, userID int64) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{
		UserID:           userID,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(testJWT.Secret))
	require.NoError(t, err)
	return "Bearer " + token
}

func echoCaller(c *gin.Context) {
	if id := CallerID(c); id != nil {
		c.String(http.StatusOK, strconv.FormatInt(*id, 10))
		return
	}
	c.String(http.StatusOK, "anonymous")
}

func do(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthOptional(t *testing.T) {
	r := gin.New()
	r.GET("/", AuthOptional(testJWT), echoCaller)

	w := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	w = do(r, bearer(t, 42))
	assert.Equal(t, "42", w.Body.String())

	w = do(r, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r := gin.New()
	r.GET("/", AuthRequired(testJWT), echoCaller)

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Basic abc").Code)

	w := do(r, bearer(t, 9))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "9", w.Body.String())
}

func TestRateLimitPerCaller(t *testing.T) {
	limiter := ratelimit.New(0.001, 2, 0)
	defer limiter.Stop()

	r := gin.New()
	r.GET("/", AuthOptional(testJWT), RateLimit(limiter), echoCaller)

	u1 := bearer(t, 1)
	assert.Equal(t, http.StatusOK, do(r, u1).Code)
	assert.Equal(t, http.StatusOK, do(r, u1).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, u1).Code)

	// 其他调用者不受影响
	assert.Equal(t, http.StatusOK, do(r, bearer(t, 2)).Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := do(r, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "InternalServerError")
}
