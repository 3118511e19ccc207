package middleware

import (
	"strconv"

	"vidtube/internal/api/response"
	"vidtube/internal/ratelimit"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit 写接口限流，已登录按用户计，匿名按 IP 计
// 需要放在认证中间件之后
func RateLimit(limiter *ratelimit.KeyedRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if id, ok := GetCurrentUserID(c); ok {
			key = "user:" + strconv.FormatInt(id, 10)
		}

		if !limiter.Allow(key) {
			logger.Warn("Rate limit exceeded", zap.String("key", key), zap.String("path", c.Request.URL.Path))
			response.TooManyRequests(c, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}
